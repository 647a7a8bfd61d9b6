//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/newproject-dev/new-project/internal/config"
	"github.com/newproject-dev/new-project/internal/prompt"
	"github.com/newproject-dev/new-project/internal/scaffold"
)

// TestFullFlowPromptRenderAndCopy tests the complete flow on the real
// filesystem: load config -> prompt -> classify -> materialize -> verify tree.
func TestFullFlowPromptRenderAndCopy(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplate(t, env.TemplateDir)

	// Step 1: Run with every prompt falling back to its default.
	answers := &prompt.Scripted{Answers: []string{"", "  ", ""}}
	result, err := scaffold.Run(scaffold.Options{
		TemplateDir: env.TemplateDir,
		ProjectDir:  env.ProjectDir,
		Version:     "1.0.0",
		Facts:       pinnedFacts(),
		Prompter:    answers,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Step 2: Prompts follow declaration order and show rendered defaults.
	wantPrompts := []string{
		"Project name (default demo): ",
		"Go module path (default example.com/demo): ",
		"author (default Ada Lovelace): ",
	}
	if !reflect.DeepEqual(answers.Shown, wantPrompts) {
		t.Errorf("prompts = %q, want %q", answers.Shown, wantPrompts)
	}

	// Step 3: Rendered files.
	assertFileContent(t, filepath.Join(env.ProjectDir, "README.md"),
		"# demo\n\nModule example.com/demo, by Ada Lovelace.\nCreated 2024-01-01.\n")
	assertFileContent(t, filepath.Join(env.ProjectDir, "cmd", "main.go"),
		"package main // example.com/demo\n")

	// Step 4: Copied files are byte-identical and keep their mode.
	script := filepath.Join(env.ProjectDir, "scripts", "bootstrap.sh")
	assertFileContent(t, script, "#!/bin/sh\necho {{ not rendered }}\n")
	if runtime.GOOS != "windows" {
		info, err := os.Stat(script)
		if err != nil {
			t.Fatalf("stat %s: %v", script, err)
		}
		if info.Mode().Perm() != 0755 {
			t.Errorf("mode of %s = %v, want 0755", script, info.Mode().Perm())
		}
	}
	assertDirExists(t, filepath.Join(env.ProjectDir, "docs", "guide"))
	assertFileContains(t, filepath.Join(env.ProjectDir, "docs", "guide", "index.md"), "guide")

	// Step 5: Excluded paths and the config file never reach the project.
	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".secrets"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, "build"))
	assertFileNotExists(t, filepath.Join(env.ProjectDir, ".new-project.yaml"))

	// Step 6: The result reports what was done.
	if len(result.Plan.Renders) != 2 {
		t.Errorf("renders = %d, want 2", len(result.Plan.Renders))
	}
	if len(result.Files) != 4 {
		t.Errorf("files written = %d, want 4: %v", len(result.Files), result.Files)
	}
}

// TestSecondRunRefusesPopulatedProject verifies the precondition guard: a
// project directory filled by a previous run is left untouched.
func TestSecondRunRefusesPopulatedProject(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplate(t, env.TemplateDir)

	opts := scaffold.Options{
		TemplateDir: env.TemplateDir,
		ProjectDir:  env.ProjectDir,
		Facts:       pinnedFacts(),
		Prompter:    &prompt.Scripted{Answers: []string{"first", "", ""}},
	}
	if _, err := scaffold.Run(opts); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := snapshot(t, env.ProjectDir)

	opts.Prompter = &prompt.Scripted{Answers: []string{"second", "", ""}}
	_, err := scaffold.Run(opts)
	if !errors.Is(err, scaffold.ErrPrecondition) {
		t.Fatalf("second Run error = %v, want ErrPrecondition", err)
	}

	if after := snapshot(t, env.ProjectDir); !reflect.DeepEqual(before, after) {
		t.Errorf("project changed by refused run:\nbefore: %v\nafter:  %v", before, after)
	}
}

// TestIdenticalInputsProduceIdenticalTrees runs the same template twice into
// sibling directories with the same name and compares the results.
func TestIdenticalInputsProduceIdenticalTrees(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplate(t, env.TemplateDir)

	run := func(projectDir string) map[string]string {
		_, err := scaffold.Run(scaffold.Options{
			TemplateDir: env.TemplateDir,
			ProjectDir:  projectDir,
			Facts:       pinnedFacts(),
			Prompter:    &prompt.Scripted{Answers: []string{"Widget", "", "Grace"}},
		})
		if err != nil {
			t.Fatalf("Run(%s): %v", projectDir, err)
		}
		return snapshot(t, projectDir)
	}

	first := run(filepath.Join(t.TempDir(), "widget"))
	second := run(filepath.Join(t.TempDir(), "widget"))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("trees differ:\nfirst:  %v\nsecond: %v", first, second)
	}
	if got := first["cmd/main.go"]; got != "package main // example.com/widget\n" {
		t.Errorf("cmd/main.go = %q", got)
	}
}

// TestUserSettingsOverrideFacts stores a context override in the user
// settings file and checks it replaces the git identity.
func TestUserSettingsOverrideFacts(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplate(t, env.TemplateDir)

	config.Load()
	if err := config.Set("context.git_user_name", "Grace Hopper"); err != nil {
		t.Fatalf("config.Set: %v", err)
	}
	config.Load()

	answers := &prompt.Scripted{Answers: []string{"", "", ""}}
	_, err := scaffold.Run(scaffold.Options{
		TemplateDir: env.TemplateDir,
		ProjectDir:  env.ProjectDir,
		Facts:       pinnedFacts(),
		Overrides:   []map[string]string{config.ContextOverrides()},
		Prompter:    answers,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	assertFileContains(t, filepath.Join(env.ProjectDir, "README.md"), "by Grace Hopper.")
}

// TestIncompatibleTemplateWritesNothing checks the "requires" gate runs
// before any prompt or write.
func TestIncompatibleTemplateWritesNothing(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.TemplateDir, ".new-project"), "requires: \">= 2.0.0\"\n", 0644)
	writeFile(t, filepath.Join(env.TemplateDir, "a.txt"), "a\n", 0644)

	answers := &prompt.Scripted{}
	_, err := scaffold.Run(scaffold.Options{
		TemplateDir: env.TemplateDir,
		ProjectDir:  env.ProjectDir,
		Version:     "v1.4.0",
		Facts:       pinnedFacts(),
		Prompter:    answers,
	})
	if !errors.Is(err, scaffold.ErrConfig) {
		t.Fatalf("Run error = %v, want ErrConfig", err)
	}
	if len(answers.Shown) != 0 {
		t.Errorf("prompted %d times, want 0", len(answers.Shown))
	}
	assertFileNotExists(t, env.ProjectDir)
}
