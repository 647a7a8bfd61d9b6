//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/newproject-dev/new-project/internal/projectctx"
	"github.com/newproject-dev/new-project/internal/vcs"
	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // HOME and XDG_CONFIG_HOME root, holds user settings
	TemplateDir string // Template tree the run reads from
	ProjectDir  string // Empty destination
}

// setupTestEnv creates isolated temp directories and points HOME and the XDG
// config home at them so user settings and git config never leak in. The env
// vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		TemplateDir: t.TempDir(),
		ProjectDir:  filepath.Join(t.TempDir(), "demo"),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	xdg.Reload()
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		xdg.Reload()
	})

	return env
}

// setupTemplate creates a synthetic template exercising every classification:
// rendered files, nested copies, an executable script and excluded paths.
func setupTemplate(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, ".new-project.yaml"), `templates:
  - README.md
  - cmd/main.go
  - build/ignored.txt
parameters:
  project_name:
    description: Project name
    default: "{{ .context.project_directory_name }}"
  module:
    description: Go module path
    default: "example.com/{{ .project_name | lower }}"
  author:
    default: "{{ .context.git_user_name }}"
exclude:
  - .secrets
  - build
`, 0644)

	writeFile(t, filepath.Join(dir, "README.md"), `# {{ .project_name }}

Module {{ .module }}, by {{ .author }}.
Created {{ .context.current_date }}.
`, 0644)
	writeFile(t, filepath.Join(dir, "cmd", "main.go"), `package main // {{ .module }}
`, 0644)
	writeFile(t, filepath.Join(dir, "scripts", "bootstrap.sh"), "#!/bin/sh\necho {{ not rendered }}\n", 0755)
	writeFile(t, filepath.Join(dir, "docs", "guide", "index.md"), "guide\n", 0644)
	writeFile(t, filepath.Join(dir, ".secrets"), "token\n", 0600)
	writeFile(t, filepath.Join(dir, "build", "ignored.txt"), "{{ .missing }}\n", 0644)
}

// pinnedFacts freezes the clock at 2024-01-01 and the git identity to a
// fixed author.
func pinnedFacts() *projectctx.Builder {
	return &projectctx.Builder{
		Now:      func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) },
		Identity: vcs.Static{Name: "Ada Lovelace", Email: "ada@example.com"},
	}
}

// writeFile creates a file at the given path with the given content and mode.
func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	// WriteFile is subject to umask.
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContent fails if the file doesn't exist or differs from want.
func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s:\ngot:\n%s\nwant:\n%s", path, string(data), want)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// snapshot reads every file below root into a map keyed by relative path.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}
