package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/newproject-dev/new-project/internal/manifest"
	"github.com/newproject-dev/new-project/internal/projectctx"
	"github.com/newproject-dev/new-project/internal/prompt"
	"github.com/newproject-dev/new-project/internal/render"
	"github.com/spf13/afero"
)

// Options configures a scaffolding run. Only TemplateDir and ProjectDir are
// required; every other field has a working default.
type Options struct {
	TemplateDir string
	ProjectDir  string

	// Version is the running tool version, checked against the template's
	// "requires" constraint.
	Version string

	// Facts builds the environment facts. Defaults to projectctx.NewBuilder().
	Facts *projectctx.Builder
	// Overrides are layered over the facts in order; later layers win.
	Overrides []map[string]string

	// Prompter answers parameter prompts. Defaults to stdin/stdout.
	Prompter prompt.Prompter
	// Engine renders defaults and templates. Defaults to render.NewTextEngine().
	Engine render.Engine
	// FS is the filesystem both trees live on. Defaults to the OS filesystem.
	FS afero.Fs

	// DryRun stops after classification; nothing is written.
	DryRun bool
}

// Result holds the outcome of a run.
type Result struct {
	ProjectDir string
	Config     *manifest.TemplateConfig
	Plan       *Plan
	Files      []string
	DryRun     bool
}

// CheckPreconditions verifies that templateDir is an existing directory and
// that projectDir is empty. A project directory that does not exist yet
// counts as empty.
func CheckPreconditions(fsys afero.Fs, templateDir, projectDir string) error {
	info, err := fsys.Stat(templateDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tier(ErrPrecondition, fmt.Errorf("template directory %s does not exist", templateDir))
		}
		return tier(ErrPrecondition, fmt.Errorf("checking template directory %s: %w", templateDir, err))
	}
	if !info.IsDir() {
		return tier(ErrPrecondition, fmt.Errorf("template directory %s is not a directory", templateDir))
	}

	entries, err := afero.ReadDir(fsys, projectDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return tier(ErrPrecondition, fmt.Errorf("reading project directory %s: %w", projectDir, err))
	}
	if len(entries) > 0 {
		return tier(ErrPrecondition, fmt.Errorf("project directory %s is not empty", projectDir))
	}
	return nil
}

// Run creates a project from a template. Every step is fail-fast: the first
// error aborts the run and is returned wrapped in its failure tier.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("scaffold")

	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	engine := opts.Engine
	if engine == nil {
		engine = render.NewTextEngine()
	}
	facts := opts.Facts
	if facts == nil {
		facts = projectctx.NewBuilder()
	}
	prompter := opts.Prompter
	if prompter == nil {
		prompter = prompt.NewLinePrompter(os.Stdin, os.Stdout)
	}

	if err := CheckPreconditions(fsys, opts.TemplateDir, opts.ProjectDir); err != nil {
		return nil, err
	}

	projectDir, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, tier(ErrPrecondition, fmt.Errorf("resolving project directory %s: %w", opts.ProjectDir, err))
	}

	cfg, err := manifest.LoadFS(fsys, opts.TemplateDir)
	if err != nil {
		return nil, tier(ErrConfig, err)
	}
	if err := cfg.CheckCompatible(opts.Version); err != nil {
		return nil, tier(ErrConfig, err)
	}

	base, err := facts.Build(projectDir)
	if err != nil {
		return nil, tier(ErrPrecondition, err)
	}
	bindings := render.NewBindings(base.Merge(opts.Overrides...))

	if err := prompt.Collect(cfg.Parameters, bindings, engine, prompter); err != nil {
		return nil, tier(ErrParameter, err)
	}

	plan, err := BuildPlan(fsys, opts.TemplateDir, projectDir, cfg, engine)
	if err != nil {
		return nil, tier(ErrTraversal, err)
	}

	result := &Result{
		ProjectDir: projectDir,
		Config:     cfg,
		Plan:       plan,
		DryRun:     opts.DryRun,
	}
	if opts.DryRun {
		logger.Info().Str("template", opts.TemplateDir).Msg("dry run, nothing written")
		return result, nil
	}

	files, err := Materialize(fsys, plan, engine, bindings)
	result.Files = files
	if err != nil {
		return result, tier(ErrMaterialize, err)
	}

	logger.Info().
		Str("template", opts.TemplateDir).
		Str("project", projectDir).
		Int("files", len(files)).
		Msg("project created")
	return result, nil
}
