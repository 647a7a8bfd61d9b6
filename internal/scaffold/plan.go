package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/newproject-dev/new-project/internal/manifest"
	"github.com/newproject-dev/new-project/internal/render"
	"github.com/spf13/afero"
)

// DirJob is a destination directory to create.
type DirJob struct {
	Rel  string
	Dest string
}

// CopyJob is a template file copied verbatim.
type CopyJob struct {
	Rel    string
	Source string
	Dest   string
	Mode   os.FileMode
}

// RenderJob is a template file rendered through the engine. Name is the
// slash-separated relative path the template was registered under.
type RenderJob struct {
	Name string
	Dest string
	Mode os.FileMode
}

// Plan is the complete classification of a template tree. Every destination
// appears in at most one queue and excluded paths appear in none.
type Plan struct {
	Dirs    []DirJob
	Copies  []CopyJob
	Renders []RenderJob
}

// pathSet holds relative paths normalized with filepath.Clean.
type pathSet map[string]bool

func newPathSet(paths ...[]string) pathSet {
	set := make(pathSet)
	for _, group := range paths {
		for _, p := range group {
			set[filepath.Clean(filepath.FromSlash(p))] = true
		}
	}
	return set
}

// ExclusionSet returns the configured exclusions plus every candidate config
// file name, which must never reach the project.
func ExclusionSet(cfg *manifest.TemplateConfig) map[string]bool {
	return newPathSet(cfg.Exclude, manifest.CandidateNames())
}

type walkTarget struct {
	src  string
	dest string
}

// BuildPlan walks templateDir with an explicit work-list and classifies each
// entry against cfg. Files listed as templates are read and registered with
// engine under their relative path. Nothing is written.
func BuildPlan(fsys afero.Fs, templateDir, projectDir string, cfg *manifest.TemplateConfig, engine render.Engine) (*Plan, error) {
	logger := logging.GetLogger("scaffold.plan")
	defer logging.LogOperationStart(logger, "classify")()

	templateDir = filepath.Clean(templateDir)
	projectDir = filepath.Clean(projectDir)

	excluded := ExclusionSet(cfg)
	templates := newPathSet(cfg.Templates)

	plan := &Plan{
		Dirs: []DirJob{{Rel: ".", Dest: projectDir}},
	}
	targets := []walkTarget{{src: templateDir, dest: projectDir}}

	for len(targets) > 0 {
		target := targets[len(targets)-1]
		targets = targets[:len(targets)-1]

		entries, err := afero.ReadDir(fsys, target.src)
		if err != nil {
			return nil, fmt.Errorf("reading source directory %s: %w", target.src, err)
		}

		for _, entry := range entries {
			srcPath := filepath.Join(target.src, entry.Name())
			destPath := filepath.Join(target.dest, entry.Name())

			rel, err := relativePath(templateDir, srcPath)
			if err != nil {
				return nil, err
			}

			switch {
			case excluded[rel]:
				logger.Trace().Str("path", rel).Msg("excluded")

			case entry.IsDir():
				plan.Dirs = append(plan.Dirs, DirJob{Rel: rel, Dest: destPath})
				targets = append(targets, walkTarget{src: srcPath, dest: destPath})

			case templates[rel]:
				mode, err := fileMode(fsys, srcPath, entry)
				if err != nil {
					return nil, err
				}
				name := filepath.ToSlash(rel)
				content, err := afero.ReadFile(fsys, srcPath)
				if err != nil {
					return nil, fmt.Errorf("reading template %s: %w", srcPath, err)
				}
				if !utf8.Valid(content) {
					return nil, fmt.Errorf("template %s is not valid UTF-8", srcPath)
				}
				if err := engine.AddTemplate(name, string(content)); err != nil {
					return nil, err
				}
				plan.Renders = append(plan.Renders, RenderJob{Name: name, Dest: destPath, Mode: mode})
				logger.Trace().Str("path", rel).Msg("render")

			default:
				mode, err := fileMode(fsys, srcPath, entry)
				if err != nil {
					return nil, err
				}
				plan.Copies = append(plan.Copies, CopyJob{Rel: rel, Source: srcPath, Dest: destPath, Mode: mode})
				logger.Trace().Str("path", rel).Msg("copy")
			}
		}
	}

	logger.Debug().
		Int("dirs", len(plan.Dirs)).
		Int("copies", len(plan.Copies)).
		Int("renders", len(plan.Renders)).
		Msg("template classified")

	return plan, nil
}

// fileMode returns the mode to give the destination of a file entry. Directory
// listings describe a symlink itself, so its target is stat'ed instead.
func fileMode(fsys afero.Fs, path string, entry os.FileInfo) (os.FileMode, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.Mode(), nil
	}
	info, err := fsys.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("resolving symlink %s: %w", path, err)
	}
	return info.Mode(), nil
}

// relativePath strips root from path. A path outside root is an error.
func relativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("computing path of %s relative to %s: %w", path, root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the template directory %s", path, root)
	}
	return rel, nil
}
