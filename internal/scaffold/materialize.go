package scaffold

import (
	"fmt"
	"io"
	"os"

	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/newproject-dev/new-project/internal/platform"
	"github.com/newproject-dev/new-project/internal/render"
	"github.com/spf13/afero"
)

const dirMode os.FileMode = 0755

type rendered struct {
	job     RenderJob
	content string
}

// Materialize executes plan in four fixed steps: create every directory,
// render every template into memory, copy plain files, write rendered text.
// A render failure therefore stops the run before any file is written. It
// returns the relative paths of the files written, copies first.
func Materialize(fsys afero.Fs, plan *Plan, engine render.Engine, b *render.Bindings) ([]string, error) {
	logger := logging.GetLogger("scaffold.materialize")
	defer logging.LogOperationStart(logger, "materialize")()

	for _, dir := range plan.Dirs {
		if err := fsys.MkdirAll(dir.Dest, dirMode); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir.Dest, err)
		}
	}

	outputs := make([]rendered, 0, len(plan.Renders))
	for _, job := range plan.Renders {
		content, err := engine.Render(job.Name, b)
		if err != nil {
			return nil, fmt.Errorf("rendering template %s: %w", job.Name, err)
		}
		outputs = append(outputs, rendered{job: job, content: content})
	}

	written := make([]string, 0, len(plan.Copies)+len(plan.Renders))

	for _, job := range plan.Copies {
		if err := copyFile(fsys, job.Source, job.Dest, job.Mode); err != nil {
			return written, fmt.Errorf("copying %s to %s: %w", job.Source, job.Dest, err)
		}
		written = append(written, job.Rel)
	}

	for _, out := range outputs {
		if err := writeFile(fsys, out.job.Dest, []byte(out.content), out.job.Mode); err != nil {
			return written, fmt.Errorf("writing %s: %w", out.job.Dest, err)
		}
		written = append(written, out.job.Name)
	}

	logger.Debug().
		Int("dirs", len(plan.Dirs)).
		Int("files", len(written)).
		Msg("project materialized")

	return written, nil
}

// copyFile streams src to dst byte for byte and applies the source mode.
func copyFile(fsys afero.Fs, src, dst string, mode os.FileMode) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return platform.Chmod(fsys, dst, mode)
}

// writeFile writes data to dst and applies mode.
func writeFile(fsys afero.Fs, dst string, data []byte, mode os.FileMode) error {
	if err := afero.WriteFile(fsys, dst, data, mode.Perm()); err != nil {
		return err
	}
	return platform.Chmod(fsys, dst, mode)
}
