// Package projectctx builds the environment facts exposed to templates under
// the "context" name: project directory, current date and time, and the
// user's git identity when one is configured.
package projectctx

import (
	"fmt"
	"maps"
	"path/filepath"
	"time"

	"github.com/newproject-dev/new-project/internal/logging"
	"github.com/newproject-dev/new-project/internal/vcs"
)

// Keys inserted by Build.
const (
	KeyProjectDirName = "project_directory_name"
	KeyProjectDirPath = "project_directory_path"
	KeyCurrentDate    = "current_date"
	KeyCurrentTime    = "current_time"
	KeyGitUserName    = "git_user_name"
	KeyGitUserEmail   = "git_user_email"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Context maps fact names to their values.
type Context map[string]string

// Builder produces a Context. The clock and identity source are swappable so
// runs can be pinned to a fixed date.
type Builder struct {
	Now      func() time.Time
	Identity vcs.IdentitySource
}

// NewBuilder returns a Builder reading the system clock and the global git
// configuration.
func NewBuilder() *Builder {
	return &Builder{
		Now:      time.Now,
		Identity: vcs.GlobalConfig{},
	}
}

// Build returns the facts for projectDir using the system clock and global
// git configuration.
func Build(projectDir string) (Context, error) {
	return NewBuilder().Build(projectDir)
}

// Build returns the facts for projectDir. A missing or unreadable git
// identity is not an error; the git keys are simply left out.
func (b *Builder) Build(projectDir string) (Context, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory %s: %w", projectDir, err)
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	t := now().UTC()

	ctx := Context{
		KeyProjectDirName: filepath.Base(abs),
		KeyProjectDirPath: abs,
		KeyCurrentDate:    t.Format(dateLayout),
		KeyCurrentTime:    t.Round(time.Second).Format(timeLayout),
	}

	if b.Identity != nil {
		logger := logging.GetLogger("projectctx")
		id, err := b.Identity.Identity()
		if err != nil {
			logger.Debug().Err(err).Msg("git identity unavailable")
		} else {
			if id.Name != "" {
				ctx[KeyGitUserName] = id.Name
			}
			if id.Email != "" {
				ctx[KeyGitUserEmail] = id.Email
			}
		}
	}

	return ctx, nil
}

// Merge returns a copy of c with each overrides layer applied in order;
// later layers win.
func (c Context) Merge(overrides ...map[string]string) Context {
	out := make(Context, len(c))
	maps.Copy(out, c)
	for _, layer := range overrides {
		maps.Copy(out, layer)
	}
	return out
}
