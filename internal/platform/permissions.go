package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// Chmod sets file permissions on fsys. On Windows this is a no-op.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode.Perm())
}
