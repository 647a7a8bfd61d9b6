package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/newproject-dev/new-project/internal/projectctx"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

// pinnedFacts returns a fact builder frozen at 2024-01-01 with no git identity.
func pinnedFacts() *projectctx.Builder {
	return &projectctx.Builder{
		Now: func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) },
	}
}

// readTree maps every entry below root to its content. Directories map to
// the empty string and carry a trailing slash.
func readTree(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

// writeTree creates files below root; keys ending in "/" create directories.
func writeTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(root, 0755))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
}

// loadOverrides reads an optional context.yaml next to a fixture.
func loadOverrides(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var overrides map[string]string
	require.NoError(t, yaml.Unmarshal(data, &overrides))
	return overrides
}

// loadAnswers reads an optional answers.txt, one answer per line.
func loadAnswers(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
