package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigReadsUserSection(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	gitconfig := "[user]\n\tname = Ada Lovelace\n\temail = ada@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0644))

	id, err := GlobalConfig{}.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "ada@example.com", id.Email)
}

func TestGlobalConfigWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	id, err := GlobalConfig{}.Identity()
	require.NoError(t, err)
	assert.Empty(t, id.Name)
	assert.Empty(t, id.Email)
}

func TestStatic(t *testing.T) {
	id, err := Static{Name: "n", Email: "e"}.Identity()
	require.NoError(t, err)
	assert.Equal(t, Identity{Name: "n", Email: "e"}, id)
}
