package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no tilde", "/absolute/path", "/absolute/path"},
		{"relative path", "relative/path", "relative/path"},
		{"tilde only", "~", homeDir},
		{"tilde with slash", "~/.boom/templates", filepath.Join(homeDir, ".boom", "templates")},
		{"tilde username pattern (not expanded)", "~username/file", "~username/file"},
		{"tilde in middle (not expanded)", "/path/~/file", "/path/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandTilde(tt.input))
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.HomeDir, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(paths.HomeDir, "templates"), paths.TemplatesDir)
	assert.Equal(t, ".boom", filepath.Base(paths.HomeDir))
}
