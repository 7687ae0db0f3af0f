package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for boom.
type Paths struct {
	// ConfigFile is the path to the config file (~/.boom/config.yaml).
	ConfigFile string

	// TemplatesDir is the default templates directory (~/.boom/templates).
	TemplatesDir string

	// HomeDir is the boom home directory (~/.boom).
	HomeDir string
}

// DefaultPaths returns the default paths for boom.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	boomHome := filepath.Join(homeDir, ".boom")

	return &Paths{
		ConfigFile:   filepath.Join(boomHome, "config.yaml"),
		TemplatesDir: filepath.Join(boomHome, "templates"),
		HomeDir:      boomHome,
	}, nil
}

// ExpandTilde expands a leading ~ or ~/ to the user's home directory.
// ~username forms are returned unchanged.
func ExpandTilde(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}
