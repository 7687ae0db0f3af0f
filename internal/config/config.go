// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the boom CLI configuration.
// Loaded from ~/.boom/config.yaml.
type Config struct {
	// TemplatesDir is the directory holding one subdirectory per template.
	// Env: BOOM_TEMPLATES_DIR, Default: ~/.boom/templates
	TemplatesDir string `json:"templatesDir,omitempty" yaml:"templatesDir,omitempty" mapstructure:"templatesDir"`

	// MergePolicy decides what happens when a rendered directory already exists.
	// Valid values: "skip" (default), "overwrite", "merge".
	// Env: BOOM_MERGE_POLICY
	MergePolicy string `json:"mergePolicy,omitempty" yaml:"mergePolicy,omitempty" mapstructure:"mergePolicy"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultMergePolicy preserves directories created by an earlier run.
const DefaultMergePolicy = "skip"

// DefaultConfig returns a Config with all default values populated.
// Used by `boom config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		TemplatesDir: "~/.boom/templates",
		MergePolicy:  DefaultMergePolicy,
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// WithDefaults returns a copy of the config with empty fields defaulted.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.MergePolicy == "" {
		out.MergePolicy = DefaultMergePolicy
	}
	return &out
}
