package config

import (
	"os"

	"github.com/boomcli/boom/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a configuration value together with its origin.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// resolve applies flag > env > config > default precedence.
func resolve(key, flagValue, envName, configValue, defaultValue string) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	envValue := os.Getenv(envName)

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, envValue},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if rv.Source == "" {
			rv.Value = c.value
			rv.Source = c.source
			continue
		}
		rv.Shadowed[c.source] = c.value
	}

	return rv
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) BOOM_CONFIG env, (3) ~/.boom/config.yaml default.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolve("config", flagValue, "BOOM_CONFIG", "", paths.ConfigFile), nil
}

// ResolveTemplatesDir resolves the templates directory using precedence:
// (1) --templates-dir flag, (2) BOOM_TEMPLATES_DIR env, (3) config, (4) ~/.boom/templates.
func ResolveTemplatesDir(flagValue string, cfg *Config) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	configValue := ""
	if cfg != nil {
		configValue = cfg.TemplatesDir
	}
	rv := resolve("templatesDir", flagValue, "BOOM_TEMPLATES_DIR", configValue, paths.TemplatesDir)
	rv.Value = ExpandTilde(rv.Value)
	return rv, nil
}

// ResolveMergePolicy resolves the merge policy using precedence:
// (1) --merge-policy flag, (2) BOOM_MERGE_POLICY env, (3) config, (4) "skip".
func ResolveMergePolicy(flagValue string, cfg *Config) ResolvedValue {
	configValue := ""
	if cfg != nil {
		configValue = cfg.MergePolicy
	}
	return resolve("mergePolicy", flagValue, "BOOM_MERGE_POLICY", configValue, DefaultMergePolicy)
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
