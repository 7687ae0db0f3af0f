// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/boomcli/boom/internal/config"
	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/structure"
	"github.com/boomcli/boom/internal/templates"
)

var (
	// Global flags
	configFlag       string
	templatesDirFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Resolved configuration (loaded during PersistentPreRunE)
	boomConfig       *config.Config
	resolvedTemplate config.ResolvedValue
	resolvedPolicy   config.ResolvedValue
	resolvedConfig   config.ResolvedValue
)

// NewRootCmd creates the root command for the boom CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boom",
		Short: "Project scaffolding from templates",
		Long: `boom creates projects from directory templates and adds modules to
projects it created, registering each new module in the project's package.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BOOM_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&templatesDirFlag, "templates-dir", "", "Directory containing templates (env: BOOM_TEMPLATES_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewTemplateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	configPath, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return err
	}
	resolvedConfig = configPath

	loaded, err := config.NewLoader().LoadWithDefaults(configPath.Value)
	if err != nil {
		output.Debug("config load error", "error", err)
		// Commands that only need defaults keep working with a broken file.
		loaded = config.DefaultConfig()
	}
	boomConfig = loaded

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
		Writer:  cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if boomConfig.Log.Timestamps != nil {
		logCfg.Timestamps = boomConfig.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	resolvedTemplate, err = config.ResolveTemplatesDir(templatesDirFlag, boomConfig)
	if err != nil {
		return err
	}

	config.LogResolvedValues(resolvedConfig, resolvedTemplate)
	return nil
}

// resolveMergePolicy applies the command's --merge-policy flag over env and
// config values.
func resolveMergePolicy(flagValue string) (structure.MergePolicy, error) {
	resolvedPolicy = config.ResolveMergePolicy(flagValue, boomConfig)
	config.LogResolvedValues(resolvedPolicy)
	return structure.ParseMergePolicy(resolvedPolicy.Value)
}

// loadRegistry loads templates from the resolved templates directory and
// logs every skipped candidate.
func loadRegistry() (*templates.Registry, error) {
	reg, err := templates.Load(GetTemplatesDir())
	if err != nil {
		return nil, err
	}
	for _, w := range reg.Warnings() {
		output.Warn("skipping template", "dir", w.Dir, "reason", w.Err)
	}
	return reg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return boomConfig
}

// GetConfigPath returns the resolved config path value.
func GetConfigPath() string {
	if resolvedConfig.Value != "" {
		return resolvedConfig.Value
	}
	return configFlag
}

// GetTemplatesDir returns the resolved templates directory.
func GetTemplatesDir() string {
	if resolvedTemplate.Value != "" {
		return resolvedTemplate.Value
	}
	return config.ExpandTilde(templatesDirFlag)
}
