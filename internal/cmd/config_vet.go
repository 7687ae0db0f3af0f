package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boomcli/boom/internal/config"
	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the boom CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. mergePolicy is one of skip, overwrite, merge

The config path is resolved using precedence:
  --config flag > BOOM_CONFIG env > ~/.boom/config.yaml

Examples:
  # Validate default configuration
  boom config vet

  # Validate custom config path
  boom config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	configPath := config.ExpandTilde(GetConfigPath())

	output.Debug("validating config",
		"path", configPath,
		"source", resolvedConfig.Source,
	)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'boom config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	cfg, err := config.NewLoader().Load(configPath)
	if err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: configPath,
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := config.Validate(cfg); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: configPath,
			Cause:    oerrors.ErrValidation,
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+configPath))
	return nil
}
