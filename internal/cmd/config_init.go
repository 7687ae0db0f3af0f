package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boomcli/boom/internal/config"
	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the boom CLI configuration.

Writes a YAML config file with the default templates directory, merge
policy and log settings. The file is written to the path given by --config,
BOOM_CONFIG, or ~/.boom/config.yaml.

Examples:
  # Initialize configuration
  boom config init

  # Overwrite existing configuration
  boom config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ExpandTilde(GetConfigPath())
	if path == "" {
		paths, err := config.DefaultPaths()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
		}
		path = paths.ConfigFile
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := config.WriteConfig(path, config.DefaultConfig(), true); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, err.Error())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Configuration initialized at "+path))
	fmt.Fprintln(out, "Validate with: boom config vet")
	return nil
}
