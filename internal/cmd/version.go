package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/version"
)

var versionOutputFlag string

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show boom CLI version information.

Displays:
  - boom version, commit, and build date
  - CUE SDK version used for manifest validation`,
		RunE: runVersion,
	}

	cmd.Flags().StringVarP(&versionOutputFlag, "output", "o", "text", "Output format: text, json, yaml")

	return cmd
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	if versionOutputFlag == "" || versionOutputFlag == "text" {
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return nil
	}

	format, err := output.ParseOutputFormat(versionOutputFlag)
	if err != nil || format == output.FormatTable {
		return fmt.Errorf("unknown output format %q; valid formats: text, json, yaml", versionOutputFlag)
	}
	return output.WriteStructured(cmd.OutOrStdout(), format, info)
}
