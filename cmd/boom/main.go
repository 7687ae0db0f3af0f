// Package main is the entry point for the boom CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/boomcli/boom/internal/cmd"
	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		code := oerrors.ExitCodeFromError(err)
		output.Debug("command failed", "exit_code", code, "kind", oerrors.ExitCodeName(code))

		// Only print if the command layer hasn't already printed it
		var exitErr *oerrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(code)
	}
}
