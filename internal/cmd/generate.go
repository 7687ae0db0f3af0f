package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/generate"
	"github.com/boomcli/boom/internal/inject"
	"github.com/boomcli/boom/internal/output"
)

var (
	generateRootFlag        string
	generatePluralFlag      string
	generateMergePolicyFlag string
	generateForceFlag       bool
	generateDryRunFlag      bool
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate <kind> <name...>",
		Aliases: []string{"g"},
		Short:   "Add a module to a project",
		Long: `Add a module to a project created by 'boom new'.

The module template <template>/app/<kind> is materialized into
<project>/<package>/<name>. The module is then registered in the package's
__init__.py: an import line is added after the existing imports, and an
init call is added below the "# [b] <Kinds>" marker. When the marker is
missing, the line to add by hand is printed instead.

Examples:
  # Add a blueprint named blog
  boom generate blueprint blog

  # Preview the registration changes without writing anything
  boom generate blueprint blog --dry-run

  # Use a custom marker plural
  boom generate api_resource users --plural resources`,
		Args: cobra.MinimumNArgs(2),
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&generateRootFlag, "root", "r", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&generatePluralFlag, "plural", "", "Plural of the kind used in the registration marker")
	cmd.Flags().StringVar(&generateMergePolicyFlag, "merge-policy", "", "Existing directory policy: skip, overwrite, merge (env: BOOM_MERGE_POLICY)")
	cmd.Flags().BoolVarP(&generateForceFlag, "force", "f", false, "Clear a non-empty module directory")
	cmd.Flags().BoolVar(&generateDryRunFlag, "dry-run", false, "Show registration changes without writing")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	policy, err := resolveMergePolicy(generateMergePolicyFlag)
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	root := generateRootFlag
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
	}

	res, err := generate.NewGenerator(reg, generate.Options{
		Kind:        args[0],
		Name:        strings.Join(args[1:], " "),
		Plural:      generatePluralFlag,
		ProjectRoot: root,
		Policy:      policy,
		Force:       generateForceFlag,
		DryRun:      generateDryRunFlag,
	}).Generate()
	if err != nil {
		return err
	}

	printGenerateSummary(cmd, res)
	return nil
}

func printGenerateSummary(cmd *cobra.Command, res *generate.Result) {
	out := cmd.OutOrStdout()
	rel := func(p string) string {
		if r, err := filepath.Rel(res.ProjectRoot, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	if res.Files != nil {
		for _, f := range res.Files.Created {
			fmt.Fprintln(out, output.FormatStatusLine(rel(filepath.Join(res.Target, f)), output.StatusCreated))
		}
		for _, d := range res.Files.SkippedDirs {
			fmt.Fprintln(out, output.FormatStatusLine(rel(filepath.Join(res.Target, d)), output.StatusSkipped))
		}
	}

	for _, i := range res.Injections {
		path := rel(i.Request.Path)
		switch {
		case errors.Is(i.Err, oerrors.ErrMarkerNotFound):
			fmt.Fprintln(out, output.FormatStatusLine(path, output.StatusManual))
			fmt.Fprintf(out, "  marker %q not found; add: %s\n", i.Request.Marker, i.Request.Line)
		case i.Err != nil:
			fmt.Fprintln(out, output.FormatStatusLine(path, output.StatusManual))
			fmt.Fprintf(out, "  add: %s\n", i.Request.Line)
		case i.Result.Outcome == inject.AlreadyPresent:
			fmt.Fprintln(out, output.FormatStatusLine(path, output.StatusPresent))
		case generateDryRunFlag:
			fmt.Fprint(out, i.Result.Diff())
		default:
			fmt.Fprintln(out, output.FormatStatusLine(
				fmt.Sprintf("%s:%d", path, i.Result.Index+1), output.StatusInserted))
		}
	}

	if manual := res.ManualEdits(); len(manual) > 0 {
		output.Warn("manual edit required", "module", res.Module, "lines", len(manual))
		return
	}
	if generateDryRunFlag {
		fmt.Fprintln(out, output.FormatCheckmark("Dry run complete; no files were written"))
		return
	}
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Module %s added at %s",
		output.StyleNoun.Render(res.Module), output.StyleNoun.Render(rel(res.Target)))))
}
