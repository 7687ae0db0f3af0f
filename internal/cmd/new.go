package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/project"
	"github.com/boomcli/boom/internal/structure"
	"github.com/boomcli/boom/internal/templates"
)

var (
	newDescriptionFlag string
	newAuthorFlag      string
	newAuthorURLFlag   string
	newRootFlag        string
	newPackageFlag     string
	newTemplateFlag    string
	newMergePolicyFlag string
	newForceFlag       bool
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [project name...]",
		Short: "Create a new project from a template",
		Long: `Create a new project from a template.

The project is created in <root>/<package name>, where the package name is
derived from the project name (lowercase, spaces and dashes become
underscores). Values not given as flags are prompted for when running in a
terminal.

A project.boom.json settings file is written at the project root so that
'boom generate' can add modules later.

Examples:
  # Create a project interactively
  boom new

  # Create a project without prompts
  boom new My Blog -t flask -d "A blog built with Flask and friends" \
    -a "Jane Doe" -u https://github.com/jane

  # Replace the contents of an existing directory
  boom new My Blog -t flask -r ~/src --force`,
		RunE: runNew,
	}

	cmd.Flags().StringVarP(&newDescriptionFlag, "description", "d", "", "Project description")
	cmd.Flags().StringVarP(&newAuthorFlag, "author", "a", "", "Author name")
	cmd.Flags().StringVarP(&newAuthorURLFlag, "author-url", "u", "", "Author URL")
	cmd.Flags().StringVarP(&newRootFlag, "root", "r", "", "Parent directory of the project (default: current directory)")
	cmd.Flags().StringVarP(&newPackageFlag, "package", "p", "", "Package name (default: derived from the project name)")
	cmd.Flags().StringVarP(&newTemplateFlag, "template", "t", "", "Template slug")
	cmd.Flags().StringVar(&newMergePolicyFlag, "merge-policy", "", "Existing directory policy: skip, overwrite, merge (env: BOOM_MERGE_POLICY)")
	cmd.Flags().BoolVarP(&newForceFlag, "force", "f", false, "Clear a non-empty project directory without asking")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	policy, err := resolveMergePolicy(newMergePolicyFlag)
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		return oerrors.NewNotFoundError("no valid templates available", reg.Root(),
			"Add a template directory with a template.boom.json manifest.")
	}

	interactive := isInteractive()
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	manifest, err := selectTemplate(reg, p, interactive)
	if err != nil {
		return err
	}

	values := map[string]string{
		project.KeyProjectName:        strings.Join(args, " "),
		project.KeyProjectDescription: newDescriptionFlag,
		project.KeyAuthorName:         newAuthorFlag,
		project.KeyAuthorURL:          newAuthorURLFlag,
		project.KeyProjectNamePath:    newPackageFlag,
	}
	if values[project.KeyProjectNamePath] == "" {
		values[project.KeyProjectNamePath] = project.SanitizeName(values[project.KeyProjectName])
	}

	if err := collectValues(values, p, interactive); err != nil {
		return err
	}

	root, err := projectRoot(values[project.KeyProjectNamePath])
	if err != nil {
		return err
	}

	ctx := project.NewContext()
	for _, f := range project.Fields {
		ctx = ctx.With(f.Key, values[f.Key])
	}
	ctx = ctx.With(project.KeyProjectRoot, root).WithTemplate(manifest)

	confirmed, err := confirmTarget(root, p, interactive)
	if err != nil {
		return err
	}

	output.Debug("creating project", "template", manifest.Slug, "root", root, "policy", policy)

	result, err := structure.New(structure.Options{Policy: policy, Confirmed: confirmed}).
		Materialize(manifest, ctx, root)
	if err != nil {
		return err
	}

	if err := project.SaveSettings(root, ctx); err != nil {
		return err
	}

	printProjectSummary(cmd, manifest, root, result)
	return nil
}

// selectTemplate resolves --template, falling back to the only template or a
// prompt.
func selectTemplate(reg *templates.Registry, p *prompter, interactive bool) (templates.Manifest, error) {
	if newTemplateFlag != "" {
		return reg.BySlug(newTemplateFlag)
	}
	list := reg.List()
	if len(list) == 1 {
		return list[0], nil
	}
	if !interactive {
		return templates.Manifest{}, oerrors.NewValidationError("no template selected", "", "template",
			"Pass --template with one of: "+strings.Join(reg.Slugs(), ", "))
	}
	return p.chooseTemplate(list)
}

// collectValues prompts for every pending field, or reports them all when
// prompting is not possible.
func collectValues(values map[string]string, p *prompter, interactive bool) error {
	pending := project.Pending(values)
	if len(pending) == 0 {
		return nil
	}

	if !interactive {
		var problems []string
		for _, f := range pending {
			problems = append(problems, f.Check(values[f.Key]).Error())
		}
		return oerrors.NewValidationError(strings.Join(problems, "; "), "", pending[0].Key,
			"Pass the values as arguments and flags, or run in a terminal to be prompted.")
	}

	for _, f := range pending {
		answer, err := p.ask(f.Key, values[f.Key])
		if err != nil {
			return err
		}
		values[f.Key] = answer
		// A new project name re-derives the package name unless one was given.
		if f.Key == project.KeyProjectName && newPackageFlag == "" {
			values[project.KeyProjectNamePath] = project.SanitizeName(answer)
		}
	}

	if rest := project.Pending(values); len(rest) > 0 {
		return collectValues(values, p, interactive)
	}
	return nil
}

func projectRoot(packageName string) (string, error) {
	parent := newRootFlag
	if parent == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		parent = wd
	}
	abs, err := filepath.Abs(parent)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", parent, err)
	}
	return filepath.Join(abs, packageName), nil
}

// confirmTarget asks before a non-empty project directory is cleared.
func confirmTarget(root string, p *prompter, interactive bool) (bool, error) {
	if newForceFlag {
		return true, nil
	}
	state, err := structure.InspectTarget(root)
	if err != nil {
		return false, err
	}
	if state != structure.TargetNonEmpty || !interactive {
		return false, nil
	}
	return p.confirm(fmt.Sprintf("%s is not empty and its contents will be deleted. Continue?", root))
}

func printProjectSummary(cmd *cobra.Command, m templates.Manifest, root string, res *structure.Result) {
	out := cmd.OutOrStdout()
	entries := []output.TreeEntry{{Path: project.SettingsFile}}
	for _, f := range res.Created {
		entries = append(entries, output.TreeEntry{Path: filepath.ToSlash(f)})
	}
	for _, d := range res.SkippedDirs {
		entries = append(entries, output.TreeEntry{Path: filepath.ToSlash(d) + "/", Status: output.StatusSkipped})
	}
	for _, f := range res.KeptFiles {
		entries = append(entries, output.TreeEntry{Path: filepath.ToSlash(f), Status: output.StatusSkipped})
	}
	fmt.Fprint(out, output.RenderFileTree(filepath.Base(root), entries))
	if len(m.RequiredPackages) > 0 {
		fmt.Fprintf(out, "Requirements: %s\n", strings.Join(m.RequiredPackages, " "))
	}
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("Project created at %s from %s",
		output.StyleNoun.Render(root), output.StyleNoun.Render(m.Slug))))
}
