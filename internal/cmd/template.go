package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/templates"
)

var templateOutputFlag string

// NewTemplateCmd creates the template command group.
func NewTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Inspect available templates",
		Long: `Inspect the templates found in the templates directory.

Every direct subdirectory holding a valid template.boom.json is a template.
Invalid candidates are reported as warnings and skipped.`,
	}

	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateShowCmd())

	return cmd
}

// templateEntry is the structured view of a template for json and yaml output.
type templateEntry struct {
	templates.Manifest `json:",inline" yaml:",inline"`
	Modules            []string `json:"modules,omitempty" yaml:"modules,omitempty"`
}

func newTemplateListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available templates",
		Long: `List available templates.

Examples:
  # List templates as a table
  boom template list

  # List templates as JSON
  boom template list -o json`,
		Args: cobra.NoArgs,
		RunE: runTemplateList,
	}

	cmd.Flags().StringVarP(&templateOutputFlag, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseOutputFormat(templateOutputFlag)
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	list := reg.List()

	if format != output.FormatTable {
		entries := make([]templateEntry, 0, len(list))
		for _, m := range list {
			entries = append(entries, templateEntry{Manifest: m})
		}
		return output.WriteStructured(cmd.OutOrStdout(), format, entries)
	}

	if len(list) == 0 {
		output.Info("no templates found", "dir", reg.Root())
		return nil
	}

	tbl := output.NewTable("SLUG", "NAME", "TYPE", "DESCRIPTION")
	for _, m := range list {
		tbl.Row(m.Slug, m.Name, string(m.Type), truncate(m.Description, 60))
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
	return nil
}

func newTemplateShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show template details",
		Long: `Show a template's manifest, module kinds and requirements.

Examples:
  boom template show flask
  boom template show flask -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runTemplateShow,
	}

	cmd.Flags().StringVarP(&templateOutputFlag, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseOutputFormat(templateOutputFlag)
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	m, err := reg.BySlug(args[0])
	if err != nil {
		return err
	}

	kinds, err := templates.ModuleKinds(m)
	if err != nil {
		return err
	}
	entry := templateEntry{Manifest: m, Modules: kinds}

	if format != output.FormatTable {
		return output.WriteStructured(cmd.OutOrStdout(), format, entry)
	}

	out := cmd.OutOrStdout()
	tbl := output.NewTable("FIELD", "VALUE")
	tbl.Row("slug", m.Slug)
	tbl.Row("name", m.Name)
	tbl.Row("type", string(m.Type))
	tbl.Row("description", m.Description)
	tbl.Row("author", m.Author)
	tbl.Row("url", m.URL)
	tbl.Row("dir", m.AbsDir)
	if len(kinds) > 0 {
		tbl.Row("modules", strings.Join(kinds, ", "))
	}
	if len(m.RequiredPackages) > 0 {
		tbl.Row("requirements", strings.Join(m.RequiredPackages, ", "))
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}
