// Package generate adds modules to projects created from app templates.
package generate

import (
	"fmt"
	"regexp"

	"github.com/jinzhu/inflection"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/inject"
	"github.com/boomcli/boom/internal/output"
	"github.com/boomcli/boom/internal/project"
	"github.com/boomcli/boom/internal/structure"
	"github.com/boomcli/boom/internal/templates"
)

var (
	kindPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	modulePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

// Options configures a module generation.
type Options struct {
	// Kind is the module template under the template's app directory.
	Kind string

	// Name is the human module name; it is sanitized into an identifier.
	Name string

	// Plural overrides the plural of Kind used in the registration marker.
	Plural string

	// ProjectRoot is any directory inside the project.
	ProjectRoot string

	// Policy applies to existing directories inside the module target.
	Policy structure.MergePolicy

	// Force clears a non-empty module directory.
	Force bool

	// DryRun computes injections without writing anything.
	DryRun bool
}

// InjectionResult pairs a registration request with its outcome.
type InjectionResult struct {
	Request inject.Request
	Result  *inject.Result

	// Err is set when the target file could not be read or written, or
	// wraps oerrors.ErrMarkerNotFound when the marker is missing.
	Err error
}

// NeedsManualEdit reports whether the user must add the line by hand.
func (r InjectionResult) NeedsManualEdit() bool {
	return r.Err != nil
}

// Result describes a generated module.
type Result struct {
	Module      string
	Kind        string
	ProjectRoot string
	Target      string
	Files       *structure.Result
	Injections  []InjectionResult
}

// ManualEdits returns the injections the user must apply by hand.
func (r *Result) ManualEdits() []InjectionResult {
	var out []InjectionResult
	for _, i := range r.Injections {
		if i.NeedsManualEdit() {
			out = append(out, i)
		}
	}
	return out
}

// Generator materializes a module template into a project and registers it.
type Generator struct {
	reg  *templates.Registry
	opts Options
}

// NewGenerator creates a generator resolving templates in reg.
func NewGenerator(reg *templates.Registry, opts Options) *Generator {
	return &Generator{reg: reg, opts: opts}
}

// Generate runs the module generation. Registration problems are reported in
// the result and never undo the files already written.
func (g *Generator) Generate() (*Result, error) {
	if !kindPattern.MatchString(g.opts.Kind) {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("invalid module kind %q", g.opts.Kind), "", "kind",
			"Module kinds are directory names under the template's app directory.")
	}

	name := project.SanitizeName(g.opts.Name)
	if !modulePattern.MatchString(name) {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("invalid module name %q", g.opts.Name), "", "name",
			"Module names must start with a letter or underscore.")
	}

	root, err := project.FindRoot(g.opts.ProjectRoot)
	if err != nil {
		return nil, err
	}
	settings, err := project.LoadSettings(root)
	if err != nil {
		return nil, err
	}
	ctx, err := settings.Restore(g.reg, root)
	if err != nil {
		return nil, err
	}

	manifest, _ := ctx.Template()
	pkg := ctx.Value(project.KeyProjectNamePath)
	if pkg == "" {
		return nil, oerrors.NewValidationError("project settings have no project_name_path",
			root, project.KeyProjectNamePath, "")
	}

	plural := g.opts.Plural
	if plural == "" {
		plural = inflection.Plural(g.opts.Kind)
	}

	plan, err := manifest.Kind().PlanModule(manifest, templates.ModuleSpec{
		Kind:        g.opts.Kind,
		Name:        name,
		Plural:      plural,
		ProjectRoot: root,
		PackageName: pkg,
	})
	if err != nil {
		return nil, err
	}

	ctx = ctx.With(project.KeyModuleName, name).
		With(project.KeyModuleNamePlural, inflection.Plural(name))

	output.Debug("generating module",
		"template", manifest.Slug,
		"kind", g.opts.Kind,
		"name", name,
		"target", plan.Target)

	res := &Result{
		Module:      name,
		Kind:        g.opts.Kind,
		ProjectRoot: root,
		Target:      plan.Target,
	}

	if !g.opts.DryRun {
		if err := structure.PrepareTarget(plan.Target, g.opts.Force); err != nil {
			return nil, err
		}
		files, err := structure.New(structure.Options{Policy: g.opts.Policy}).
			CopyTree(plan.Source, plan.Target, ctx.Vars())
		if err != nil {
			return nil, err
		}
		res.Files = files
	}

	for _, req := range plan.Injections {
		apply := inject.Inject
		if g.opts.DryRun {
			apply = inject.Plan
		}
		r, err := apply(req)
		if err == nil && r.Outcome == inject.MarkerNotFound {
			err = oerrors.NewMarkerNotFoundError(req.Path, req.Marker, req.Line)
		}
		res.Injections = append(res.Injections, InjectionResult{Request: req, Result: r, Err: err})
		if err != nil {
			output.Warn("registration failed", "path", req.Path, "err", err)
		}
	}

	return res, nil
}
