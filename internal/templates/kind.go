package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/inject"
)

// AggregatorFile is the package file of an app project that registers modules.
const AggregatorFile = "__init__.py"

// projectDirAlias is a top-level app directory renamed to the project package.
const projectDirAlias = "project"

// Kind is the per-type behavior of a template: which top-level entries are
// materialized and how generated modules are registered.
type Kind interface {
	// Type returns the manifest tag for this kind.
	Type() Type

	// TopLevelEntry maps a top-level template entry to the raw (unrendered)
	// output name. ok is false when the entry must not be materialized.
	TopLevelEntry(name string, isDir bool) (out string, ok bool)

	// PlanModule resolves where a module of the given kind comes from, where
	// it goes, and which registration lines it needs.
	PlanModule(m Manifest, spec ModuleSpec) (*ModulePlan, error)
}

// ModuleSpec describes a module to add to an already materialized project.
type ModuleSpec struct {
	// Kind is the module template name, e.g. "blueprint".
	Kind string

	// Name is the sanitized module name.
	Name string

	// Plural is the plural of Kind used to build the registration marker.
	Plural string

	// ProjectRoot is the absolute project directory.
	ProjectRoot string

	// PackageName is the project's package directory (project_name_path).
	PackageName string
}

// ModulePlan is the resolved form of a ModuleSpec.
type ModulePlan struct {
	Source     string
	Target     string
	Injections []inject.Request
}

// Marker returns the registration marker for a plural kind name.
func Marker(plural string) string {
	return "[b] " + upperFirst(plural)
}

var (
	appKindValue      Kind = appKind{}
	functionKindValue Kind = functionKind{}
)

func kindFor(t Type) Kind {
	switch t {
	case TypeApp:
		return appKindValue
	case TypeFunction:
		return functionKindValue
	default:
		return nil
	}
}

type appKind struct{}

func (appKind) Type() Type { return TypeApp }

func (appKind) TopLevelEntry(name string, isDir bool) (string, bool) {
	if name == AppDir {
		return "", false
	}
	if isDir && name == projectDirAlias {
		return "{{project_name_path}}", true
	}
	return name, true
}

func (appKind) PlanModule(m Manifest, spec ModuleSpec) (*ModulePlan, error) {
	source := filepath.Join(m.AbsDir, AppDir, spec.Kind)
	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		kinds, _ := ModuleKinds(m)
		hint := "this template defines no module kinds"
		if len(kinds) > 0 {
			hint = "available kinds: " + strings.Join(kinds, ", ")
		}
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("template %q has no module kind %q", m.Slug, spec.Kind),
			source, hint)
	}

	pkgDir := filepath.Join(spec.ProjectRoot, spec.PackageName)
	aggregator := filepath.Join(pkgDir, AggregatorFile)
	initFunc := m.InitFunc()

	return &ModulePlan{
		Source: source,
		Target: filepath.Join(pkgDir, spec.Name),
		Injections: []inject.Request{
			{
				Path:              aggregator,
				Line:              fmt.Sprintf("%s.%s(app)", spec.Name, initFunc),
				Marker:            Marker(spec.Plural),
				Pattern:           regexp.MustCompile(`\.` + regexp.QuoteMeta(initFunc) + `\(`),
				MatchMarkerIndent: true,
				Idempotent:        true,
			},
			{
				Path:       aggregator,
				Line:       "from . import " + spec.Name,
				Pattern:    importPattern,
				Idempotent: true,
			},
		},
	}, nil
}

var importPattern = regexp.MustCompile(`\bimport\b`)

type functionKind struct{}

func (functionKind) Type() Type { return TypeFunction }

func (functionKind) TopLevelEntry(name string, _ bool) (string, bool) {
	return name, true
}

func (functionKind) PlanModule(m Manifest, _ ModuleSpec) (*ModulePlan, error) {
	return nil, oerrors.NewUnsupportedError(
		fmt.Sprintf("template %q is a function template and does not accept modules", m.Slug),
		"modules can only be generated in app projects")
}

// ModuleKinds lists the module kinds an app template provides, sorted.
func ModuleKinds(m Manifest) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.AbsDir, AppDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var kinds []string
	for _, e := range entries {
		if e.IsDir() {
			kinds = append(kinds, e.Name())
		}
	}
	return kinds, nil
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
