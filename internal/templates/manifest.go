// Package templates discovers template manifests and indexes them by slug.
package templates

import "slices"

const (
	// ManifestFile is the per-template manifest. It is never copied into a project.
	ManifestFile = "template.boom.json"

	// RequirementsFile is the optional newline-delimited list of external requirements.
	RequirementsFile = "requirements.txt"

	// AppDir is the top-level directory of an app template that holds module
	// templates, one subdirectory per module kind.
	AppDir = "app"

	// DefaultModuleInitFunc is used when an app manifest omits module_init_func.
	DefaultModuleInitFunc = "init_app"
)

// Type is the manifest type tag.
type Type string

const (
	// TypeApp is a package-style project that accepts generated modules.
	TypeApp Type = "app"

	// TypeFunction is a single-function project materialized as-is.
	TypeFunction Type = "function"
)

// Manifest describes a template: identity, metadata, and resolved location.
type Manifest struct {
	Slug           string `json:"slug" yaml:"slug"`
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description"`
	Author         string `json:"author" yaml:"author"`
	URL            string `json:"url" yaml:"url"`
	Type           Type   `json:"type" yaml:"type"`
	ModuleInitFunc string `json:"module_init_func,omitempty" yaml:"module_init_func,omitempty"`

	// RootDir is the template's directory name under the templates root.
	RootDir string `json:"root_dir,omitempty" yaml:"root_dir,omitempty"`

	// AbsDir is the resolved absolute template directory.
	AbsDir string `json:"abs_dir,omitempty" yaml:"abs_dir,omitempty"`

	// RequiredPackages holds the lines of the template's requirements file.
	RequiredPackages []string `json:"required_packages,omitempty" yaml:"required_packages,omitempty"`
}

// Kind returns the behavior variant for the manifest's type.
// It returns nil for a type that did not pass validation.
func (m Manifest) Kind() Kind {
	return kindFor(m.Type)
}

// InitFunc returns the module registration function name.
func (m Manifest) InitFunc() string {
	if m.ModuleInitFunc != "" {
		return m.ModuleInitFunc
	}
	return DefaultModuleInitFunc
}

func (m Manifest) clone() Manifest {
	m.RequiredPackages = slices.Clone(m.RequiredPackages)
	return m
}
