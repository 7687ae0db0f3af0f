package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/output"
)

// Warning is a non-fatal problem found while loading the registry.
type Warning struct {
	// Dir is the candidate template directory.
	Dir string

	// Err describes the problem.
	Err error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Dir, w.Err)
}

// Registry is an immutable index of the valid templates under a root.
type Registry struct {
	root      string
	manifests []Manifest
	bySlug    map[string]int
	warnings  []Warning
}

// Load scans the immediate subdirectories of templatesRoot. Invalid
// candidates and duplicate slugs are recorded as warnings; only a missing or
// unreadable root fails the load.
func Load(templatesRoot string) (*Registry, error) {
	abs, err := filepath.Abs(templatesRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving templates root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("templates directory does not exist", abs,
				"Set templatesDir in ~/.boom/config.yaml or pass --templates-dir.")
		}
		return nil, fmt.Errorf("reading templates root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, oerrors.NewValidationError("templates root is not a directory", abs, "templatesDir", "")
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("listing templates root %s: %w", abs, err)
	}

	validator, err := NewManifestValidator()
	if err != nil {
		return nil, err
	}

	r := &Registry{
		root:   abs,
		bySlug: make(map[string]int),
	}

	// os.ReadDir sorts by name, so "later" is lexicographically later.
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		dir := filepath.Join(abs, name)
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}

		m, err := loadCandidate(validator, abs, name)
		if err != nil {
			output.Debug("skipping template", "dir", dir, "err", err)
			r.warnings = append(r.warnings, Warning{Dir: dir, Err: err})
			continue
		}

		if i, dup := r.bySlug[m.Slug]; dup {
			err := fmt.Errorf("duplicate slug %q already defined by %s", m.Slug, r.manifests[i].AbsDir)
			r.warnings = append(r.warnings, Warning{Dir: dir, Err: err})
			continue
		}

		r.bySlug[m.Slug] = len(r.manifests)
		r.manifests = append(r.manifests, m)
		output.Debug("loaded template", "slug", m.Slug, "type", m.Type, "dir", dir)
	}

	return r, nil
}

// LoadManifest reads and validates a single template directory under
// templatesRoot without scanning its siblings.
func LoadManifest(templatesRoot, rootDir string) (Manifest, error) {
	validator, err := NewManifestValidator()
	if err != nil {
		return Manifest{}, err
	}
	abs, err := filepath.Abs(templatesRoot)
	if err != nil {
		return Manifest{}, err
	}
	return loadCandidate(validator, abs, rootDir)
}

func loadCandidate(v *ManifestValidator, root, name string) (Manifest, error) {
	dir := filepath.Join(root, name)
	path := filepath.Join(dir, ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, oerrors.NewInvalidManifestError(path, fmt.Errorf("missing %s", ManifestFile))
		}
		return Manifest{}, oerrors.NewInvalidManifestError(path, err)
	}

	if err := v.Validate(path, data); err != nil {
		return Manifest{}, oerrors.NewInvalidManifestError(path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, oerrors.NewInvalidManifestError(path, err)
	}

	reqs, err := LoadRequirements(dir)
	if err != nil {
		return Manifest{}, oerrors.NewInvalidManifestError(filepath.Join(dir, RequirementsFile), err)
	}

	m.RootDir = name
	m.AbsDir = dir
	m.RequiredPackages = reqs
	return m, nil
}

// Root returns the absolute templates root.
func (r *Registry) Root() string {
	return r.root
}

// BySlug returns the manifest with the given slug.
func (r *Registry) BySlug(slug string) (Manifest, error) {
	i, ok := r.bySlug[slug]
	if !ok {
		hint := "no templates are installed"
		if len(r.manifests) > 0 {
			hint = "available templates: " + strings.Join(r.Slugs(), ", ")
		}
		return Manifest{}, oerrors.NewNotFoundError(
			fmt.Sprintf("template %q not found", slug), r.root, hint)
	}
	return r.manifests[i].clone(), nil
}

// List returns all loaded manifests in directory order.
func (r *Registry) List() []Manifest {
	out := make([]Manifest, len(r.manifests))
	for i, m := range r.manifests {
		out[i] = m.clone()
	}
	return out
}

// Slugs returns the loaded slugs in directory order.
func (r *Registry) Slugs() []string {
	slugs := make([]string, len(r.manifests))
	for i, m := range r.manifests {
		slugs[i] = m.Slug
	}
	return slugs
}

// Len returns the number of loaded templates.
func (r *Registry) Len() int {
	return len(r.manifests)
}

// Warnings returns the non-fatal problems found during Load.
func (r *Registry) Warnings() []Warning {
	return append([]Warning(nil), r.warnings...)
}
