// Package project holds the variable context that drives materialization and
// the project settings file that persists it.
package project

import (
	"slices"

	"github.com/boomcli/boom/internal/render"
	"github.com/boomcli/boom/internal/templates"
)

// Context variable names.
const (
	KeyProjectName        = "project_name"
	KeyProjectNamePath    = "project_name_path"
	KeyProjectDescription = "project_description"
	KeyAuthorName         = "author_name"
	KeyAuthorURL          = "author_url"
	KeyProjectRoot        = "project_root"
	KeyTemplate           = "template"

	// KeyModuleName and KeyModuleNamePlural are added for module generation.
	KeyModuleName       = "module_name"
	KeyModuleNamePlural = "module_name_plural"
)

type entry struct {
	key   string
	value string
}

// Context is an ordered, immutable mapping of variable names to values plus
// the selected template. Every modifier returns a new Context.
type Context struct {
	entries  []entry
	template *templates.Manifest
}

// NewContext returns an empty context.
func NewContext() Context {
	return Context{}
}

// With returns a copy of c with key set to value. An existing key keeps its
// position.
func (c Context) With(key, value string) Context {
	out := Context{entries: slices.Clone(c.entries), template: c.template}
	for i := range out.entries {
		if out.entries[i].key == key {
			out.entries[i].value = value
			return out
		}
	}
	out.entries = append(out.entries, entry{key: key, value: value})
	return out
}

// WithTemplate returns a copy of c that references m.
func (c Context) WithTemplate(m templates.Manifest) Context {
	out := Context{entries: slices.Clone(c.entries)}
	out.template = &m
	return out
}

// Get returns the value for key.
func (c Context) Get(key string) (string, bool) {
	for _, e := range c.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Value returns the value for key or "".
func (c Context) Value(key string) string {
	v, _ := c.Get(key)
	return v
}

// Keys returns the variable names in insertion order.
func (c Context) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of variables.
func (c Context) Len() int {
	return len(c.entries)
}

// Template returns the selected template manifest.
func (c Context) Template() (templates.Manifest, bool) {
	if c.template == nil {
		return templates.Manifest{}, false
	}
	return *c.template, true
}

// Values returns a copy of the variables as a plain map.
func (c Context) Values() map[string]string {
	m := make(map[string]string, len(c.entries))
	for _, e := range c.entries {
		m[e.key] = e.value
	}
	return m
}

// Vars returns the render variables, with the template manifest exposed
// under "template".
func (c Context) Vars() render.Vars {
	vars := make(render.Vars, len(c.entries)+1)
	for _, e := range c.entries {
		vars[e.key] = e.value
	}
	if c.template != nil {
		t := c.template
		vars[KeyTemplate] = map[string]any{
			"slug":        t.Slug,
			"name":        t.Name,
			"description": t.Description,
			"author":      t.Author,
			"url":         t.URL,
			"type":        string(t.Type),
		}
	}
	return vars
}

// SanitizeName derives the package identifier from a human project name.
func SanitizeName(name string) string {
	return render.SnakeCase(name)
}
