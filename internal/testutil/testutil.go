// Package testutil provides filesystem helpers for tests.
package testutil

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes every relative path in files under dir. A path ending in
// "/" creates an empty directory.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if name != "" && name[len(name)-1] == '/' {
			if err := os.MkdirAll(filepath.Join(dir, name), 0o755); err != nil {
				t.Fatalf("failed to create dir %s: %v", name, err)
			}
			continue
		}
		WriteFile(t, dir, name, content)
	}
}

// ReadTree returns every regular file under dir keyed by slash-separated
// relative path.
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", dir, err)
	}
	return out
}

// Manifest returns a valid manifest document for the given slug and type.
// Overrides replace or add keys; a nil override value removes the key.
func Manifest(slug, typ string, overrides map[string]any) map[string]any {
	m := map[string]any{
		"slug":        slug,
		"name":        "Template " + slug,
		"description": "A template used in tests for " + slug,
		"author":      "Test Author",
		"url":         "https://example.com/" + slug,
		"type":        typ,
	}
	for k, v := range overrides {
		if v == nil {
			delete(m, k)
			continue
		}
		m[k] = v
	}
	return m
}

// WriteManifest writes doc as template.boom.json under root/dir and returns
// the template directory.
func WriteManifest(t *testing.T, root, dir string, doc map[string]any) string {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	WriteFile(t, filepath.Join(root, dir), "template.boom.json", string(data))
	return filepath.Join(root, dir)
}

// AppInit is the aggregator file content of the sample app template.
const AppInit = `from flask import Flask

from . import core


def create_app():
    app = Flask(__name__)

    # [b] Blueprints
    core.init_app(app)

    return app
`

// WriteAppTemplate writes a complete app template named dir under root with
// slug "flask" and a "blueprint" module kind.
func WriteAppTemplate(t *testing.T, root, dir string) string {
	t.Helper()
	tplDir := WriteManifest(t, root, dir, Manifest("flask", "app", nil))
	WriteTree(t, tplDir, map[string]string{
		"README.md.tmpl":                           "# {{project_name}}\n\n{{project_description}}\n",
		"requirements.txt":                         "flask\n\npytest\n",
		"{{project_name_path}}/__init__.py.tmpl":   AppInit,
		"{{project_name_path}}/core/__init__.py":   "def init_app(app):\n    pass\n",
		"app/blueprint/__init__.py.tmpl":           "from .views import bp\n\n\ndef init_app(app):\n    app.register_blueprint(bp)\n",
		"app/blueprint/views.py.tmpl":              "bp = Blueprint(\"{{module_name}}\", __name__, url_prefix=\"/{{module_name_plural}}\")\n",
		"app/blueprint/static/{{module_name}}.css": "",
	})
	return tplDir
}
