package templates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/testutil"
)

func TestLoad_ValidTemplates(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "b-func", testutil.Manifest("lambda", "function", nil))
	testutil.WriteManifest(t, root, "a-app", testutil.Manifest("flask", "app", map[string]any{
		"module_init_func": "register",
	}))

	reg, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, reg.Warnings())
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"flask", "lambda"}, reg.Slugs())

	m, err := reg.BySlug("flask")
	require.NoError(t, err)
	assert.Equal(t, TypeApp, m.Type)
	assert.Equal(t, "a-app", m.RootDir)
	assert.Equal(t, filepath.Join(reg.Root(), "a-app"), m.AbsDir)
	assert.Equal(t, "register", m.InitFunc())
	assert.Empty(t, m.RequiredPackages)

	fn, err := reg.BySlug("lambda")
	require.NoError(t, err)
	assert.Equal(t, TypeFunction, fn.Kind().Type())
	assert.Equal(t, DefaultModuleInitFunc, fn.InitFunc())
}

func TestLoad_InvalidCandidatesAreSkipped(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{"missing slug", testutil.Manifest("x", "app", map[string]any{"slug": nil})},
		{"short slug", testutil.Manifest("ab", "app", nil)},
		{"slug with underscore", testutil.Manifest("my_tpl", "app", nil)},
		{"empty name", testutil.Manifest("good", "app", map[string]any{"name": ""})},
		{"blank author", testutil.Manifest("good", "app", map[string]any{"author": "   "})},
		{"missing url", testutil.Manifest("good", "app", map[string]any{"url": nil})},
		{"missing description", testutil.Manifest("good", "app", map[string]any{"description": nil})},
		{"unknown type", testutil.Manifest("good", "library", nil)},
		{"numeric name", testutil.Manifest("good", "app", map[string]any{"name": 42})},
		{"bad init func", testutil.Manifest("good", "app", map[string]any{"module_init_func": "init app"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			testutil.WriteManifest(t, root, "broken", tt.doc)
			testutil.WriteManifest(t, root, "valid", testutil.Manifest("valid", "app", nil))

			reg, err := Load(root)
			require.NoError(t, err)
			assert.Equal(t, []string{"valid"}, reg.Slugs())

			warnings := reg.Warnings()
			require.Len(t, warnings, 1)
			assert.Equal(t, filepath.Join(reg.Root(), "broken"), warnings[0].Dir)
			assert.True(t, errors.Is(warnings[0].Err, oerrors.ErrInvalidManifest))
		})
	}
}

func TestLoad_MalformedAndMissingManifests(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "malformed"), ManifestFile, "{not json")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	testutil.WriteFile(t, root, "README.md", "not a template")

	reg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
	assert.Len(t, reg.Warnings(), 2)
	for _, w := range reg.Warnings() {
		assert.True(t, errors.Is(w.Err, oerrors.ErrInvalidManifest), w.String())
	}
}

func TestLoad_UnknownKeysAreIgnored(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "extra", testutil.Manifest("extra", "app", map[string]any{
		"python": ">=3.8",
		"tags":   []string{"web"},
	}))

	reg, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, reg.Warnings())
	assert.Equal(t, []string{"extra"}, reg.Slugs())
}

func TestLoad_DuplicateSlugKeepsFirst(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "alpha", testutil.Manifest("same", "app", map[string]any{"name": "First"}))
	testutil.WriteManifest(t, root, "beta", testutil.Manifest("same", "function", map[string]any{"name": "Second"}))

	reg, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	m, err := reg.BySlug("same")
	require.NoError(t, err)
	assert.Equal(t, "First", m.Name)
	assert.Equal(t, "alpha", m.RootDir)

	warnings := reg.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, filepath.Join(reg.Root(), "beta"), warnings[0].Dir)
	assert.Contains(t, warnings[0].Err.Error(), "duplicate slug")
}

func TestLoad_Requirements(t *testing.T) {
	root := t.TempDir()
	dir := testutil.WriteManifest(t, root, "flask", testutil.Manifest("flask", "app", nil))
	testutil.WriteFile(t, dir, RequirementsFile, "flask>=2.0\n\n  # dev\npytest  \n")

	reg, err := Load(root)
	require.NoError(t, err)

	m, err := reg.BySlug("flask")
	require.NoError(t, err)
	assert.Equal(t, []string{"flask>=2.0", "pytest"}, m.RequiredPackages)
}

func TestLoad_RootErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	})

	t.Run("root is a file", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "file", "x")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})
}

func TestBySlug_NotFound(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "flask", testutil.Manifest("flask", "app", nil))

	reg, err := Load(root)
	require.NoError(t, err)

	_, err = reg.BySlug("django")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Contains(t, detail.Hint, "flask")
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	root := t.TempDir()
	dir := testutil.WriteManifest(t, root, "flask", testutil.Manifest("flask", "app", nil))
	testutil.WriteFile(t, dir, RequirementsFile, "flask\n")

	reg, err := Load(root)
	require.NoError(t, err)

	list := reg.List()
	list[0].Name = "changed"
	list[0].RequiredPackages[0] = "django"

	m, err := reg.BySlug("flask")
	require.NoError(t, err)
	assert.Equal(t, "Template flask", m.Name)
	assert.Equal(t, []string{"flask"}, m.RequiredPackages)
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	testutil.WriteManifest(t, root, "flask", testutil.Manifest("flask", "app", nil))

	m, err := LoadManifest(root, "flask")
	require.NoError(t, err)
	assert.Equal(t, "flask", m.Slug)

	_, err = LoadManifest(root, "missing")
	assert.True(t, errors.Is(err, oerrors.ErrInvalidManifest))
}
