package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/templates"
	"github.com/boomcli/boom/internal/testutil"
)

func validValues() map[string]string {
	return map[string]string{
		KeyProjectName:        "My App",
		KeyProjectNamePath:    "my_app",
		KeyProjectDescription: "A small web application for testing",
		KeyAuthorName:         "Jane Doe",
		KeyAuthorURL:          "https://github.com/jane",
	}
}

func fullContext(t *testing.T) Context {
	t.Helper()
	c := NewContext()
	for _, f := range Fields {
		c = c.With(f.Key, validValues()[f.Key])
	}
	return c.With(KeyProjectRoot, t.TempDir()).
		WithTemplate(templates.Manifest{Slug: "flask", Name: "Flask", Type: templates.TypeApp, RootDir: "flask"})
}

func TestContext_WithIsImmutableAndOrdered(t *testing.T) {
	base := NewContext().With("b", "1").With("a", "2")
	next := base.With("b", "3").With("c", "4")

	assert.Equal(t, []string{"b", "a"}, base.Keys())
	assert.Equal(t, "1", base.Value("b"))

	assert.Equal(t, []string{"b", "a", "c"}, next.Keys())
	assert.Equal(t, "3", next.Value("b"))
	assert.Equal(t, 3, next.Len())

	_, ok := base.Get("c")
	assert.False(t, ok)
}

func TestContext_Vars(t *testing.T) {
	c := fullContext(t)
	vars := c.Vars()

	assert.Equal(t, "my_app", vars[KeyProjectNamePath])
	tpl, ok := vars[KeyTemplate].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "flask", tpl["slug"])
	assert.Equal(t, "app", tpl["type"])

	_, ok = NewContext().Vars()[KeyTemplate]
	assert.False(t, ok)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my_cool_app", SanitizeName("My Cool-App!"))
	assert.Equal(t, "blog", SanitizeName("Blog"))
}

func TestPending(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		assert.Empty(t, Pending(validValues()))
	})

	t.Run("empty input lists every field in order", func(t *testing.T) {
		pending := Pending(map[string]string{})
		keys := make([]string, len(pending))
		for i, f := range pending {
			keys[i] = f.Key
		}
		assert.Equal(t, []string{KeyProjectName, KeyProjectNamePath, KeyProjectDescription, KeyAuthorName, KeyAuthorURL}, keys)
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"name starts with digit", KeyProjectName, "1app"},
		{"name too short", KeyProjectName, "ab"},
		{"name with dash", KeyProjectName, "my-app"},
		{"path with space", KeyProjectNamePath, "my app"},
		{"short description", KeyProjectDescription, "too short"},
		{"author with digits", KeyAuthorName, "R2D2"},
		{"url without scheme", KeyAuthorURL, "github.com/jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			values[tt.key] = tt.value
			pending := Pending(values)
			require.Len(t, pending, 1)
			assert.Equal(t, tt.key, pending[0].Key)
		})
	}
}

func TestContext_Validate(t *testing.T) {
	require.NoError(t, fullContext(t).Validate())

	err := fullContext(t).With(KeyProjectRoot, "relative/dir").Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, KeyProjectRoot, detail.Field)

	err = NewContext().With(KeyProjectName, "ok name").Validate()
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, KeyProjectNamePath, detail.Field)
	assert.Contains(t, detail.Message, "no template selected")
}

func TestSettings_RoundTrip(t *testing.T) {
	root := t.TempDir()
	c := fullContext(t).With(KeyProjectRoot, root)
	require.NoError(t, SaveSettings(root, c))

	data, err := os.ReadFile(filepath.Join(root, SettingsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"template": {`)
	assert.Contains(t, string(data), `"slug": "flask"`)

	s, err := LoadSettings(root)
	require.NoError(t, err)
	assert.Equal(t, "flask", s.Template.Slug)
	assert.Equal(t, "flask", s.Template.RootDir)
	assert.Equal(t, c.Keys(), s.Context.Keys())
	assert.Equal(t, c.Values(), s.Context.Values())
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadSettings(t.TempDir())
		assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	})

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{"},
		{"array", "[]"},
		{"no template", `{"project_name": "x"}`},
		{"bad template", `{"template": "flask"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			testutil.WriteFile(t, root, SettingsFile, tt.content)
			_, err := LoadSettings(root)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestSettings_Restore(t *testing.T) {
	tplRoot := t.TempDir()
	testutil.WriteAppTemplate(t, tplRoot, "flask")
	reg, err := templates.Load(tplRoot)
	require.NoError(t, err)

	projectRoot := t.TempDir()
	testutil.WriteFile(t, projectRoot, SettingsFile, `{
  "project_name": "My App",
  "project_name_path": "my_app",
  "project_root": "/somewhere/else",
  "extra": 3,
  "template": {"slug": "flask"}
}`)

	s, err := LoadSettings(projectRoot)
	require.NoError(t, err)

	c, err := s.Restore(reg, projectRoot)
	require.NoError(t, err)
	assert.Equal(t, projectRoot, c.Value(KeyProjectRoot))
	assert.Equal(t, []string{KeyProjectName, KeyProjectNamePath, KeyProjectRoot}, c.Keys())
	m, ok := c.Template()
	require.True(t, ok)
	assert.Equal(t, "flask", m.Slug)

	s.Template = TemplateRef{Slug: "renamed", RootDir: "flask"}
	c, err = s.Restore(reg, projectRoot)
	require.NoError(t, err)
	m, _ = c.Template()
	assert.Equal(t, "flask", m.Slug)

	s.Template = TemplateRef{Slug: "gone"}
	_, err = s.Restore(reg, projectRoot)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, SettingsFile, `{"template":{"slug":"flask"}}`)
	nested := filepath.Join(root, "my_app", "blog")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = FindRoot(t.TempDir())
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}
