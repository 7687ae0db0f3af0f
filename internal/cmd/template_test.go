package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/testutil"
)

func TestTemplateList_Table(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteAppTemplate(t, env.templates, "flask")
	testutil.WriteManifest(t, env.templates, "lambda", testutil.Manifest("lambda", "function", nil))

	stdout, _, err := env.run(t, "", "template", "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SLUG")
	assert.Contains(t, stdout, "flask")
	assert.Contains(t, stdout, "lambda")
	assert.Contains(t, stdout, "function")
}

func TestTemplateList_JSON(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteAppTemplate(t, env.templates, "flask")
	testutil.WriteManifest(t, env.templates, "lambda", testutil.Manifest("lambda", "function", nil))

	stdout, _, err := env.run(t, "", "template", "list", "-o", "json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "flask", got[0]["slug"])
	assert.Equal(t, "app", got[0]["type"])
	assert.Equal(t, "lambda", got[1]["slug"])
}

func TestTemplateList_Empty(t *testing.T) {
	env := newCLIEnv(t)

	stdout, stderr, err := env.run(t, "", "template", "list")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no templates found")
}

func TestTemplateList_BadFormat(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "template", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestTemplateShow(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteAppTemplate(t, env.templates, "flask")

	stdout, _, err := env.run(t, "", "template", "show", "flask")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Template flask")
	assert.Contains(t, stdout, "blueprint")
	assert.Contains(t, stdout, "flask, pytest")
}

func TestTemplateShow_YAML(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteAppTemplate(t, env.templates, "flask")

	stdout, _, err := env.run(t, "", "template", "show", "flask", "-o", "yaml")
	require.NoError(t, err)

	var got struct {
		Slug             string   `yaml:"slug"`
		Type             string   `yaml:"type"`
		Modules          []string `yaml:"modules"`
		RequiredPackages []string `yaml:"required_packages"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "flask", got.Slug)
	assert.Equal(t, "app", got.Type)
	assert.Equal(t, []string{"blueprint"}, got.Modules)
	assert.Equal(t, []string{"flask", "pytest"}, got.RequiredPackages)
}

func TestTemplateShow_NotFound(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteAppTemplate(t, env.templates, "flask")

	_, _, err := env.run(t, "", "template", "show", "django")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "flask")
}
