package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boomcli/boom/internal/errors"
	"github.com/boomcli/boom/internal/testutil"
)

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd()

	assert.Equal(t, "config", cmd.Use)
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"init", "vet"}, names)
	assert.NotNil(t, NewConfigInitCmd().Flags().Lookup("force"))
}

func TestConfigInit_CreatesFile(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "", "config", "init")
	require.NoError(t, err)

	path := filepath.Join(env.home, ".boom", "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "templatesDir: ~/.boom/templates")
	assert.Contains(t, string(data), "mergePolicy: skip")
	assert.Contains(t, stdout, "Configuration initialized at "+path)
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	env := newCLIEnv(t)
	path := testutil.WriteFile(t, filepath.Join(env.home, ".boom"), "config.yaml", "mergePolicy: merge\n")

	_, _, err := env.run(t, "", "config", "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "configuration already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mergePolicy: merge\n", string(data))

	_, _, err = env.run(t, "", "config", "init", "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mergePolicy: skip")
}

func TestConfigInit_CustomPath(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "boom.yaml")

	_, _, err := env.run(t, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigVet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    int
	}{
		{name: "valid", content: "mergePolicy: overwrite\n", code: oerrors.ExitSuccess},
		{name: "bad merge policy", content: "mergePolicy: replace\n", code: oerrors.ExitValidationError},
		{name: "bad yaml", content: "mergePolicy: [\n", code: oerrors.ExitValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			testutil.WriteFile(t, filepath.Join(env.home, ".boom"), "config.yaml", tt.content)

			stdout, _, err := env.run(t, "", "config", "vet")
			assert.Equal(t, tt.code, oerrors.ExitCodeFromError(err))
			if tt.code == oerrors.ExitSuccess {
				assert.Contains(t, stdout, "Configuration is valid")
			}
		})
	}
}

func TestConfigVet_Missing(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "config", "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "boom config init")
}
