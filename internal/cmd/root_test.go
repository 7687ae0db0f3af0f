package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boomcli/boom/internal/testutil"
)

// cliEnv isolates a command run from the user's home and environment.
type cliEnv struct {
	home      string
	templates string
	parent    string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{
		home:      t.TempDir(),
		templates: t.TempDir(),
		parent:    t.TempDir(),
	}
	t.Setenv("HOME", env.home)
	t.Setenv("BOOM_CONFIG", "")
	t.Setenv("BOOM_TEMPLATES_DIR", "")
	t.Setenv("BOOM_MERGE_POLICY", "")
	t.Setenv("BOOM_LOG_TIMESTAMPS", "")
	setInteractive(t, false)
	setAccessible(t)
	return env
}

func setInteractive(t *testing.T, v bool) {
	t.Helper()
	prev := isInteractive
	isInteractive = func() bool { return v }
	t.Cleanup(func() { isInteractive = prev })
}

// setAccessible keeps prompts in huh's line mode so they read the command's
// input instead of a terminal.
func setAccessible(t *testing.T) {
	t.Helper()
	prev := accessiblePrompts
	accessiblePrompts = func() bool { return true }
	t.Cleanup(func() { accessiblePrompts = prev })
}

// run executes the root command with args and input on stdin.
func (e *cliEnv) run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(append([]string{"--templates-dir", e.templates, "--timestamps=false"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// newProject creates "My App" from the flask template under e.parent.
func (e *cliEnv) newProject(t *testing.T) string {
	t.Helper()
	_, _, err := e.run(t, "", "new", "My", "App", "-t", "flask",
		"-d", "An application used by the tests",
		"-a", "Jane Doe",
		"-u", "https://example.com",
		"-r", e.parent)
	require.NoError(t, err)
	return filepath.Join(e.parent, "my_app")
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "boom", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"new", "generate", "template", "config", "version"})

	for _, flag := range []string{"config", "templates-dir", "verbose", "timestamps"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestInitializeGlobals_ResolvesTemplatesDir(t *testing.T) {
	env := newCLIEnv(t)
	testutil.WriteAppTemplate(t, env.templates, "flask")

	_, _, err := env.run(t, "", "template", "list")
	require.NoError(t, err)
	assert.Equal(t, env.templates, GetTemplatesDir())
	assert.Equal(t, filepath.Join(env.home, ".boom", "config.yaml"), GetConfigPath())
	require.NotNil(t, GetConfig())
	assert.Equal(t, "skip", GetConfig().MergePolicy)
}

func TestInitializeGlobals_TemplatesDirFromConfig(t *testing.T) {
	env := newCLIEnv(t)
	other := t.TempDir()
	testutil.WriteAppTemplate(t, other, "flask")
	testutil.WriteFile(t, filepath.Join(env.home, ".boom"), "config.yaml", "templatesDir: "+other+"\n")

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"template", "list", "-o", "json"})
	require.NoError(t, root.Execute())

	assert.Equal(t, other, GetTemplatesDir())
	assert.Contains(t, stdout.String(), `"slug": "flask"`)
}

func TestResolveMergePolicy(t *testing.T) {
	newCLIEnv(t)
	boomConfig = nil
	p, err := resolveMergePolicy("")
	require.NoError(t, err)
	assert.Equal(t, "skip", string(p))

	t.Setenv("BOOM_MERGE_POLICY", "merge")
	p, err = resolveMergePolicy("")
	require.NoError(t, err)
	assert.Equal(t, "merge", string(p))

	p, err = resolveMergePolicy("overwrite")
	require.NoError(t, err)
	assert.Equal(t, "overwrite", string(p))

	_, err = resolveMergePolicy("replace")
	assert.Error(t, err)
}
