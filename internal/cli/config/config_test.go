package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultInstallCommand, cfg.InstallCommand)
	assert.Equal(t, DefaultTestCommand, cfg.TestCommand)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, DefaultCleanPatterns(), cfg.CleanPatterns())
	assert.Equal(t, DefaultWatchIgnore(), cfg.WatchIgnorePatterns())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "edtext.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
test_command: pytest -x
clean:
  patterns:
    - "**/__pycache__"
tasks:
  lint:
    description: Run the linter
    command: ruff check .
`), 0o644))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "pytest -x", cfg.TestCommand)
	assert.Equal(t, DefaultInstallCommand, cfg.InstallCommand)
	assert.Equal(t, []string{"**/__pycache__"}, cfg.CleanPatterns())
	require.Contains(t, cfg.Tasks, "lint")
	assert.Equal(t, "ruff check .", cfg.Tasks["lint"].Command)
	assert.Equal(t, "Run the linter", cfg.Tasks["lint"].Description)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoad_FindsConfigUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "edtext.yml"), []byte("verbose: true\n"), 0o644))
	nested := filepath.Join(root, "src", "edtext")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, root, cfg.ProjectRoot)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edtext.yaml"), []byte("output: text\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("EDTEXT_OUTPUT", "json")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("EDTEXT_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	require.NoError(t, flags.Parse([]string{"--output", "markdown"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "text", "output format")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("install_command: uv pip install -e .\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load(other, nil)
	require.NoError(t, err)
	assert.Equal(t, "uv pip install -e .", cfg.InstallCommand)
}

func TestLoad_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edtext.yaml"), []byte("{not yaml"), 0o644))
	t.Chdir(dir)

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
