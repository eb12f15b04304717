package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestFlags mirrors the flags registered by the find command.
func newTestFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyWorkingDirectory, "", "")
	flags.String(KeyConfigFile, "", "")
	flags.String(KeyCountRunners, "", "")
	flags.Bool(KeyFollowSymbolicLinks, true, "")
	flags.String(KeyOutputFormat, "", "")
	return flags
}

// mockGetwd points the process directory at dir for the duration of the test.
func mockGetwd(t *testing.T, dir string) {
	t.Helper()
	original := osGetwd
	osGetwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { osGetwd = original })
}

// clearInputs makes sure a CI environment running these tests does not leak in.
func clearInputs(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_ACTIONS", "")
	for _, key := range inputKeys {
		for _, name := range InputEnvNames(key) {
			t.Setenv(name, "")
		}
	}
}

func TestLoadRunConfig_DefaultOnly(t *testing.T) {
	clearInputs(t)
	tempDir := t.TempDir()
	mockGetwd(t, tempDir)

	cfg, err := LoadRunConfig(newTestFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, tempDir, cfg.WorkingDirectory)
	assert.True(t, cfg.FollowSymbolicLinks)
	assert.Equal(t, 0, cfg.CountRunners)
	assert.False(t, cfg.GroupingEnabled())
	assert.Equal(t, OutputFormatJSON, cfg.OutputFormat)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadRunConfig_GitHubActionsDefaultsToGitHubFormat(t *testing.T) {
	clearInputs(t)
	t.Setenv("GITHUB_ACTIONS", "true")
	mockGetwd(t, t.TempDir())

	cfg, err := LoadRunConfig(nil, "")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatGitHub, cfg.OutputFormat)
}

func TestLoadRunConfig_ActionInputs(t *testing.T) {
	clearInputs(t)
	tempDir := t.TempDir()
	mockGetwd(t, tempDir)

	t.Setenv("INPUT_WORKING-DIRECTORY", "app")
	t.Setenv("INPUT_COUNT-RUNNERS", "3")
	t.Setenv("INPUT_FOLLOW-SYMBOLIC-LINKS", "false")
	t.Setenv("INPUT_CONFIG-FILE", "cypress.config.ts")

	cfg, err := LoadRunConfig(newTestFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, "app"), cfg.WorkingDirectory)
	assert.Equal(t, 3, cfg.CountRunners)
	assert.False(t, cfg.FollowSymbolicLinks)
	assert.Equal(t, filepath.Join(tempDir, "app", "cypress.config.ts"), cfg.ConfigFile)
}

func TestLoadRunConfig_FlagsOverrideInputs(t *testing.T) {
	clearInputs(t)
	tempDir := t.TempDir()
	mockGetwd(t, tempDir)

	t.Setenv("INPUT_COUNT-RUNNERS", "3")
	t.Setenv("INPUT_OUTPUT-FORMAT", "yaml")

	flags := newTestFlags()
	require.NoError(t, flags.Set(KeyCountRunners, "5"))

	cfg, err := LoadRunConfig(flags, "")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.CountRunners, "explicit flag should win over INPUT_ variable")
	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat, "unset flag should fall back to INPUT_ variable")
}

func TestLoadRunConfig_EnvFile(t *testing.T) {
	clearInputs(t)
	tempDir := t.TempDir()
	mockGetwd(t, tempDir)

	// godotenv does not override variables that already exist, so drop the
	// empty ones clearInputs registered.
	for _, name := range []string{"INPUT_COUNT_RUNNERS", "INPUT_WORKING_DIRECTORY"} {
		require.NoError(t, os.Unsetenv(name))
		t.Cleanup(func() { os.Unsetenv(name) })
	}

	projectDir := filepath.Join(tempDir, "web")
	envFile := filepath.Join(tempDir, "inputs.env")
	content := "INPUT_COUNT_RUNNERS=4\nINPUT_WORKING_DIRECTORY=" + projectDir + "\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	cfg, err := LoadRunConfig(newTestFlags(), envFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.CountRunners)
	assert.Equal(t, projectDir, cfg.WorkingDirectory)
}

func TestLoadRunConfig_UnderscoreInputNames(t *testing.T) {
	clearInputs(t)
	mockGetwd(t, t.TempDir())
	t.Setenv("INPUT_OUTPUT_FORMAT", "text")
	t.Setenv("INPUT_FOLLOW_SYMBOLIC_LINKS", "false")

	cfg, err := LoadRunConfig(newTestFlags(), "")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
	assert.False(t, cfg.FollowSymbolicLinks)
}

func TestInputEnvNames(t *testing.T) {
	assert.Equal(t, []string{"INPUT_COUNT-RUNNERS", "INPUT_COUNT_RUNNERS"}, InputEnvNames(KeyCountRunners))
	assert.Equal(t, []string{"INPUT_OUTPUT-FORMAT", "INPUT_OUTPUT_FORMAT"}, InputEnvNames(KeyOutputFormat))
}

func TestLoadRunConfig_MissingEnvFile(t *testing.T) {
	clearInputs(t)
	mockGetwd(t, t.TempDir())

	_, err := LoadRunConfig(newTestFlags(), filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading env file")
}

func TestLoadRunConfig_InvalidFollowSymlinksKeepsDefault(t *testing.T) {
	clearInputs(t)
	mockGetwd(t, t.TempDir())
	t.Setenv("INPUT_FOLLOW-SYMBOLIC-LINKS", "maybe")

	cfg, err := LoadRunConfig(newTestFlags(), "")
	require.NoError(t, err)
	assert.True(t, cfg.FollowSymbolicLinks)
}

func TestLoadRunConfig_UnsupportedOutputFormat(t *testing.T) {
	clearInputs(t)
	mockGetwd(t, t.TempDir())

	flags := newTestFlags()
	require.NoError(t, flags.Set(KeyOutputFormat, "xml"))

	_, err := LoadRunConfig(flags, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "xml"`)
}

func TestParseCountRunners(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 0},
		{"positive", "4", 4},
		{"padded", " 2 ", 2},
		{"zero", "0", 0},
		{"negative", "-3", 0},
		{"not a number", "four", 0},
		{"float", "2.5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCountRunners(tt.raw))
		})
	}
}
