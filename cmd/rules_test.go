package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"cyspec/internal/app"
	"cyspec/internal/cypress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func executeRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rulesFormat = "yaml"
	var out bytes.Buffer
	rulesCmd := newRulesCmd()
	rulesCmd.SetOut(&out)
	rulesCmd.SetErr(&bytes.Buffer{})
	rulesCmd.SetArgs(args)
	err := rulesCmd.Execute()
	return out.String(), err
}

func TestRulesCommandYAML(t *testing.T) {
	clearInputs(t)
	dir := writeProject(t, map[string]string{
		"cypress.config.js": `module.exports = { e2e: { specPattern: 'e2e/**/*.cy.js' } }`,
	})

	out, err := executeRules(t, "--working-directory", dir)
	require.NoError(t, err)

	var report app.RulesReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, filepath.Join(dir, "cypress.config.js"), report.ConfigFile)
	assert.Equal(t, "modern-script", report.Adapter)
	assert.Equal(t, []string{"e2e/**/*.cy.js"}, report.Rules.Integration.Include)
	require.NotNil(t, report.Rules.Component)
	assert.Contains(t, report.Rules.Component.Exclude, "e2e/**/*.cy.js")
}

func TestRulesCommandJSON(t *testing.T) {
	clearInputs(t)
	dir := writeProject(t, map[string]string{"cypress.json": `{}`})

	out, err := executeRules(t, "--working-directory", dir, "--format", "json")
	require.NoError(t, err)

	var report app.RulesReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "legacy", report.Adapter)
	assert.Equal(t, cypress.DefaultIntegrationFolder, report.Rules.Integration.RootFolder)
	assert.Nil(t, report.Rules.Component)
}

func TestRulesCommandErrors(t *testing.T) {
	clearInputs(t)

	_, err := executeRules(t, "--working-directory", t.TempDir())
	assert.ErrorIs(t, err, cypress.ErrNoSupportedConfig)

	_, err = executeRules(t, "--working-directory", t.TempDir(), "--format", "toml")
	assert.ErrorContains(t, err, `unsupported format "toml"`)
}
