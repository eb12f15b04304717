package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestInitForCLI_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("Test", "hidden %d", 1)
	Info("Test", "visible %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "subsystem=Test")
	assert.Equal(t, ModeCLI, CurrentMode())
}

func TestInitForActions_WorkflowCommands(t *testing.T) {
	var buf bytes.Buffer
	InitForActions(LevelDebug, &buf)

	Debug("Locator", "found %s", "cypress.json")
	Info("Parser", "plain line")
	Warn("Parser", "careful")
	Error("Parser", errors.New("boom"), "failed to load")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"::debug::[Locator] found cypress.json",
		"[Parser] plain line",
		"::warning::[Parser] careful",
		"::error::[Parser] failed to load: boom",
	}, lines)
	assert.Equal(t, ModeActions, CurrentMode())
}

func TestInitForActions_EscapesPayload(t *testing.T) {
	var buf bytes.Buffer
	InitForActions(LevelDebug, &buf)

	Error("Script", nil, "%s", "line one\nline two 100%")

	assert.Equal(t, "::error::[Script] line one%0Aline two 100%25\n", buf.String())
}

func TestDetectMode(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	assert.Equal(t, ModeActions, DetectMode())

	t.Setenv("GITHUB_ACTIONS", "")
	assert.Equal(t, ModeCLI, DetectMode())
}
