package config

import "os"

// DefaultRunConfig returns the settings used when no input overrides them.
// WorkingDirectory is left empty and resolved against the process directory
// by LoadRunConfig.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		FollowSymbolicLinks: true,
		CountRunners:        0,
		OutputFormat:        defaultOutputFormat(),
	}
}

// defaultOutputFormat writes step outputs when running inside GitHub Actions
// and plain JSON everywhere else.
func defaultOutputFormat() string {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return OutputFormatGitHub
	}
	return OutputFormatJSON
}

// SupportedOutputFormats lists the values accepted for output-format.
func SupportedOutputFormats() []string {
	return []string{OutputFormatGitHub, OutputFormatJSON, OutputFormatYAML, OutputFormatText}
}
