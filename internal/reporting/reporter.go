package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cyspec/internal/config"
	"cyspec/internal/cypress"
)

// Output names published for downstream jobs.
const (
	OutputIntegrationTests = "integration-tests"
	OutputComponentTests   = "component-tests"
)

// Reporter publishes the result of one discovery run.
type Reporter interface {
	// ReportOutputs publishes the discovered (and possibly grouped) specs.
	ReportOutputs(files cypress.TestFiles) error
	// ReportFailure publishes the run's failure reason.
	ReportFailure(message string) error
}

// Output is one named output value.
type Output struct {
	Name  string
	Value string
}

// Outputs renders files as the ordered list of named outputs. Every value is
// a JSON array of strings. component-tests is left out entirely when the
// configuration declares no component category.
func Outputs(files cypress.TestFiles) ([]Output, error) {
	integration, err := encodeList(files.IntegrationTests)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", OutputIntegrationTests, err)
	}
	outputs := []Output{{Name: OutputIntegrationTests, Value: integration}}

	if files.HasComponent {
		component, err := encodeList(files.ComponentTests)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", OutputComponentTests, err)
		}
		outputs = append(outputs, Output{Name: OutputComponentTests, Value: component})
	}
	return outputs, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New returns the reporter for format writing to out. The github reporter
// takes its files from GITHUB_OUTPUT and GITHUB_STEP_SUMMARY.
func New(format string, out io.Writer) (Reporter, error) {
	switch format {
	case config.OutputFormatGitHub:
		return NewGitHubReporter(out, os.Getenv("GITHUB_OUTPUT"), os.Getenv("GITHUB_STEP_SUMMARY")), nil
	case config.OutputFormatJSON:
		return NewJSONReporter(out), nil
	case config.OutputFormatYAML:
		return NewYAMLReporter(out), nil
	case config.OutputFormatText:
		return NewTextReporter(out), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
