package reporting

import (
	"encoding/json"
	"io"

	"cyspec/internal/cypress"

	"gopkg.in/yaml.v3"
)

// document is the machine-readable result. ComponentTests is a pointer so an
// undeclared component category disappears while an empty one stays `[]`.
type document struct {
	IntegrationTests []string  `json:"integration-tests" yaml:"integration-tests"`
	ComponentTests   *[]string `json:"component-tests,omitempty" yaml:"component-tests,omitempty"`
}

type failureDocument struct {
	Error string `json:"error" yaml:"error"`
}

func newDocument(files cypress.TestFiles) document {
	doc := document{IntegrationTests: files.IntegrationTests}
	if doc.IntegrationTests == nil {
		doc.IntegrationTests = []string{}
	}
	if files.HasComponent {
		component := files.ComponentTests
		if component == nil {
			component = []string{}
		}
		doc.ComponentTests = &component
	}
	return doc
}

// JSONReporter prints the result as a single JSON object.
type JSONReporter struct {
	out io.Writer
}

// NewJSONReporter creates a JSONReporter writing to out.
func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

func (r *JSONReporter) ReportOutputs(files cypress.TestFiles) error {
	return r.encode(newDocument(files))
}

func (r *JSONReporter) ReportFailure(message string) error {
	return r.encode(failureDocument{Error: message})
}

func (r *JSONReporter) encode(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLReporter prints the result as a YAML document.
type YAMLReporter struct {
	out io.Writer
}

// NewYAMLReporter creates a YAMLReporter writing to out.
func NewYAMLReporter(out io.Writer) *YAMLReporter {
	return &YAMLReporter{out: out}
}

func (r *YAMLReporter) ReportOutputs(files cypress.TestFiles) error {
	return r.encode(newDocument(files))
}

func (r *YAMLReporter) ReportFailure(message string) error {
	return r.encode(failureDocument{Error: message})
}

func (r *YAMLReporter) encode(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
