package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"cyspec/internal/cypress"
	"cyspec/pkg/logging"

	"github.com/google/uuid"
)

// GitHubReporter writes step outputs the way a GitHub Actions step does.
type GitHubReporter struct {
	out         io.Writer
	outputPath  string
	summaryPath string
	newID       func() string
}

// NewGitHubReporter creates a reporter appending outputs to outputPath. When
// outputPath is empty the deprecated ::set-output command is written to out
// instead. summaryPath, when set, receives a markdown summary.
func NewGitHubReporter(out io.Writer, outputPath, summaryPath string) *GitHubReporter {
	return &GitHubReporter{
		out:         out,
		outputPath:  outputPath,
		summaryPath: summaryPath,
		newID:       uuid.NewString,
	}
}

// ReportOutputs publishes one output per category.
func (r *GitHubReporter) ReportOutputs(files cypress.TestFiles) error {
	outputs, err := Outputs(files)
	if err != nil {
		return err
	}

	if r.outputPath == "" {
		logging.Debug("GitHubReporter", "GITHUB_OUTPUT is not set, falling back to ::set-output")
		for _, o := range outputs {
			if _, err := fmt.Fprintf(r.out, "::set-output name=%s::%s\n", o.Name, logging.EscapeData(o.Value)); err != nil {
				return err
			}
		}
	} else {
		var b strings.Builder
		for _, o := range outputs {
			b.WriteString(r.fileCommand(o))
		}
		if err := appendFile(r.outputPath, b.String()); err != nil {
			return fmt.Errorf("failed to write step outputs: %w", err)
		}
	}

	for _, o := range outputs {
		logging.Info("GitHubReporter", "Set output %s=%s", o.Name, o.Value)
	}

	if r.summaryPath != "" {
		if err := appendFile(r.summaryPath, summary(files)); err != nil {
			logging.Warn("GitHubReporter", "Failed to write step summary: %v", err)
		}
	}
	return nil
}

// ReportFailure emits an error annotation. The process exit code carries the
// failure itself.
func (r *GitHubReporter) ReportFailure(message string) error {
	_, err := fmt.Fprintf(r.out, "::error::%s\n", logging.EscapeData(message))
	return err
}

// fileCommand renders o in the multiline `name<<delimiter` syntax. The
// delimiter is random so a value can never terminate its own block.
func (r *GitHubReporter) fileCommand(o Output) string {
	delimiter := "ghadelimiter_" + r.newID()
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", o.Name, delimiter, o.Value, delimiter)
}

func summary(files cypress.TestFiles) string {
	var b strings.Builder
	b.WriteString("### Cypress specs\n\n")
	b.WriteString("| Output | Entries |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| `%s` | %d |\n", OutputIntegrationTests, len(files.IntegrationTests))
	if files.HasComponent {
		fmt.Fprintf(&b, "| `%s` | %d |\n", OutputComponentTests, len(files.ComponentTests))
	}
	b.WriteString("\n")
	return b.String()
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
