package reporting

import (
	"fmt"
	"io"
	"strings"

	"cyspec/internal/cypress"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	entryStyle   = lipgloss.NewStyle().PaddingLeft(2)
	mutedStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("8")).Italic(true)
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// TextReporter prints a human readable summary for terminals.
type TextReporter struct {
	out io.Writer
}

// NewTextReporter creates a TextReporter writing to out.
func NewTextReporter(out io.Writer) *TextReporter {
	return &TextReporter{out: out}
}

func (r *TextReporter) ReportOutputs(files cypress.TestFiles) error {
	var b strings.Builder
	writeSection(&b, OutputIntegrationTests, files.IntegrationTests)
	if files.HasComponent {
		b.WriteString("\n")
		writeSection(&b, OutputComponentTests, files.ComponentTests)
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *TextReporter) ReportFailure(message string) error {
	_, err := fmt.Fprintln(r.out, failureStyle.Render("✗ "+message))
	return err
}

func writeSection(b *strings.Builder, name string, entries []string) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", name, len(entries))))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("none"))
		b.WriteString("\n")
		return
	}
	for _, e := range entries {
		b.WriteString(entryStyle.Render(e))
		b.WriteString("\n")
	}
}
