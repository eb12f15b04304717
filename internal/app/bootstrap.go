package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cyspec/internal/config"
	"cyspec/internal/cypress"
	"cyspec/internal/discovery"
	"cyspec/internal/grouping"
	"cyspec/internal/reporting"
	"cyspec/pkg/logging"
)

// Failure messages surfaced as the run's failure reason. Workflows match on
// them, so they must not change.
const (
	MsgNoSupportedConfig = "No supported Cypress config file found."
	MsgNoTests           = "No tests found"
	msgUnexpectedFormat  = "Action failed with error: %v"
)

// Failure is returned by Run once the failure has been reported. Callers only
// need to set the exit status.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Application wires the parser, grouping and the reporter for one run.
type Application struct {
	config   *Config
	parser   *cypress.Parser
	reporter reporting.Reporter
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config, out io.Writer) (*Application, error) {
	reporter, err := reporting.New(cfg.Run.OutputFormat, out)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to create reporter")
		return nil, fmt.Errorf("failed to create reporter: %w", err)
	}

	return &Application{
		config:   cfg,
		parser:   newParser(cfg.Run),
		reporter: reporter,
	}, nil
}

func newParser(run config.RunConfig) *cypress.Parser {
	opts := []cypress.Option{
		cypress.WithGlobOptions(discovery.Options{FollowSymlinks: run.FollowSymbolicLinks}),
	}
	if run.ConfigFile != "" {
		opts = append(opts, cypress.WithConfigFile(run.ConfigFile))
	}
	return cypress.NewParser(run.WorkingDirectory, opts...)
}

// Run discovers the specs, groups them and publishes the outputs. Every
// failure is reported through the reporter and returned as a *Failure.
func (a *Application) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = a.fail(fmt.Sprintf(msgUnexpectedFormat, r))
		}
	}()

	logging.Debug("Bootstrap", "Run configuration: %+v", a.config.Run)

	files, err := a.parser.Parse(ctx)
	switch {
	case errors.Is(err, cypress.ErrNoSupportedConfig):
		logging.Debug("Bootstrap", "%v", err)
		return a.fail(MsgNoSupportedConfig)
	case err != nil:
		return a.fail(fmt.Sprintf(msgUnexpectedFormat, err))
	}

	if files.Empty() {
		return a.fail(MsgNoTests)
	}

	files = a.group(files)

	if err := a.reporter.ReportOutputs(files); err != nil {
		return a.fail(fmt.Sprintf(msgUnexpectedFormat, err))
	}
	return nil
}

// group applies the same runner count to both categories independently.
func (a *Application) group(files cypress.TestFiles) cypress.TestFiles {
	if !a.config.Run.GroupingEnabled() {
		return files
	}
	count := a.config.Run.CountRunners
	files.IntegrationTests = grouping.Group(count, files.IntegrationTests)
	if files.HasComponent {
		files.ComponentTests = grouping.Group(count, files.ComponentTests)
	}
	logging.Debug("Bootstrap", "Grouped specs for %d runners: %d integration and %d component groups",
		count, len(files.IntegrationTests), len(files.ComponentTests))
	return files
}

func (a *Application) fail(message string) error {
	logging.Debug("Bootstrap", "Run failed: %s", message)
	if err := a.reporter.ReportFailure(message); err != nil {
		logging.Error("Bootstrap", err, "Failed to report failure")
	}
	return &Failure{Message: message}
}
