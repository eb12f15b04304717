package cmd

import (
	"context"
	"fmt"

	"cyspec/internal/app"
	"cyspec/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// findEnvFile is an optional dotenv file with INPUT_* variables, handy for
// reproducing a workflow run locally.
var findEnvFile string

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List the Cypress spec files of a project",
		Long: `Locates the Cypress config file in the working directory, resolves its spec
patterns and prints the matching spec files as the integration-tests and
component-tests outputs.

Inputs are read from flags and, as inside a GitHub Action, from INPUT_*
environment variables (for example INPUT_COUNT-RUNNERS, or INPUT_COUNT_RUNNERS
as written in an --env-file). Flags win.

component-tests is only written when the configuration declares component
testing. When count-runners is a positive number, the specs of each category
are split into that many comma-joined groups.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runFind,
	}

	addInputFlags(cmd.Flags())
	cmd.Flags().StringVar(&findEnvFile, "env-file", "", "Load INPUT_* variables from a dotenv file (underscore names, e.g. INPUT_COUNT_RUNNERS)")
	return cmd
}

// addInputFlags registers one flag per action input.
func addInputFlags(flags *pflag.FlagSet) {
	flags.String(config.KeyWorkingDirectory, "", "Directory containing the Cypress config (default: current directory)")
	flags.String(config.KeyConfigFile, "", "Use this config file instead of searching the working directory")
	flags.String(config.KeyCountRunners, "", "Split specs into this many groups per category")
	flags.Bool(config.KeyFollowSymbolicLinks, true, "Follow symbolic links while searching for specs")
	flags.String(config.KeyOutputFormat, "", fmt.Sprintf("Output format: %v (default: github inside GitHub Actions, json otherwise)", config.SupportedOutputFormats()))
}

// runFind is the main entry point for the find command
func runFind(cmd *cobra.Command, args []string) error {
	runCfg, err := config.LoadRunConfig(cmd.Flags(), findEnvFile)
	if err != nil {
		return fmt.Errorf("failed to load inputs: %w", err)
	}

	application, err := app.NewApplication(app.NewConfig(runCfg), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}
