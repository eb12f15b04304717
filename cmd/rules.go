package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"cyspec/internal/app"
	"cyspec/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rulesFormat string

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the spec discovery rules of a project",
		Long: `Prints which Cypress config file would be used and the include and exclude
patterns it resolves to, with every default applied. No spec files are listed.

Unlike find, errors reading the config file are reported as they are.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runRules,
	}

	addInputFlags(cmd.Flags())
	cmd.Flags().StringVar(&rulesFormat, "format", "yaml", "Output format: yaml or json")
	return cmd
}

func runRules(cmd *cobra.Command, args []string) error {
	if rulesFormat != "yaml" && rulesFormat != "json" {
		return fmt.Errorf("unsupported format %q, use yaml or json", rulesFormat)
	}

	runCfg, err := config.LoadRunConfig(cmd.Flags(), "")
	if err != nil {
		return fmt.Errorf("failed to load inputs: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := app.ResolveRules(ctx, runCfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rulesFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
