package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cyspec/internal/app"
	"cyspec/pkg/logging"

	"github.com/spf13/cobra"
)

// rootDebug enables debug logging for every sub-command.
var rootDebug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cyspec",
	Short: "Discover Cypress spec files for parallel CI jobs",
	Long: `cyspec reads the Cypress configuration of a project (cypress.config.ts,
cypress.config.{js,mjs,cjs} or the legacy cypress.json), resolves its
integration and component spec patterns and lists the matching spec files,
optionally split into balanced groups for a parallel CI matrix.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. missing config files, no specs found)
	SilenceUsage: true,
	// Errors are printed by Execute so reported failures are not repeated.
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// initLogging picks workflow-command output inside GitHub Actions and plain
// slog lines on stderr everywhere else.
func initLogging() {
	level := logging.LevelInfo
	if rootDebug || os.Getenv("RUNNER_DEBUG") == "1" {
		level = logging.LevelDebug
	}

	if logging.DetectMode() == logging.ModeActions {
		logging.InitForActions(level, os.Stdout)
		return
	}
	logging.InitForCLI(level, os.Stderr)
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "cyspec version %s\n" .Version}}`)

	// Cancel the run on SIGINT/SIGTERM so a hanging config script is interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// A *app.Failure has already been reported through the reporter
		var failure *app.Failure
		if !errors.As(err, &failure) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging (also enabled by RUNNER_DEBUG=1)")
}
