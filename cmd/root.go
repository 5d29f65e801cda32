// Package cmd implements the CoreIQ CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/cli"
)

var (
	cfgFile string
	verbose bool
	format  string
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "coreiq",
	Short: "Business maturity assessment scoring",
	Long: `CoreIQ scores business maturity assessments.

An assessment rates each business function (Operations, Customer
Experience, ...) on four components: Functionality, Friction, Data
Fitness and Change Readiness. Answers on a 0-5 scale roll up into
0-100 component, function and overall scores, each placed in a band
(Prime, Strong, Competent, Baseline).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
// An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: "+cli.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "output format (terminal|json|markdown); overrides output.format")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write output to file instead of stdout")
}

func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig() (*cli.Config, error) {
	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if format != "" {
		cfg.Output.Format = format
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--format: %w", err)
		}
	}
	slog.Debug("config loaded",
		"format", cfg.Output.Format,
		"in_scope_count", cfg.InScopeCount,
		"active_functions", cfg.ActiveFunctions,
	)
	return cfg, nil
}
