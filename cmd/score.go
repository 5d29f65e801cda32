package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/batch"
	"github.com/toyinlola/coreiq/pkg/cli"
	"github.com/toyinlola/coreiq/pkg/document"
	"github.com/toyinlola/coreiq/pkg/report"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

// errBelowBand is returned when --fail-below is set and a score falls short.
var errBelowBand = errors.New("score below required band")

var (
	failBelow       string
	activeFunctions []string
)

var scoreCmd = &cobra.Command{
	Use:   "score <file|pattern>...",
	Short: "Score assessment documents and print a maturity report",
	Long: `Score loads assessment documents (.yaml, .yml, .toml or .json) and
produces a maturity report.

Score a single assessment:
  coreiq score ./acme.yaml

Score every assessment under a directory:
  coreiq score 'audits/**/*.yaml' --format markdown

Fail (exit 1) when the overall band is below Competent:
  coreiq score ./acme.yaml --fail-below competent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&failBelow, "fail-below", "", "exit non-zero when the overall band is below this band (baseline|competent|strong|prime)")
	scoreCmd.Flags().StringSliceVar(&activeFunctions, "functions", nil, "business functions to score, e.g. OPS,CX (overrides active_functions)")
	rootCmd.AddCommand(scoreCmd)
}

// formatter writes a structured report to a writer.
type formatter interface {
	Format(w io.Writer, rpt *report.Report) error
	FormatBatch(w io.Writer, entries []report.BatchEntry) error
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := scoreConfig()
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	paths, err := batch.ExpandPatterns(args)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("score: no documents match %v", args)
	}

	w, closeOut, err := openOutput(cmd.OutOrStdout(), output)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	f := selectFormatter(cfg.Output.Format)
	if len(paths) == 1 {
		err = scoreOne(w, f, cfg, paths[0])
	} else {
		err = scoreMany(cmd, w, f, cfg, paths)
	}
	return finishOutput("score", output, closeOut, err)
}

// scoreConfig loads config and applies the score command's own flags.
func scoreConfig() (*cli.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if failBelow != "" {
		cfg.FailBelow = failBelow
	}
	if len(activeFunctions) > 0 {
		cfg.ActiveFunctions = upper(activeFunctions)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func scoreOne(w io.Writer, f formatter, cfg *cli.Config, path string) error {
	a, err := document.Load(path)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	active := cfg.ActiveSet(a)
	calc, err := cfg.NewCalculator(active)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	scores := calc.Score(a)
	slog.Info("assessment scored", "path", path, "overall", scores.Overall, "band", scores.Band, "functions", active)

	rpt := report.NewGenerator().Generate(a, scores, active)
	if err := f.Format(w, rpt); err != nil {
		return fmt.Errorf("score: writing report: %w", err)
	}

	return checkBand(cfg, path, scores.Band)
}

func scoreMany(cmd *cobra.Command, w io.Writer, f formatter, cfg *cli.Config, paths []string) error {
	runner := batch.NewRunner(nil, document.Load,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithCalculatorFor(func(a *assessment.Assessment) (*scorer.Calculator, error) {
			return cfg.NewCalculator(cfg.ActiveSet(a))
		}),
	)

	results, err := runner.Run(cmd.Context(), paths)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	entries := batchEntries(results)
	if err := f.FormatBatch(w, entries); err != nil {
		return fmt.Errorf("score: writing summary: %w", err)
	}

	var errs []error
	for _, r := range results {
		if r.Error != nil {
			errs = append(errs, r.Error)
			continue
		}
		if err := checkBand(cfg, r.Path, r.Scores.Band); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("score: %d of %d documents failed: %w", len(errs), len(results), errors.Join(errs...))
	}
	return nil
}

func batchEntries(results []*batch.Result) []report.BatchEntry {
	entries := make([]report.BatchEntry, 0, len(results))
	for _, r := range results {
		e := report.BatchEntry{Path: r.Path}
		if r.Error != nil {
			e.Error = r.Error.Error()
		} else {
			e.Client = r.Assessment.Client
			e.Overall = r.Scores.Overall
			e.Band = r.Scores.Band
		}
		entries = append(entries, e)
	}
	return entries
}

// checkBand fails when fail_below is set and band is lower.
func checkBand(cfg *cli.Config, path string, band scorer.Band) error {
	floor, ok, err := cfg.FailBand()
	if err != nil || !ok {
		return err
	}
	if band < floor {
		return fmt.Errorf("%s: %w: %s < %s", path, errBelowBand, band, floor)
	}
	return nil
}

// selectFormatter returns the appropriate report formatter for the given format name.
func selectFormatter(name string) formatter {
	switch name {
	case "json":
		return report.NewJSONFormatter()
	case "markdown":
		return report.NewMarkdownFormatter()
	default:
		return report.NewTerminalFormatter()
	}
}

// openOutput returns the file at path, or fallback when path is empty.
func openOutput(fallback io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return fallback, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return file, file.Close, nil
}

// finishOutput closes the output and reports a close failure unless err
// already holds an earlier one.
func finishOutput(op, path string, closeOut func() error, err error) error {
	if cerr := closeOut(); cerr != nil && err == nil {
		return fmt.Errorf("%s: closing %s: %w", op, path, cerr)
	}
	return err
}
