package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/document"
	"github.com/toyinlola/coreiq/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export every answer and note as CSV",
	Long: `Export flattens an assessment into one CSV row per answered or noted
question, across all business functions. Output goes to --output, or to
` + export.DefaultFileName + ` when no path is given. Use --output - for stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := document.Load(args[0])
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	dest := output
	if dest == "" {
		dest = export.DefaultFileName
	}
	w, closeOut, err := openOutput(cmd.OutOrStdout(), dest)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := finishOutput("export", dest, closeOut, export.WriteCSV(w, a)); err != nil {
		return err
	}

	slog.Info("assessment exported", "path", args[0], "dest", dest, "rows", len(export.Rows(a)))
	return nil
}
