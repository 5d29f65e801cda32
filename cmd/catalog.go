package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/document"
)

var catalogDoc string

var catalogCmd = &cobra.Command{
	Use:   "catalog [function]...",
	Short: "List the assessment questions",
	Long: `Catalog prints every question per business function and component,
with the labels for the 0 and 5 ends of the scale.

With --doc, the current answers and notes from that document are shown
next to each question.

  coreiq catalog OPS --doc acme.yaml`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogDoc, "doc", "", "assessment document whose answers to show")
	rootCmd.AddCommand(catalogCmd)
}

var (
	catalogFunctionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	catalogComponentStyle = lipgloss.NewStyle().Bold(true)
	catalogKeyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	catalogDimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	catalogAnswerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func runCatalog(cmd *cobra.Command, args []string) error {
	names := assessment.FunctionNames()
	fns := names[:]
	if len(args) > 0 {
		set, err := assessment.ParseActiveSet(upper(args))
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		fns = set.Names()
	}

	var a *assessment.Assessment
	if catalogDoc != "" {
		var err error
		if a, err = document.Load(catalogDoc); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}

	writeCatalog(cmd.OutOrStdout(), fns, a)
	return nil
}

// writeCatalog renders the questions for fns. a may be nil.
func writeCatalog(w io.Writer, fns []assessment.FunctionName, a *assessment.Assessment) {
	for _, fn := range fns {
		fmt.Fprintf(w, "\n%s\n", catalogFunctionStyle.Render(fmt.Sprintf("%s (%s)", fn.Title(), fn)))
		for _, d := range assessment.Dimensions() {
			items := assessment.Items(fn, d)
			fmt.Fprintf(w, "  %s\n", catalogComponentStyle.Render(d.Title()))
			if len(items) == 0 {
				fmt.Fprintf(w, "    %s\n", catalogDimStyle.Render("no questions yet"))
				continue
			}
			for _, it := range items {
				left, right := it.Ends()
				fmt.Fprintf(w, "    %s %s%s\n", catalogKeyStyle.Render(fmt.Sprintf("%-16s", it.Key)), it.Label, answerSuffix(a, fn, d, it.Key))
				fmt.Fprintf(w, "    %s\n", catalogDimStyle.Render(fmt.Sprintf("%16s 0 = %s, 5 = %s", "", left, right)))
			}
		}
	}
	fmt.Fprintln(w)
}

func answerSuffix(a *assessment.Assessment, fn assessment.FunctionName, d assessment.Dimension, key string) string {
	if a == nil {
		return ""
	}
	bf := a.Function(fn)
	if bf == nil {
		return ""
	}
	c := bf.Component(d)
	if c == nil {
		return ""
	}
	sub := c.Lookup(key)
	if sub == nil {
		return ""
	}
	var parts []string
	if sub.Answered() {
		parts = append(parts, catalogAnswerStyle.Render(fmt.Sprintf("[%d]", *sub.Score)))
	}
	if sub.Note != "" {
		parts = append(parts, catalogDimStyle.Render(fmt.Sprintf("(%s)", sub.Note)))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, " ")
}
