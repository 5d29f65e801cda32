package report

import (
	"fmt"
	"io"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

// MarkdownFormatter writes a report as Markdown for sharing with a client.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a Markdown report formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the report as Markdown to the given writer.
func (f *MarkdownFormatter) Format(w io.Writer, report *Report) error {
	f.writeHeader(w, report)
	f.writeSummaryTable(w, report)
	f.writeFunctions(w, report)
	f.writeComponents(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *MarkdownFormatter) writeHeader(w io.Writer, report *Report) {
	fmt.Fprintf(w, "# CoreIQ Report — %s %s\n\n", report.Header.Client, bandBadge(report.Scores.Band))
	if report.Header.Title != "" {
		fmt.Fprintf(w, "_%s_\n\n", report.Header.Title)
	}
}

func (f *MarkdownFormatter) writeSummaryTable(w io.Writer, report *Report) {
	s := report.Scores
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|--------|-------|")
	fmt.Fprintf(w, "| **Overall** | %.1f/100 |\n", s.Overall)
	fmt.Fprintf(w, "| **Band** | %s |\n", s.Band)
	fmt.Fprintf(w, "| **Status** | %s |\n", report.Header.Status)
	fmt.Fprintf(w, "| **NDA** | %s |\n", report.Header.NDA)
	fmt.Fprintf(w, "| **Answered** | %d/%d |\n", report.Progress.Answered, report.Progress.Total)
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeFunctions(w io.Writer, report *Report) {
	if len(report.Scores.PerFunction) == 0 {
		fmt.Fprintln(w, "> No business functions in scope.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, "## Functions")
	fmt.Fprintln(w)
	fmt.Fprint(w, "| Function | Score | Band |")
	for _, d := range assessment.Dimensions() {
		fmt.Fprintf(w, " %s |", d.Title())
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "|----------|-------|------|")
	for range assessment.Dimensions() {
		fmt.Fprint(w, "------|")
	}
	fmt.Fprintln(w)

	for _, fr := range report.Scores.PerFunction {
		fmt.Fprintf(w, "| %s | %.1f | %s |", fr.Name.Title(), fr.Score, fr.Band)
		for _, d := range assessment.Dimensions() {
			fmt.Fprintf(w, " %.1f |", fr.Components[d])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeComponents(w io.Writer, report *Report) {
	fmt.Fprintln(w, "## Components across functions")
	fmt.Fprintln(w)
	for _, d := range assessment.Dimensions() {
		fmt.Fprintf(w, "- **%s**: %.1f\n", d.Title(), report.Scores.PerComponent[d])
	}
	fmt.Fprintln(w)
}

func (f *MarkdownFormatter) writeFooter(w io.Writer, report *Report) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "*Report ID: %s | Generated: %s*\n",
		report.ID, report.Timestamp.Format("2006-01-02 15:04:05"))
}

// bandBadge returns a text badge for a band.
func bandBadge(b scorer.Band) string {
	switch b {
	case scorer.BandPrime:
		return "🟢"
	case scorer.BandStrong:
		return "🔵"
	case scorer.BandCompetent:
		return "🟡"
	default:
		return "⚪"
	}
}
