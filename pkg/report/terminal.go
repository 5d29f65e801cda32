package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

const barWidth = 20

// TerminalFormatter writes a color-coded report to a terminal.
type TerminalFormatter struct {
	header lipgloss.Style
	bold   lipgloss.Style
	dim    lipgloss.Style
}

// NewTerminalFormatter creates a terminal report formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		bold:   lipgloss.NewStyle().Bold(true),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// BandStyle returns the style used to render a band label.
func BandStyle(b scorer.Band) lipgloss.Style {
	switch b {
	case scorer.BandPrime:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // green
	case scorer.BandStrong:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // blue
	case scorer.BandCompetent:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")) // amber
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")) // gray
	}
}

// Format writes the report to the given writer.
func (f *TerminalFormatter) Format(w io.Writer, report *Report) error {
	f.writeHeader(w, report)
	f.writeSummary(w, report)
	f.writeFunctions(w, report)
	f.writeComponents(w, report)
	f.writeFooter(w, report)
	return nil
}

func (f *TerminalFormatter) writeHeader(w io.Writer, report *Report) {
	rule := strings.Repeat("═", 42)
	fmt.Fprintf(w, "\n%s\n", f.header.Render(rule))
	fmt.Fprintf(w, "%s\n", f.header.Render("  CoreIQ Report — "+report.Header.Client))
	fmt.Fprintf(w, "%s\n\n", f.header.Render(rule))
	if report.Header.Title != "" {
		fmt.Fprintf(w, "  %s\n\n", report.Header.Title)
	}
}

func (f *TerminalFormatter) writeSummary(w io.Writer, report *Report) {
	s := report.Scores
	fmt.Fprintf(w, "  %s %s\n",
		f.bold.Render(fmt.Sprintf("Overall: %.1f/100", s.Overall)),
		BandStyle(s.Band).Render("["+s.Band.String()+"]"))
	fmt.Fprintf(w, "  %s\n\n", f.dim.Render(fmt.Sprintf("Answered %d/%d | NDA %s | %s",
		report.Progress.Answered, report.Progress.Total, report.Header.NDA, report.Header.Status)))
}

func (f *TerminalFormatter) writeFunctions(w io.Writer, report *Report) {
	if len(report.Scores.PerFunction) == 0 {
		fmt.Fprintf(w, "  %s\n\n", f.dim.Render("No business functions in scope."))
		return
	}

	fmt.Fprintf(w, "  %s\n", f.bold.Render("── Functions ──"))
	for _, fr := range report.Scores.PerFunction {
		fmt.Fprintf(w, "    %-24s %s %5.1f %s\n",
			fr.Name.Title(), bar(fr.Score), fr.Score, BandStyle(fr.Band).Render(fr.Band.String()))
		for _, d := range assessment.Dimensions() {
			fmt.Fprintf(w, "      %s\n", f.dim.Render(fmt.Sprintf("%-18s %5.1f", d.Title(), fr.Components[d])))
		}
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) writeComponents(w io.Writer, report *Report) {
	fmt.Fprintf(w, "  %s\n", f.bold.Render("── Components ──"))
	for _, d := range assessment.Dimensions() {
		v := report.Scores.PerComponent[d]
		fmt.Fprintf(w, "    %-24s %s %5.1f\n", d.Title(), bar(v), v)
	}
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) writeFooter(w io.Writer, report *Report) {
	fmt.Fprintf(w, "  %s\n", f.dim.Render(strings.Repeat("─", 42)))
	fmt.Fprintf(w, "  %s\n\n", f.dim.Render(fmt.Sprintf("Report: %s | Generated: %s",
		report.ID, report.Timestamp.Format("2006-01-02 15:04:05"))))
}

// bar renders a 0-100 score as a fixed-width bar.
func bar(score float64) string {
	filled := int(score / 100 * barWidth)
	filled = min(barWidth, max(0, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
