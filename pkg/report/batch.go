package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/toyinlola/coreiq/pkg/scorer"
)

// BatchEntry is one row of a multi-document summary.
type BatchEntry struct {
	Path    string      `json:"path"`
	Client  string      `json:"client,omitempty"`
	Overall float64     `json:"overall"`
	Band    scorer.Band `json:"band"`
	Error   string      `json:"error,omitempty"`
}

// Failed reports whether the document could not be scored.
func (e BatchEntry) Failed() bool {
	return e.Error != ""
}

// FormatBatch writes a multi-document summary as a JSON array.
func (f *JSONFormatter) FormatBatch(w io.Writer, entries []BatchEntry) error {
	if entries == nil {
		entries = []BatchEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// FormatBatch writes a multi-document summary as a Markdown table.
func (f *MarkdownFormatter) FormatBatch(w io.Writer, entries []BatchEntry) error {
	fmt.Fprintln(w, "# CoreIQ Batch Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Document | Client | Overall | Band |")
	fmt.Fprintln(w, "|----------|--------|---------|------|")
	for _, e := range entries {
		if e.Failed() {
			fmt.Fprintf(w, "| `%s` | | error | %s |\n", e.Path, e.Error)
			continue
		}
		fmt.Fprintf(w, "| `%s` | %s | %.1f | %s %s |\n", e.Path, e.Client, e.Overall, bandBadge(e.Band), e.Band)
	}
	fmt.Fprintln(w)
	return nil
}

// FormatBatch writes a multi-document summary for a terminal.
func (f *TerminalFormatter) FormatBatch(w io.Writer, entries []BatchEntry) error {
	fmt.Fprintf(w, "\n  %s\n\n", f.header.Render(fmt.Sprintf("CoreIQ Batch Summary (%d documents)", len(entries))))
	for _, e := range entries {
		if e.Failed() {
			fmt.Fprintf(w, "    %-32s %s\n", e.Path, BandStyle(scorer.BandBaseline).Render("ERROR "+e.Error))
			continue
		}
		fmt.Fprintf(w, "    %-32s %s %5.1f %s  %s\n",
			e.Path, bar(e.Overall), e.Overall, BandStyle(e.Band).Render(e.Band.String()), f.dim.Render(e.Client))
	}
	fmt.Fprintln(w)
	return nil
}
