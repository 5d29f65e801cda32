// Package export flattens an assessment into tabular form.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/toyinlola/coreiq/pkg/assessment"
)

// Header is the first CSV row.
var Header = []string{"Function", "Component", "SubKey", "Score", "Note"}

// DefaultFileName is written when no output path is given.
const DefaultFileName = "coreiq_export.csv"

// Rows returns one row per sub-criterion across every function. Unanswered
// scores are empty cells. Commas in notes become semicolons so the note
// stays one field even for naive readers that split on commas.
func Rows(a *assessment.Assessment) [][]string {
	var rows [][]string
	for _, fn := range a.Functions {
		for _, c := range fn.Components {
			for _, s := range c.Sub {
				score := ""
				if s.Score != nil {
					score = strconv.Itoa(*s.Score)
				}
				rows = append(rows, []string{
					fn.Name.String(),
					c.Name.String(),
					s.Key,
					score,
					strings.ReplaceAll(s.Note, ",", ";"),
				})
			}
		}
	}
	return rows
}

// WriteCSV writes the header and every row to w.
func WriteCSV(w io.Writer, a *assessment.Assessment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}
	if err := cw.WriteAll(Rows(a)); err != nil {
		return fmt.Errorf("export: writing rows: %w", err)
	}
	return nil
}
