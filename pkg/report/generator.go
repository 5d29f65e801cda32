// Package report builds maturity reports from an assessment and its scores.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

// Header carries the assessment metadata shown at the top of a report.
type Header struct {
	AssessmentID string             `json:"assessment_id"`
	Client       string             `json:"client"`
	Title        string             `json:"title"`
	Status       string             `json:"status"`
	NDA          assessment.Consent `json:"nda"`
	Industry     string             `json:"industry,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Progress counts answered questions across the active functions.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Report is the final output of a scoring run.
type Report struct {
	ID              string                    `json:"id"`
	Timestamp       time.Time                 `json:"timestamp"`
	Header          Header                    `json:"assessment"`
	ActiveFunctions []assessment.FunctionName `json:"active_functions"`
	Scores          scorer.Scores             `json:"scores"`
	Progress        Progress                  `json:"progress"`
	Summary         string                    `json:"summary"`
}

// Generator builds reports.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate produces a Report for an assessment scored under active.
func (g *Generator) Generate(a *assessment.Assessment, scores *scorer.Scores, active assessment.ActiveSet) *Report {
	return &Report{
		ID:        "rpt-" + uuid.NewString(),
		Timestamp: g.now(),
		Header: Header{
			AssessmentID: a.ID,
			Client:       a.Client,
			Title:        a.Title,
			Status:       a.Status,
			NDA:          a.NDA,
			Industry:     a.Industry,
			UpdatedAt:    a.UpdatedAt,
		},
		ActiveFunctions: active.Names(),
		Scores:          *scores,
		Progress:        countProgress(a, active),
		Summary:         buildSummary(scores),
	}
}

// countProgress compares recorded answers with the catalog size.
func countProgress(a *assessment.Assessment, active assessment.ActiveSet) Progress {
	var p Progress
	for i := range a.Functions {
		fn := &a.Functions[i]
		if !active.Contains(fn.Name) {
			continue
		}
		for _, d := range assessment.Dimensions() {
			p.Total += len(assessment.Items(fn.Name, d))
			if c := fn.Component(d); c != nil {
				for _, s := range c.Sub {
					if s.Answered() {
						p.Answered++
					}
				}
			}
		}
	}
	return p
}

// buildSummary creates a one-line summary like
// "Overall: 69.5/100 [Competent]; OPS 89.0 [Prime], CX 50.0 [Competent]".
func buildSummary(s *scorer.Scores) string {
	if len(s.PerFunction) == 0 {
		return fmt.Sprintf("Overall: %.1f/100 [%s]; no functions in scope", s.Overall, s.Band)
	}
	parts := make([]string, 0, len(s.PerFunction))
	for _, f := range s.PerFunction {
		parts = append(parts, fmt.Sprintf("%s %.1f [%s]", f.Name, f.Score, f.Band))
	}
	return fmt.Sprintf("Overall: %.1f/100 [%s]; %s", s.Overall, s.Band, strings.Join(parts, ", "))
}
