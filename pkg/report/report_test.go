package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/toyinlola/coreiq/pkg/assessment"
	"github.com/toyinlola/coreiq/pkg/scorer"
)

// scoredAssessment answers two OPS questions and nothing in CX.
func scoredAssessment(t *testing.T) (*assessment.Assessment, *scorer.Scores, assessment.ActiveSet) {
	t.Helper()
	a := assessment.New("A1", "Durban Logistics", "Ops Baseline")
	a.Function(assessment.Operations).Component(assessment.Functionality).Sub = []assessment.SubCriterion{
		{Key: "sops", Score: assessment.IntPtr(5)},
		{Key: "roles", Score: assessment.IntPtr(5)},
		{Key: "systems", Note: "not yet rated"},
	}
	active := assessment.FirstN(2)
	calc := scorer.MustNewCalculator(scorer.WithActiveFunctions(active))
	return a, calc.Score(a), active
}

func TestGenerate_HeaderAndProgress(t *testing.T) {
	a, s, active := scoredAssessment(t)
	rpt := NewGenerator().Generate(a, s, active)

	if !strings.HasPrefix(rpt.ID, "rpt-") {
		t.Errorf("expected rpt- prefix, got %q", rpt.ID)
	}
	if rpt.Header.Client != "Durban Logistics" {
		t.Errorf("unexpected client %q", rpt.Header.Client)
	}
	// OPS and CX each have 20 catalog questions.
	if rpt.Progress.Total != 40 || rpt.Progress.Answered != 2 {
		t.Errorf("progress = %+v, want 2/40", rpt.Progress)
	}
	if len(rpt.ActiveFunctions) != 2 {
		t.Errorf("expected 2 active functions, got %v", rpt.ActiveFunctions)
	}
}

func TestGenerate_Summary(t *testing.T) {
	a, s, active := scoredAssessment(t)
	rpt := NewGenerator().Generate(a, s, active)
	// OPS = 100*0.30 = 30, CX = 0, overall 15.
	want := "Overall: 15.0/100 [Baseline]; OPS 30.0 [Baseline], CX 0.0 [Baseline]"
	if rpt.Summary != want {
		t.Errorf("summary = %q, want %q", rpt.Summary, want)
	}

	empty := NewGenerator().Generate(a, scorer.MustNewCalculator(
		scorer.WithActiveFunctions(assessment.NewActiveSet())).Score(a), assessment.NewActiveSet())
	if !strings.Contains(empty.Summary, "no functions in scope") {
		t.Errorf("unexpected empty summary %q", empty.Summary)
	}
}

func TestJSONFormatter_ShapesScores(t *testing.T) {
	a, s, active := scoredAssessment(t)
	rpt := NewGenerator().Generate(a, s, active)

	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(&buf, rpt); err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded struct {
		Scores struct {
			PerFunction []struct {
				Name  string  `json:"name"`
				Band  string  `json:"band"`
				Score float64 `json:"score"`
			} `json:"per_function"`
			PerComponent []float64 `json:"per_component"`
			Band         string    `json:"band"`
		} `json:"scores"`
		ActiveFunctions []string `json:"active_functions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding report JSON: %v", err)
	}
	if len(decoded.Scores.PerComponent) != assessment.NumDimensions {
		t.Errorf("per_component should have %d entries, got %d", assessment.NumDimensions, len(decoded.Scores.PerComponent))
	}
	if decoded.Scores.PerFunction[0].Name != "OPS" || decoded.Scores.Band != "Baseline" {
		t.Errorf("unexpected scores %+v", decoded.Scores)
	}
	if decoded.ActiveFunctions[1] != "CX" {
		t.Errorf("unexpected active functions %v", decoded.ActiveFunctions)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	a, s, active := scoredAssessment(t)
	rpt := NewGenerator().Generate(a, s, active)

	var buf bytes.Buffer
	if err := NewMarkdownFormatter().Format(&buf, rpt); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# CoreIQ Report — Durban Logistics",
		"| **Overall** | 15.0/100 |",
		"| Operations | 30.0 | Baseline |",
		"- **Data Fitness**: 0.0",
		"*Report ID: " + rpt.ID,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestTerminalFormatter(t *testing.T) {
	a, s, active := scoredAssessment(t)
	rpt := NewGenerator().Generate(a, s, active)

	var buf bytes.Buffer
	if err := NewTerminalFormatter().Format(&buf, rpt); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CoreIQ Report", "Overall: 15.0/100", "Baseline", "Customer Experience", "Change Readiness"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}

func TestBar_Clamps(t *testing.T) {
	if got := bar(150); got != strings.Repeat("█", barWidth) {
		t.Errorf("bar(150) = %q", got)
	}
	if got := bar(-5); got != strings.Repeat("░", barWidth) {
		t.Errorf("bar(-5) = %q", got)
	}
}

func TestFormatBatch(t *testing.T) {
	entries := []BatchEntry{
		{Path: "a.yaml", Client: "Acme", Overall: 72.5, Band: scorer.BandStrong},
		{Path: "b.yaml", Error: "document: unknown function"},
	}

	var md bytes.Buffer
	if err := NewMarkdownFormatter().FormatBatch(&md, entries); err != nil {
		t.Fatalf("markdown: %v", err)
	}
	for _, want := range []string{"| `a.yaml` | Acme | 72.5 |", "Strong", "| `b.yaml` | | error |"} {
		if !strings.Contains(md.String(), want) {
			t.Errorf("markdown batch missing %q\n%s", want, md.String())
		}
	}

	var js bytes.Buffer
	if err := NewJSONFormatter().FormatBatch(&js, entries); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding batch JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["band"] != "Strong" || decoded[1]["error"] == nil {
		t.Errorf("unexpected batch JSON %v", decoded)
	}

	var term bytes.Buffer
	if err := NewTerminalFormatter().FormatBatch(&term, entries); err != nil {
		t.Fatalf("terminal: %v", err)
	}
	if !strings.Contains(term.String(), "2 documents") || !strings.Contains(term.String(), "ERROR") {
		t.Errorf("unexpected terminal batch output %q", term.String())
	}
}
