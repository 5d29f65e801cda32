package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/toyinlola/coreiq/pkg/assessment"
)

func sampleAssessment() *assessment.Assessment {
	a := assessment.New("A1", "c", "t")
	a.Function(assessment.Operations).Component(assessment.Functionality).Sub = []assessment.SubCriterion{
		{Key: "sops", Score: assessment.IntPtr(4), Note: "order-to-cash, scheduling, QC"},
		{Key: "roles", Note: `handoffs "mostly" clear` + "\nsecond line"},
	}
	a.Function(assessment.FinanceAdmin).Component(assessment.Friction).Sub = []assessment.SubCriterion{
		{Key: "approvals", Score: assessment.IntPtr(0)},
	}
	return a
}

func TestRows_OnePerSubCriterion(t *testing.T) {
	rows := Rows(sampleAssessment())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []string{"OPS", "FUNCTIONALITY", "sops", "4", "order-to-cash; scheduling; QC"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], want[i])
		}
	}
	if rows[1][3] != "" {
		t.Errorf("unanswered score should export empty, got %q", rows[1][3])
	}
	if rows[2][0] != "FINANCE_ADMIN" || rows[2][3] != "0" {
		t.Errorf("out-of-scope functions are still exported, got %v", rows[2])
	}
}

func TestWriteCSV_PreservesRowIntegrity(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleAssessment()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading exported CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	for i, r := range records {
		if len(r) != len(Header) {
			t.Errorf("record %d has %d fields, want %d", i, len(r), len(Header))
		}
	}
	if got := records[2][4]; got != "handoffs \"mostly\" clear\nsecond line" {
		t.Errorf("quoted note not preserved, got %q", got)
	}
}

func TestWriteCSV_EmptyAssessmentHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, assessment.New("A1", "c", "t")); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "Function,Component,SubKey,Score,Note\n" {
		t.Errorf("unexpected output %q", got)
	}
}
