package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/toyinlola/coreiq/pkg/assessment"
)

const sampleYAML = `id: A1
client: Durban Logistics
title: CoreIQ PoC - Ops Baseline
status: IN_PROGRESS
nda: SIGNED
scope: [OPS, CX]
functions:
  - name: OPS
    components:
      - name: FUNCTIONALITY
        sub:
          - key: sops
            score: 4
            note: "versioned, mostly"
          - key: roles
      - name: FRICTION
        sub: []
      - name: DATA_FITNESS
        sub:
          - key: accuracy
            score: 0
      - name: CHANGE_READINESS
        sub: []
  - name: CX
    components:
      - {name: FUNCTIONALITY, sub: []}
      - {name: FRICTION, sub: []}
      - {name: DATA_FITNESS, sub: []}
      - {name: CHANGE_READINESS, sub: []}
  - name: SALES_MARKETING
    components:
      - {name: FUNCTIONALITY, sub: []}
      - {name: FRICTION, sub: []}
      - {name: DATA_FITNESS, sub: []}
      - {name: CHANGE_READINESS, sub: []}
  - name: FINANCE_ADMIN
    components:
      - {name: FUNCTIONALITY, sub: []}
      - {name: FRICTION, sub: []}
      - {name: DATA_FITNESS, sub: []}
      - {name: CHANGE_READINESS, sub: []}
  - name: INTERNAL_INTEL
    components:
      - {name: FUNCTIONALITY, sub: []}
      - {name: FRICTION, sub: []}
      - {name: DATA_FITNESS, sub: []}
      - {name: CHANGE_READINESS, sub: []}
updated_at: 2026-03-01T09:00:00Z
`

func TestDecode_YAML(t *testing.T) {
	a, err := Decode([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a.Client != "Durban Logistics" || a.NDA != assessment.ConsentSigned {
		t.Errorf("unexpected header: %+v", a)
	}

	comp := a.Function(assessment.Operations).Component(assessment.Functionality)
	sops := comp.Lookup("sops")
	if sops == nil || sops.Score == nil || *sops.Score != 4 {
		t.Fatalf("expected sops=4, got %+v", sops)
	}
	if roles := comp.Lookup("roles"); roles == nil || roles.Answered() {
		t.Errorf("roles has no score and must stay unanswered, got %+v", roles)
	}
	acc := a.Function(assessment.Operations).Component(assessment.DataFitness).Lookup("accuracy")
	if acc == nil || !acc.Answered() || *acc.Score != 0 {
		t.Errorf("explicit 0 must decode as an answered zero, got %+v", acc)
	}
}

func TestDecode_UnknownFunctionFailsFast(t *testing.T) {
	data := strings.Replace(sampleYAML, "name: INTERNAL_INTEL", "name: LEGAL", 1)
	_, err := Decode([]byte(data), FormatYAML)
	if !errors.Is(err, assessment.ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestDecode_MissingDimensionFailsFast(t *testing.T) {
	data := strings.Replace(sampleYAML, "      - name: CHANGE_READINESS\n        sub: []\n", "", 1)
	_, err := Decode([]byte(data), FormatYAML)
	if !errors.Is(err, assessment.ErrMissingDimension) {
		t.Errorf("expected ErrMissingDimension, got %v", err)
	}
}

func TestDecode_MissingNameFailsFast(t *testing.T) {
	tests := map[string]string{
		"component": strings.Replace(sampleYAML, "      - name: FUNCTIONALITY\n        sub:\n          - key: sops", "      - sub:\n          - key: sops", 1),
		"function":  strings.Replace(sampleYAML, "  - name: OPS\n    components:", "  - components:", 1),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if data == sampleYAML {
				t.Fatal("fixture edit did not apply")
			}
			_, err := Decode([]byte(data), FormatYAML)
			if !errors.Is(err, assessment.ErrMissingName) {
				t.Errorf("expected ErrMissingName, got %v", err)
			}
		})
	}
}

func TestDecode_JSONMissingFunctionName(t *testing.T) {
	data, err := Encode(assessment.New("A1", "c", "t"), FormatJSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	stripped := strings.Replace(string(data), `"name": "OPS",`, "", 1)
	if stripped == string(data) {
		t.Fatal("fixture edit did not apply")
	}
	if _, err := Decode([]byte(stripped), FormatJSON); !errors.Is(err, assessment.ErrMissingName) {
		t.Errorf("expected ErrMissingName, got %v", err)
	}
}

func TestDecode_DuplicateKeyFailsFast(t *testing.T) {
	data := strings.Replace(sampleYAML, "          - key: roles\n", "          - key: sops\n", 1)
	_, err := Decode([]byte(data), FormatYAML)
	if !errors.Is(err, assessment.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestDecode_JSONUnknownDimension(t *testing.T) {
	a := assessment.New("A1", "c", "t")
	data, err := Encode(a, FormatJSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bad := strings.Replace(string(data), `"DATA_FITNESS"`, `"VELOCITY"`, 1)
	if _, err := Decode([]byte(bad), FormatJSON); !errors.Is(err, assessment.ErrUnknownDimension) {
		t.Errorf("expected ErrUnknownDimension, got %v", err)
	}
}

func TestSaveLoad_SameTreeAcrossFormats(t *testing.T) {
	src, err := Decode([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	src.UpdatedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	dir := t.TempDir()
	for _, name := range []string{"audit.yaml", "audit.toml", "audit.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.ID != src.ID || got.Title != src.Title || got.NDA != src.NDA {
				t.Errorf("header mismatch: %+v", got)
			}
			if !got.UpdatedAt.Equal(src.UpdatedAt) {
				t.Errorf("updated_at = %v, want %v", got.UpdatedAt, src.UpdatedAt)
			}
			if len(got.Scope) != 2 || got.Scope[1] != assessment.CustomerExperience {
				t.Errorf("scope = %v", got.Scope)
			}
			comp := got.Function(assessment.Operations).Component(assessment.Functionality)
			if len(comp.Sub) != 2 {
				t.Fatalf("expected 2 sub-criteria, got %d", len(comp.Sub))
			}
			if comp.Sub[0].Note != "versioned, mostly" || *comp.Sub[0].Score != 4 {
				t.Errorf("sops mismatch: %+v", comp.Sub[0])
			}
			if comp.Sub[1].Answered() {
				t.Errorf("roles must stay unanswered after a round trip")
			}
		})
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yml")
	if err := Save(path, assessment.New("A1", "c", "t")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only audit.yml in dir, got %d entries", len(entries))
	}
}

func TestSave_FileMode(t *testing.T) {
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.yml")
	if err := Save(fresh, assessment.New("A1", "c", "t")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	assertMode(t, fresh, 0o644)

	shared := filepath.Join(dir, "shared.json")
	if err := Save(shared, assessment.New("A2", "c", "t")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.Chmod(shared, 0o640); err != nil {
		t.Fatal(err)
	}
	if err := Save(shared, assessment.New("A2", "c", "renamed")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	assertMode(t, shared, 0o640)
}

func assertMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("%s mode = %o, want %o", filepath.Base(path), got, want)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.toml": FormatTOML,
		"a.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("a.csv"); err == nil {
		t.Error("expected error for .csv")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
