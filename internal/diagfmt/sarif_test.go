package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"surge/internal/diag"
	"surge/internal/source"
)

func TestSarifBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x: string = 1;\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 16, End: 17},
		"Type 'number' is not assignable to type 'string'",
	)
	d.Notes = append(d.Notes, diag.Note{
		Span: source.Span{File: fileID, Start: 4, End: 5},
		Msg:  "variable declared here",
	})
	bag.Add(&d)

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "checker", ToolVersion: "0.0.0-test"}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var out sarifLog
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid SARIF JSON: %v\noutput: %s", err, buf.String())
	}

	if out.Version != sarifVersion {
		t.Errorf("Version = %q, want %q", out.Version, sarifVersion)
	}
	if len(out.Runs) != 1 {
		t.Fatalf("Runs = %d, want 1", len(out.Runs))
	}
	run := out.Runs[0]
	if run.Tool.Driver.Name != "checker" {
		t.Errorf("Tool.Driver.Name = %q, want checker", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 1 {
		t.Fatalf("Rules = %d, want 1", len(run.Tool.Driver.Rules))
	}
	if run.Tool.Driver.Rules[0].ID != diag.LexUnterminatedString.ID() {
		t.Errorf("Rules[0].ID = %q, want %q", run.Tool.Driver.Rules[0].ID, diag.LexUnterminatedString.ID())
	}
	if len(run.Results) != 1 {
		t.Fatalf("Results = %d, want 1", len(run.Results))
	}
	result := run.Results[0]
	if result.Level != "error" {
		t.Errorf("Results[0].Level = %q, want error", result.Level)
	}
	if len(result.Locations) != 1 {
		t.Fatalf("Results[0].Locations = %d, want 1", len(result.Locations))
	}
	if result.Locations[0].PhysicalLocation.ArtifactLocation.URI == "" {
		t.Errorf("Results[0] location URI is empty")
	}
	if len(result.RelatedLocations) != 1 {
		t.Fatalf("Results[0].RelatedLocations = %d, want 1 (from the note)", len(result.RelatedLocations))
	}
	if run.Invocation == nil || run.Invocation.ExecutionSuccessful {
		t.Errorf("Invocation.ExecutionSuccessful = true, want false (bag has an error)")
	}
}

func TestSarifLevelMapping(t *testing.T) {
	cases := []struct {
		sev  diag.Severity
		want string
	}{
		{diag.SevError, "error"},
		{diag.SevWarning, "warning"},
		{diag.SevInfo, "note"},
	}
	for _, tc := range cases {
		if got := sarifLevel(tc.sev); got != tc.want {
			t.Errorf("sarifLevel(%v) = %q, want %q", tc.sev, got, tc.want)
		}
	}
}

func TestSarifEmptyBagProducesNoResults(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(10)

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "checker"}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var out sarifLog
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if len(out.Runs[0].Results) != 0 {
		t.Errorf("Results = %d, want 0 for an empty bag", len(out.Runs[0].Results))
	}
	if !out.Runs[0].Invocation.ExecutionSuccessful {
		t.Errorf("ExecutionSuccessful = false, want true for an empty bag")
	}
}
