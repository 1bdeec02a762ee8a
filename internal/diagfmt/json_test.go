package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ic10lsp/internal/source"
)

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSet()
	bag := absJump(fs)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "L001" || d.Data != "jr" {
		t.Fatalf("unexpected header %+v", d)
	}
	want := LocationJSON{File: "loop.ic10", StartByte: 6, EndByte: 9, StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 4}
	if d.Location != want {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "jump instruction" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Applicability != "always-safe" || !d.Fixes[0].IsPreferred {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != "jr" || edit.OldText != "j" || edit.AfterLines[0] != "jr 5" {
		t.Fatalf("edit = %+v", edit)
	}
}

func TestJSONMaxAndDefaults(t *testing.T) {
	fs := source.NewFileSet()
	bag := absJump(fs)
	bag.Merge(absJump(fs))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max must cap the output, got %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Notes != nil || d.Fixes != nil || d.Location.StartLine != 0 {
		t.Fatalf("optional parts must be omitted: %+v", d)
	}
}
