package fix

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

// fixFile writes src to a temp file, analyses it and applies every safe fix.
func fixFile(t *testing.T, src string) (string, *ApplyResult, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.ic10")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := source.NewFileSet()
	fs.SetBaseDir(filepath.Dir(path))
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res, err := analysis.New(catalog.Default()).AnalyzeFile(context.Background(), fs.Get(id), config.Default())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	applied, applyErr := Apply(fs, res.Diagnostics, ApplyOptions{Mode: ApplyModeAll})
	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	return string(out), applied, applyErr
}

func TestApplyLintFixes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"j 5\n", "jr 5\n"},
		{"lb r0 h Setting 1\n", "lb r0 h Setting Sum\n"},
		{"beq r0 r1 3\nlb r0 h Setting 0\n", "breq r0 r1 3\nlb r0 h Setting Average\n"},
		{"j 5", "jr 5"},
		{"j 5\r\nyield\r\n", "jr 5\r\nyield\r\n"},
	}
	for _, tt := range tests {
		got, _, err := fixFile(t, tt.src)
		if err != nil {
			t.Fatalf("%q: Apply: %v", tt.src, err)
		}
		if got != tt.want {
			t.Fatalf("%q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestApplyWithoutFixes(t *testing.T) {
	got, res, err := fixFile(t, "j start\nstart:\n")
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if got != "j start\nstart:\n" || len(res.Applied) != 0 {
		t.Fatalf("file must stay untouched, got %q", got)
	}
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ic10", []byte("j 5\n"))
	span := source.Span{File: fileID, Start: 0, End: 1}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.LintAbsoluteJump,
		Message: "Absolute jump to line number",
		Primary: span,
		Fixes: []diag.Fix{
			{ID: "fix-duplicate", Title: "Replace with jr", Edits: []diag.TextEdit{{Span: span, NewText: "jr"}}},
			{ID: "fix-duplicate", Title: "Replace with jr again", Edits: []diag.TextEdit{{Span: span, NewText: "jr"}}},
			{Title: "empty"},
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skipped fixes, got %d", len(skips))
	}
	if skips[0].Reason != "duplicate fix id" || skips[1].Reason != "fix has no edits" {
		t.Fatalf("unexpected skip reasons: %+v", skips)
	}
}

func TestApplyDryRunAndConflicts(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.ic10", []byte("j 5\n"))
	op := source.Span{File: id, Start: 0, End: 1}
	whole := source.Span{File: id, Start: 0, End: 3}
	diagnostics := []diag.Diagnostic{
		{Code: diag.LintAbsoluteJump, Primary: op, Fixes: []diag.Fix{diag.Replace("Replace with jr", op, "j", "jr")}},
		{Code: diag.LintAbsoluteJump, Primary: whole, Fixes: []diag.Fix{diag.Replace("Rewrite", whole, "j 5", "yield")}},
	}

	if _, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("virtual files must not be written, got %v", err)
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("expected one applied and one conflicting fix, got %+v", res)
	}
	if got := string(res.FileChanges[0].Content); got != "jr 5\n" {
		t.Fatalf("content = %q", got)
	}

	res, err = Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeID, TargetID: "missing", DryRun: true})
	if !errors.Is(err, ErrNoFixes) || res.Skipped[0].Reason != "fix id not found" {
		t.Fatalf("unexpected result for unknown id: %v %+v", err, res)
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(a, b uint32) diag.TextEdit { return diag.TextEdit{Span: source.Span{Start: a, End: b}} }
	tests := []struct {
		a, b diag.TextEdit
		want bool
	}{
		{edit(0, 2), edit(1, 3), true},
		{edit(0, 2), edit(2, 3), false},
		{edit(1, 1), edit(1, 1), false},
		{edit(1, 1), edit(0, 2), true},
		{edit(2, 2), edit(0, 2), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Fatalf("spansConflict(%v, %v) = %v", tt.a.Span, tt.b.Span, got)
		}
	}
}
