package diag

import (
	"testing"

	"ic10lsp/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/scripts/pump.ic10", []byte("define A 1\ndefine A 2\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     LintAbsoluteJump,
			Message:  "Absolute jump to line number",
			Primary:  source.Span{File: file, Start: 11, End: 12},
		},
		NewError(SymDuplicateDefinition, source.Span{File: file, Start: 18, End: 19}, "Duplicate definition\nsecond").
			WithNote(source.Span{File: file, Start: 7, End: 8}, "Previously defined here"),
	}

	expected := "note SYM2001 scripts/pump.ic10:1:8 Previously defined here\n" +
		"warning L001 scripts/pump.ic10:2:1 Absolute jump to line number\n" +
		"error SYM2001 scripts/pump.ic10:2:8 Duplicate definition second"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		SynSyntaxError:         "SYN1001",
		SymDuplicateDefinition: "SYM2001",
		TypMismatch:            "TYP3003",
		LenCommentLine:         "LEN4004",
		ModNonIntegerBatchMode: "MOD5002",
		LintAbsoluteJump:       "L001",
		LintReagentModeLiteral: "L003",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Fatalf("%d.ID() = %q, want %q", code, got, want)
		}
		if back, ok := ParseID(want); !ok || back != code {
			t.Fatalf("ParseID(%q) = %d, %v", want, back, ok)
		}
	}
	if _, ok := ParseID("L999"); ok {
		t.Fatalf("unexpected code for L999")
	}
}

func TestBagSortAndLimit(t *testing.T) {
	b := NewBag(3)
	b.Extend([]Diagnostic{
		New(SevWarning, LintBatchModeLiteral, source.Span{Start: 5, End: 6}, "w"),
		New(SevError, TypMismatch, source.Span{Start: 5, End: 6}, "e"),
		New(SevInfo, TypUnsupportedInstruction, source.Span{Start: 0, End: 1}, "i"),
		New(SevError, TypMismatch, source.Span{Start: 9, End: 10}, "dropped"),
	})
	if b.Len() != 3 {
		t.Fatalf("limit not honoured: %d", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != TypUnsupportedInstruction || items[1].Severity != SevError || items[2].Code != LintBatchModeLiteral {
		t.Fatalf("unexpected order: %+v", items)
	}
	if !b.HasErrors() || b.Count(SevWarning) != 1 {
		t.Fatalf("unexpected counts")
	}
}
