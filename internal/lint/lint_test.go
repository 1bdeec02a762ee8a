package lint

import (
	"testing"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/testkit"
)

func runLint(t *testing.T, src string, cfg config.Configuration, a *Analyzer) (*syntax.Tree, []diag.Diagnostic) {
	t.Helper()
	tree := testkit.Parse(t, src)
	return tree, Run(tree, catalog.Default(), cfg, a)
}

func TestAbsoluteJump(t *testing.T) {
	tree, diags := runLint(t, "j 5\njr 5\nj start\njal 3\nbeqz r0 12\n", config.Default(), AbsoluteJump)
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %+v", len(diags), diags)
	}

	d := diags[0]
	if d.Code != diag.LintAbsoluteJump || d.Code.ID() != "L001" || d.Severity != diag.SevWarning {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Message != "Absolute jump to line number" || d.Data != "jr" || tree.File.Text(d.Primary) != "j 5" {
		t.Fatalf("unexpected payload %q / %q", d.Message, d.Data)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Title != "Replace with jr" {
		t.Fatalf("unexpected fixes %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if tree.File.Text(edit.Span) != "j" || edit.NewText != "jr" || edit.OldText != "j" {
		t.Fatalf("unexpected edit %+v", edit)
	}

	if diags[1].Data != "" || len(diags[1].Fixes) != 0 {
		t.Fatalf("jal has no relative form: %+v", diags[1])
	}
	if diags[2].Data != "breqz" {
		t.Fatalf("beqz must map to breqz, got %q", diags[2].Data)
	}
}

func TestRelativeJump(t *testing.T) {
	if m, ok := RelativeJump("bnan"); !ok || m != "brnan" {
		t.Fatalf("RelativeJump(bnan) = %q, %v", m, ok)
	}
	if _, ok := RelativeJump("jr"); ok {
		t.Fatalf("jr is already relative")
	}
}

func TestModeLiterals(t *testing.T) {
	tests := []struct {
		src  string
		a    *Analyzer
		code diag.Code
		sev  diag.Severity
		msg  string
		data string
	}{
		{"lb r0 h Setting 1", BatchModeLiteral, diag.LintBatchModeLiteral, diag.SevWarning, "Use of literal number for batch mode", "Sum"},
		{"lbn r0 h n Setting 3", BatchModeLiteral, diag.LintBatchModeLiteral, diag.SevWarning, "Use of literal number for batch mode", "Maximum"},
		{"lb r0 h Setting 7", BatchModeLiteral, diag.ModInvalidBatchMode, diag.SevError, "Invalid batch mode", ""},
		{"lb r0 h Setting 300", BatchModeLiteral, diag.ModInvalidBatchMode, diag.SevError, "Invalid batch mode", ""},
		{"lb r0 h Setting 1.5", BatchModeLiteral, diag.ModNonIntegerBatchMode, diag.SevError, "Use of non-integer batch mode", ""},
		{"lr r0 d0 2 r1", ReagentModeLiteral, diag.LintReagentModeLiteral, diag.SevWarning, "Use of literal number for reagent mode", "Recipe"},
		{"lr r0 d0 9 r1", ReagentModeLiteral, diag.ModInvalidReagentMode, diag.SevError, "Invalid reagent mode", ""},
		{"lr r0 d0 0.5 r1", ReagentModeLiteral, diag.ModNonIntegerReagentMode, diag.SevError, "Use of non-integer reagent mode", ""},
	}
	for _, tt := range tests {
		tree, diags := runLint(t, tt.src, config.Default(), tt.a)
		if len(diags) != 1 {
			t.Fatalf("%q: expected 1 diagnostic, got %+v", tt.src, diags)
		}
		d := diags[0]
		if d.Code != tt.code || d.Severity != tt.sev || d.Message != tt.msg || d.Data != tt.data {
			t.Fatalf("%q: got %s %v %q data=%q", tt.src, d.Code.ID(), d.Severity, d.Message, d.Data)
		}
		ops := syntax.Operands(tree.Instructions()[0])
		if tt.a == BatchModeLiteral && d.Primary != ops[len(ops)-1].Span {
			t.Fatalf("%q: diagnostic must cover the literal", tt.src)
		}
		if tt.data != "" && (len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != tt.data) {
			t.Fatalf("%q: missing replacement fix", tt.src)
		}
	}
}

func TestModeLiteralsIgnoreNames(t *testing.T) {
	src := "lb r0 h Setting Sum\nlb r0 h Setting r1\nlr r0 d0 Contents 0\nl r0 d0 Setting\n"
	for _, a := range []*Analyzer{BatchModeLiteral, ReagentModeLiteral} {
		if _, diags := runLint(t, src, config.Default(), a); len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics %+v", a.Name, diags)
		}
	}
}

func TestOverlength(t *testing.T) {
	src := "move r0 1234567890\n" +
		"# a long comment here\n" +
		"yield\n" +
		"yield # c\n"
	cfg := config.Configuration{MaxLines: 2, MaxColumns: 10, WarnOverlineComment: true}

	tree, diags := runLint(t, src, cfg, Overlength)
	want := []struct {
		code diag.Code
		msg  string
		text string
	}{
		{diag.LenInstructionColumn, "Instruction past column 10", "34567890"},
		{diag.LenInstructionLine, "Instruction past line 2", "yield"},
		{diag.LenInstructionLine, "Instruction past line 2", "yield"},
		{diag.LenCommentLine, "Comment past line 2", "# c"},
	}
	if len(diags) != len(want) {
		t.Fatalf("expected %d diagnostics, got %d: %+v", len(want), len(diags), diags)
	}
	for i, w := range want {
		d := diags[i]
		if d.Code != w.code || d.Message != w.msg || tree.File.Text(d.Primary) != w.text {
			t.Fatalf("diagnostic %d = %s %q over %q", i, d.Code.ID(), d.Message, tree.File.Text(d.Primary))
		}
	}
	if diags[3].Severity != diag.SevWarning || diags[0].Severity != diag.SevError {
		t.Fatalf("unexpected severities")
	}

	cfg.WarnOverlineComment = false
	cfg.WarnOvercolumnComment = true
	_, diags = runLint(t, src, cfg, Overlength)
	if len(diags) != 4 || diags[1].Code != diag.LenCommentColumn || diags[1].Message != "Comment past column 10" {
		t.Fatalf("unexpected diagnostics with comment column warnings: %+v", diags)
	}
}

func TestRunOrderAndLookup(t *testing.T) {
	cfg := config.Default()
	cfg.MaxColumns = 3
	tree := testkit.Parse(t, "lb r0 h Setting 1\nj 0\n")
	diags := Run(tree, catalog.Default(), cfg, Analyzers()...)
	var codes []string
	for _, d := range diags {
		codes = append(codes, d.Code.ID())
	}
	want := []string{"LEN4001", "L001", "L002"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v", codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
	if a, ok := Lookup("reagentmode"); !ok || a != ReagentModeLiteral {
		t.Fatalf("Lookup failed")
	}
}
