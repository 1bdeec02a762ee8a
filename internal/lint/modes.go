package lint

import (
	"fmt"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/types"
)

// modeLiteral describes one vocabulary whose values may be written as raw
// numbers.
type modeLiteral struct {
	vocab      types.DataType
	noun       string
	invalid    diag.Code
	nonInteger diag.Code
	literal    diag.Code
}

// BatchModeLiteral suggests the batch mode name for a numeric literal.
var BatchModeLiteral = &Analyzer{
	Name: "batchmode",
	Doc:  "Resolve literal batch modes to their names; reject unknown or fractional ones.",
	Run: modeLiteral{
		vocab:      types.BatchMode,
		noun:       "batch mode",
		invalid:    diag.ModInvalidBatchMode,
		nonInteger: diag.ModNonIntegerBatchMode,
		literal:    diag.LintBatchModeLiteral,
	}.run,
}

// ReagentModeLiteral is BatchModeLiteral for the reagent mode of lr.
var ReagentModeLiteral = &Analyzer{
	Name: "reagentmode",
	Doc:  "Resolve literal reagent modes to their names; reject unknown or fractional ones.",
	Run: modeLiteral{
		vocab:      types.ReagentMode,
		noun:       "reagent mode",
		invalid:    diag.ModInvalidReagentMode,
		nonInteger: diag.ModNonIntegerReagentMode,
		literal:    diag.LintReagentModeLiteral,
	}.run,
}

func (m modeLiteral) run(pass *Pass) {
	vocab := pass.Catalog.Vocabulary(m.vocab)
	for _, instr := range pass.Tree.Instructions() {
		sig, ok := pass.Catalog.SignatureOf(pass.Tree.Mnemonic(instr))
		if !ok {
			continue
		}
		ops := syntax.Operands(instr)
		for i, param := range sig {
			if i >= len(ops) || !param.Union.Has(m.vocab) {
				continue
			}
			if value := syntax.Value(ops[i]); value != nil && value.Kind == syntax.KindNumber {
				m.check(pass, vocab, value)
			}
		}
	}
}

func (m modeLiteral) check(pass *Pass, vocab *catalog.Vocabulary, num *syntax.Node) {
	text := pass.Tree.Text(num)
	if num.ChildOfKind(syntax.KindPreprocString) != nil {
		diag.ReportError(pass.Reporter(), m.invalid, num.Span, "Invalid "+m.noun).Emit()
		return
	}
	code, ok := catalog.IntegerLiteral(text)
	if !ok {
		diag.ReportError(pass.Reporter(), m.nonInteger, num.Span, "Use of non-integer "+m.noun).Emit()
		return
	}
	name, ok := "", false
	if code >= 0 && code <= 255 {
		name, ok = vocab.NameForCode(int(code))
	}
	if !ok {
		diag.ReportError(pass.Reporter(), m.invalid, num.Span, "Invalid "+m.noun).Emit()
		return
	}
	diag.ReportWarning(pass.Reporter(), m.literal, num.Span, fmt.Sprintf("Use of literal number for %s", m.noun)).
		WithData(name).
		WithFix(diag.Replace("Replace with "+name, num.Span, text, name)).
		Emit()
}
