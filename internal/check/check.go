// Package check validates every instruction of a document against its
// catalog signature: operand count and operand types.
package check

import (
	"fmt"

	"ic10lsp/internal/catalog"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/symbols"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/types"
)

// Check type-checks tree using the bindings in table. Diagnostics come out
// in document order.
func Check(tree *syntax.Tree, table *symbols.Table, cat *catalog.Catalog) []diag.Diagnostic {
	tc := typeChecker{tree: tree, table: table, cat: cat}
	for _, instr := range tree.Instructions() {
		tc.instruction(instr)
	}
	return tc.out.Items
}

type typeChecker struct {
	tree  *syntax.Tree
	table *symbols.Table
	cat   *catalog.Catalog
	out   diag.SliceReporter
}

func (tc *typeChecker) instruction(instr *syntax.Node) {
	op := instr.ChildByField(syntax.FieldOperation)
	if op == nil {
		return
	}
	mnemonic := tc.tree.Text(op)
	sig, ok := tc.cat.SignatureOf(mnemonic)
	if !ok {
		switch mnemonic {
		case "define", "alias", "label":
		default:
			diag.ReportInfo(&tc.out, diag.TypUnsupportedInstruction, op.Span, "Unsupported instruction").Emit()
		}
		return
	}

	operands := syntax.Operands(instr)
	for i, operand := range operands {
		if i >= len(sig) {
			tc.superfluous(instr, mnemonic, operand, len(operands)-len(sig), len(sig))
			return
		}
		tc.operand(operand, sig[i])
	}
	if len(operands) < len(sig) {
		diag.ReportError(&tc.out, diag.TypArgumentCount, instr.Span, "Invalid number of arguments").Emit()
	}
}

func (tc *typeChecker) operand(operand *syntax.Node, param types.Param) {
	value := syntax.Value(operand)
	if value == nil {
		return
	}
	found, ok := Classify(tc.tree, tc.table, tc.cat, value, param)
	if !ok {
		if value.Kind == syntax.KindIdentifier {
			diag.ReportError(&tc.out, diag.TypUnknownIdentifier, operand.Span, "Unknown identifier").Emit()
		}
		return
	}
	if !param.Accepts(found) {
		msg := fmt.Sprintf("Type mismatch. Found %s, expected %s", found, param.Union)
		diag.ReportError(&tc.out, diag.TypMismatch, operand.Span, msg).Emit()
	}
}

func (tc *typeChecker) superfluous(instr *syntax.Node, mnemonic string, first *syntax.Node, excess, want int) {
	plural := ""
	if excess > 1 {
		plural = "s"
	}
	msg := fmt.Sprintf("Superfluous argument%s. '%s' only requires %d arguments.", plural, mnemonic, want)
	span := instr.Span.WithStart(first.Span.Start)
	diag.ReportError(&tc.out, diag.TypSuperfluousArguments, span, msg).Emit()
}
