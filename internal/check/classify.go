package check

import (
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/symbols"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/types"
)

// Classify returns the set of data types the operand value node stands for
// in a position declared as param. ok is false for unbound identifiers and
// for node kinds that carry no type.
//
// An identifier in a position accepting Name is the name being bound, so it
// classifies as Name before any lookup.
func Classify(tree *syntax.Tree, table *symbols.Table, cat *catalog.Catalog, value *syntax.Node, param types.Param) (types.Union, bool) {
	switch value.Kind {
	case syntax.KindRegister:
		return types.UnionOf(types.Register), true
	case syntax.KindDevice:
		return types.UnionOf(types.Device), true
	case syntax.KindNumber:
		return types.UnionOf(types.Number), true
	case syntax.KindLogicType:
		u := cat.Candidates(tree.Text(value))
		return u, !u.Empty()
	case syntax.KindIdentifier:
		if param.Union.Has(types.Name) {
			return types.UnionOf(types.Name), true
		}
		t, ok := table.TypeOf(tree.Text(value))
		if !ok {
			return 0, false
		}
		return types.UnionOf(t), true
	}
	return 0, false
}

// CurrentParameter returns the index of the parameter the cursor at offset
// is filling: the number of operands that end at or before offset. The
// operand at that index is returned when it exists.
func CurrentParameter(instr *syntax.Node, offset uint32) (int, *syntax.Node) {
	operands := syntax.Operands(instr)
	idx := 0
	for _, operand := range operands {
		if operand.Span.End <= offset {
			idx++
		}
	}
	if idx < len(operands) {
		return idx, operands[idx]
	}
	return idx, nil
}

// OperandIndex returns the position of operand within its instruction, or
// -1 when n is not an operand of a parsed instruction.
func OperandIndex(n *syntax.Node) int {
	operand := n.FindParent(syntax.KindOperand)
	if operand == nil || operand.Parent == nil {
		return -1
	}
	for i, o := range syntax.Operands(operand.Parent) {
		if o == operand {
			return i
		}
	}
	return -1
}
