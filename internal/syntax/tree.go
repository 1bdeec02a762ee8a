package syntax

import (
	"strings"

	"ic10lsp/internal/source"
)

// Tree is one parsed revision of a document.
type Tree struct {
	File *source.File
	Root *Node
}

// Text returns the source covered by n.
func (t *Tree) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return t.File.Text(n.Span)
}

// Start returns the zero-based start point of n.
func (t *Tree) Start(n *Node) source.Point {
	return t.File.PointAt(n.Span.Start)
}

// End returns the zero-based end point of n.
func (t *Tree) End(n *Node) source.Point {
	return t.File.PointAt(n.Span.End)
}

// Lines returns the line nodes in order.
func (t *Tree) Lines() []*Node {
	return t.Root.Children
}

// Instructions returns every instruction node in document order.
func (t *Tree) Instructions() []*Node {
	return t.Root.FindAll(KindInstruction)
}

// NodeAt returns the deepest node under the cursor at off.
func (t *Tree) NodeAt(off uint32) *Node {
	return t.Root.DescendantAt(off)
}

// Mnemonic returns the operation text of an instruction node, or "".
func (t *Tree) Mnemonic(instr *Node) string {
	return t.Text(instr.ChildByField(FieldOperation))
}

// Operands returns the operand children of an instruction node.
func Operands(instr *Node) []*Node {
	return instr.ChildrenByField(FieldOperand)
}

// Value returns the single child of an operand node.
func Value(operand *Node) *Node {
	return operand.Child(0)
}

// Sexp renders n as an s-expression of node kinds, the form tests compare.
func Sexp(n *Node) string {
	var sb strings.Builder
	writeSexp(&sb, n)
	return sb.String()
}

func writeSexp(sb *strings.Builder, n *Node) {
	sb.WriteByte('(')
	if n.Field != "" {
		sb.WriteString(n.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind.String())
	for _, c := range n.Children {
		if c.Kind == KindNewline {
			continue
		}
		sb.WriteByte(' ')
		writeSexp(sb, c)
	}
	sb.WriteByte(')')
}
