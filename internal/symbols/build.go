// Package symbols builds the define/alias/label bindings of a document.
package symbols

import (
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/types"
)

// Build walks tree in document order and binds every define, alias, label
// instruction and name: label. The first definition of a name wins; later
// ones are reported and dropped.
func Build(tree *syntax.Tree) (*Table, []diag.Diagnostic) {
	b := &builder{tree: tree, table: newTable()}
	for _, line := range tree.Lines() {
		for _, n := range line.Children {
			switch n.Kind {
			case syntax.KindLabel:
				b.label(n)
			case syntax.KindInstruction:
				b.instruction(n)
			}
		}
	}
	return b.table, b.out.Items
}

type builder struct {
	tree  *syntax.Tree
	table *Table
	out   diag.SliceReporter
}

func (b *builder) instruction(instr *syntax.Node) {
	switch b.tree.Mnemonic(instr) {
	case "define":
		b.define(instr)
	case "alias":
		b.alias(instr, false)
	case "label":
		b.alias(instr, true)
	}
}

// nameAndValue returns the identifier and value nodes of a two-operand
// binding instruction, or nil when the shape does not fit.
func nameAndValue(instr *syntax.Node) (name, value *syntax.Node) {
	ops := syntax.Operands(instr)
	if len(ops) < 2 {
		return nil, nil
	}
	name, value = syntax.Value(ops[0]), syntax.Value(ops[1])
	if name == nil || value == nil || name.Kind != syntax.KindIdentifier {
		return nil, nil
	}
	return name, value
}

func (b *builder) define(instr *syntax.Node) {
	name, value := nameAndValue(instr)
	if name == nil || value.Kind != syntax.KindNumber {
		return
	}
	text := b.tree.Text(name)
	if b.duplicate(name, text, b.table.defines, b.table.aliases) {
		return
	}
	bind := b.newBinding(instr, name, KindDefine)
	bind.Value = b.tree.Text(value)
	bind.Number, bind.HasNumber = catalog.Evaluate(bind.Value)
	b.table.defines[text] = bind
	b.table.order = append(b.table.order, bind)
}

// alias binds name to a register or device. The target kind comes from the
// syntax node, never from the spelling of the token.
func (b *builder) alias(instr *syntax.Node, deprecated bool) {
	name, value := nameAndValue(instr)
	if name == nil {
		return
	}
	var target types.DataType
	switch value.Kind {
	case syntax.KindRegister:
		target = types.Register
	case syntax.KindDevice:
		target = types.Device
	default:
		return
	}
	text := b.tree.Text(name)
	if b.duplicate(name, text, b.table.defines, b.table.aliases) {
		return
	}
	bind := b.newBinding(instr, name, KindAlias)
	bind.Value = b.tree.Text(value)
	bind.Target = target
	bind.Deprecated = deprecated
	b.table.aliases[text] = bind
	b.table.order = append(b.table.order, bind)
}

func (b *builder) label(n *syntax.Node) {
	name := n.ChildOfKind(syntax.KindIdentifier)
	if name == nil {
		return
	}
	text := b.tree.Text(name)
	if b.duplicate(name, text, b.table.defines, b.table.aliases, b.table.labels) {
		return
	}
	bind := b.newBinding(n, name, KindLabel)
	b.table.labels[text] = bind
	b.table.order = append(b.table.order, bind)
}

func (b *builder) newBinding(construct, name *syntax.Node, kind Kind) *Binding {
	return &Binding{
		Name:     b.tree.Text(name),
		Kind:     kind,
		NameSpan: name.Span,
		Span:     construct.Span,
		Row:      b.tree.Start(construct).Row,
	}
}

// duplicate reports name if any of scopes already binds it.
func (b *builder) duplicate(name *syntax.Node, text string, scopes ...map[string]*Binding) bool {
	for _, scope := range scopes {
		prev, ok := scope[text]
		if !ok {
			continue
		}
		diag.ReportError(&b.out, diag.SymDuplicateDefinition, name.Span, "Duplicate definition").
			WithNote(prev.NameSpan, "Previously defined here").
			Emit()
		return true
	}
	return false
}
