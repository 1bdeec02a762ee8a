package symbols

import (
	"ic10lsp/internal/source"
	"ic10lsp/internal/types"
)

// Kind classifies how a name was bound.
type Kind uint8

const (
	KindDefine Kind = iota
	KindAlias
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindDefine:
		return "define"
	case KindAlias:
		return "alias"
	case KindLabel:
		return "label"
	default:
		return "invalid"
	}
}

// Binding is one name's resolved meaning within a document.
type Binding struct {
	Name string
	Kind Kind
	// NameSpan covers the bound identifier, Span the whole construct.
	NameSpan source.Span
	Span     source.Span
	// Value is the literal text after the name: the number of a define or
	// the register/device of an alias. Empty for labels.
	Value string
	// Number is the evaluated define value when Value is a known literal.
	Number    float64
	HasNumber bool
	// Target is Register or Device for aliases.
	Target types.DataType
	// Row is the zero-based line of the construct; for labels the bound value.
	Row uint32
	// Deprecated marks bindings made by the label instruction.
	Deprecated bool
}

// Type is the data type an identifier bound by b contributes to an operand.
func (b *Binding) Type() types.DataType {
	if b.Kind == KindAlias {
		return b.Target
	}
	return types.Number
}
