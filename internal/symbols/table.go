package symbols

import (
	"sort"

	"ic10lsp/internal/source"
	"ic10lsp/internal/types"
)

// Table holds the three binding maps of one document revision. It is built
// wholesale by Build and never patched afterwards.
type Table struct {
	defines map[string]*Binding
	aliases map[string]*Binding
	labels  map[string]*Binding
	order   []*Binding
}

func newTable() *Table {
	return &Table{
		defines: make(map[string]*Binding),
		aliases: make(map[string]*Binding),
		labels:  make(map[string]*Binding),
	}
}

// Lookup resolves name, preferring defines over aliases over labels.
func (t *Table) Lookup(name string) (*Binding, bool) {
	if t == nil {
		return nil, false
	}
	if b, ok := t.defines[name]; ok {
		return b, true
	}
	if b, ok := t.aliases[name]; ok {
		return b, true
	}
	b, ok := t.labels[name]
	return b, ok
}

// Define returns the define binding for name only.
func (t *Table) Define(name string) (*Binding, bool) {
	b, ok := t.defines[name]
	return b, ok
}

// Alias returns the alias binding for name only.
func (t *Table) Alias(name string) (*Binding, bool) {
	b, ok := t.aliases[name]
	return b, ok
}

// Label returns the label binding for name only.
func (t *Table) Label(name string) (*Binding, bool) {
	b, ok := t.labels[name]
	return b, ok
}

// SpanOf returns the span of the identifier that bound name.
func (t *Table) SpanOf(name string) (source.Span, bool) {
	b, ok := t.Lookup(name)
	if !ok {
		return source.Span{}, false
	}
	return b.NameSpan, true
}

// TypeOf returns the data type name stands for.
func (t *Table) TypeOf(name string) (types.DataType, bool) {
	b, ok := t.Lookup(name)
	if !ok {
		return 0, false
	}
	return b.Type(), true
}

// Bindings returns every binding in document order.
func (t *Table) Bindings() []*Binding {
	if t == nil {
		return nil
	}
	return t.order
}

func (t *Table) Defines() []*Binding { return sorted(t.defines) }
func (t *Table) Aliases() []*Binding { return sorted(t.aliases) }
func (t *Table) Labels() []*Binding  { return sorted(t.labels) }

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

func sorted(m map[string]*Binding) []*Binding {
	out := make([]*Binding, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
