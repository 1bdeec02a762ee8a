package types

import "strings"

// Param is one operand position of an instruction. Tag is a role name shown
// in hover and signature help and never takes part in matching.
type Param struct {
	Union Union
	Tag   string
}

// P builds an untagged parameter.
func P(ts ...DataType) Param {
	return Param{Union: UnionOf(ts...)}
}

// Tagged returns a copy of p labelled with tag.
func (p Param) Tagged(tag string) Param {
	p.Tag = tag
	return p
}

// Accepts reports whether an operand classified as found fits p.
func (p Param) Accepts(found Union) bool {
	return CompatibleWith(p.Union, found)
}

func (p Param) String() string {
	return p.Union.String()
}

// Describe renders "tag: union", or just the union when untagged.
func (p Param) Describe() string {
	if p.Tag == "" {
		return p.Union.String()
	}
	return p.Tag + ": " + p.Union.String()
}

// Signature is the ordered parameter list bound to one mnemonic.
type Signature []Param

// String renders each parameter with a leading space, so that
// mnemonic+sig.String() reads like a usage line.
func (s Signature) String() string {
	var sb strings.Builder
	for _, p := range s {
		sb.WriteByte(' ')
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Label renders the signature using tags where present, as signature help
// shows it. Offsets holds the [start, end) byte range of each parameter
// inside the returned label.
func (s Signature) Label(mnemonic string) (label string, offsets [][2]int) {
	var sb strings.Builder
	sb.WriteString(mnemonic)
	offsets = make([][2]int, 0, len(s))
	for _, p := range s {
		sb.WriteByte(' ')
		start := sb.Len()
		if p.Tag != "" {
			sb.WriteString(p.Tag)
			sb.WriteByte(':')
		}
		sb.WriteString(p.Union.String())
		offsets = append(offsets, [2]int{start, sb.Len()})
	}
	return sb.String(), offsets
}
