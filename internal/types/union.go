package types

import (
	"strings"
)

// Union is a set of DataType values stored as a bit set. The zero value is
// the empty set, which no operand position declares but classification may
// produce for names nobody knows.
type Union uint16

// UnionOf builds a union from its members.
func UnionOf(ts ...DataType) Union {
	var u Union
	for _, t := range ts {
		u |= 1 << t
	}
	return u
}

// Has reports whether t is a member of u.
func (u Union) Has(t DataType) bool {
	return t.Valid() && u&(1<<t) != 0
}

// Intersects reports whether u and o share at least one member.
func (u Union) Intersects(o Union) bool {
	return u&o != 0
}

// Intersect returns the members of candidates that u also accepts.
func (u Union) Intersect(candidates Union) Union {
	return u & candidates
}

// With returns u extended by t.
func (u Union) With(t DataType) Union {
	return u | 1<<t
}

// Empty reports whether u has no members.
func (u Union) Empty() bool {
	return u == 0
}

// Len returns the number of members.
func (u Union) Len() int {
	n := 0
	for _, t := range AllDataTypes {
		if u.Has(t) {
			n++
		}
	}
	return n
}

// Members returns the members of u in declaration order.
func (u Union) Members() []DataType {
	out := make([]DataType, 0, u.Len())
	for _, t := range AllDataTypes {
		if u.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String renders a single member bare and several as "(a|b)".
func (u Union) String() string {
	members := u.Members()
	if len(members) == 1 {
		return members[0].String()
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, t := range members {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// MatchesType reports whether the declared union accepts t.
func MatchesType(declared Union, t DataType) bool {
	return declared.Has(t)
}

// MatchesUnion reports whether an operand whose own type is ambiguous fits
// the declared union: some member of found must be accepted.
func MatchesUnion(declared, found Union) bool {
	return declared.Intersects(found)
}

// CompatibleWith is the symmetric compatibility predicate between an
// operand-derived set and a declared parameter union.
func CompatibleWith(a, b Union) bool {
	return a.Intersects(b)
}
