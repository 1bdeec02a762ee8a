// Package syntax is the concrete syntax tree of an IC10 program. Every
// byte of a line belongs to some node, node kinds carry the names editors
// and queries use (instruction, operand, logictype, ERROR, ...) and every
// node knows its parent.
package syntax

import (
	"fmt"

	"ic10lsp/internal/source"
)

// Kind labels a node.
type Kind uint8

const (
	KindProgram Kind = iota
	KindLine
	KindInstruction
	KindOperation
	KindOperand
	KindInvalidInstruction
	KindLabel
	KindComment
	KindNewline
	KindIdentifier
	KindNumber
	KindPreprocString
	KindRegister
	KindDevice
	KindLogicType
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindLine:
		return "line"
	case KindInstruction:
		return "instruction"
	case KindOperation:
		return "operation"
	case KindOperand:
		return "operand"
	case KindInvalidInstruction:
		return "invalid_instruction"
	case KindLabel:
		return "label"
	case KindComment:
		return "comment"
	case KindNewline:
		return "newline"
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindPreprocString:
		return "preproc_string"
	case KindRegister:
		return "register"
	case KindDevice:
		return "device"
	case KindLogicType:
		return "logictype"
	case KindError:
		return "ERROR"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Field names used on instruction children.
const (
	FieldOperation = "operation"
	FieldOperand   = "operand"
)

// Node is one tree node.
type Node struct {
	Kind     Kind
	Field    string
	Span     source.Span
	Parent   *Node
	Children []*Node
}

// NewNode creates a node and adopts children.
func NewNode(kind Kind, span source.Span, children ...*Node) *Node {
	n := &Node{Kind: kind, Span: span}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Append adds c as the last child of n.
func (n *Node) Append(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildByField returns the first child stored under field.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildrenByField returns all children stored under field in document order.
func (n *Node) ChildrenByField(field string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

// ChildOfKind returns the first direct child of kind k.
func (n *Node) ChildOfKind(k Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

// FindParent walks up from n, n included, to the first node of kind k.
func (n *Node) FindParent(k Kind) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == k {
			return cur
		}
	}
	return nil
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every descendant of kind k, n included, in document order.
func (n *Node) FindAll(k Kind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == k {
			out = append(out, c)
		}
		return true
	})
	return out
}

// First returns the first descendant of kind k, n included.
func (n *Node) First(k Kind) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == k {
			found = c
			return false
		}
		return true
	})
	return found
}

// DescendantAt returns the deepest node under the cursor at off. A node
// ending exactly at off wins over a newline starting there, so a cursor
// placed right after a word resolves to that word.
func (n *Node) DescendantAt(off uint32) *Node {
	cur := n
	for {
		next := pickChild(cur, off)
		if next == nil {
			return cur
		}
		cur = next
	}
}

func pickChild(n *Node, off uint32) *Node {
	var inside, touching *Node
	for _, c := range n.Children {
		sp := c.Span
		switch {
		case sp.Start <= off && off < sp.End && c.Kind != KindNewline:
			return c
		case sp.Start <= off && off < sp.End:
			inside = c
		case sp.End == off && sp.Start < off:
			touching = c
		}
	}
	if touching != nil {
		return touching
	}
	return inside
}
