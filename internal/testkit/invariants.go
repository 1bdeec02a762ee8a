package testkit

import (
	"fmt"

	"ic10lsp/internal/syntax"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) the root covers the whole file
// 2) every child span is contained in its parent span
// 3) siblings are ordered and do not overlap
// 4) every child points back to its parent
func CheckSpanInvariants(tree *syntax.Tree) error {
	if tree == nil || tree.Root == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Root
	if root.Span.Start != 0 || root.Span.End != tree.File.Len() {
		return fmt.Errorf("root span %v does not cover file of %d bytes", root.Span, tree.File.Len())
	}
	return checkNode(root)
}

func checkNode(n *syntax.Node) error {
	var prevEnd uint32
	for i, c := range n.Children {
		if c.Parent != n {
			return fmt.Errorf("%s child %d has wrong parent", n.Kind, i)
		}
		if c.Span.Start < n.Span.Start || c.Span.End > n.Span.End {
			return fmt.Errorf("%s %v escapes parent %s %v", c.Kind, c.Span, n.Kind, n.Span)
		}
		if c.Span.End < c.Span.Start {
			return fmt.Errorf("%s has inverted span %v", c.Kind, c.Span)
		}
		if i > 0 && c.Span.Start < prevEnd {
			return fmt.Errorf("%s %v overlaps previous sibling ending at %d", c.Kind, c.Span, prevEnd)
		}
		prevEnd = c.Span.End
		if err := checkNode(c); err != nil {
			return err
		}
	}
	return nil
}
