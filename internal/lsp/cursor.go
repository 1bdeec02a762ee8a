package lsp

import (
	"ic10lsp/internal/analysis"
	"ic10lsp/internal/syntax"
)

// cursor is the syntax found under a client position.
type cursor struct {
	res  *analysis.Result
	off  uint32
	node *syntax.Node
	// line is nil past the final newline.
	line *syntax.Node
}

func locate(res *analysis.Result, pos position, enc positionEncoding) cursor {
	off := offsetForPosition(res.File(), pos, enc)
	return cursor{
		res:  res,
		off:  off,
		node: res.Tree.NodeAt(off),
		line: lineAt(res.Tree, off),
	}
}

func lineAt(tree *syntax.Tree, off uint32) *syntax.Node {
	for _, line := range tree.Lines() {
		if line.Span.Start <= off && off < line.Span.End {
			return line
		}
	}
	return nil
}

// instruction returns the instruction on the cursor line.
func (c cursor) instruction() *syntax.Node {
	if c.line == nil {
		return nil
	}
	return c.line.ChildOfKind(syntax.KindInstruction)
}

// text returns the source between from and the cursor.
func (c cursor) text(from uint32) string {
	content := c.res.File().Content
	if from > c.off || int(c.off) > len(content) {
		return ""
	}
	return string(content[from:c.off])
}

// before is the offset of the character left of the cursor, the position
// completion and signature help reason about.
func (c cursor) before() uint32 {
	if c.off == 0 {
		return 0
	}
	return c.off - 1
}
