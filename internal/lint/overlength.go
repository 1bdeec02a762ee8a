package lint

import (
	"fmt"

	"fortio.org/safecast"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
	"ic10lsp/internal/syntax"
)

// Overlength enforces the in-game editor's line and column ceilings.
var Overlength = &Analyzer{
	Name: "overlength",
	Doc:  "Report instructions (and optionally comments) beyond max_lines or max_columns.",
	Run: func(pass *Pass) {
		cfg := pass.Config
		var nodes []*syntax.Node
		pass.Tree.Root.Walk(func(n *syntax.Node) bool {
			switch n.Kind {
			case syntax.KindInstruction, syntax.KindComment:
				nodes = append(nodes, n)
				return false
			}
			return true
		})
		for _, n := range nodes {
			comment := n.Kind == syntax.KindComment
			if !comment || cfg.WarnOvercolumnComment {
				pastColumn(pass, n, comment)
			}
			if !comment || cfg.WarnOverlineComment {
				pastLine(pass, n, comment)
			}
		}
	},
}

func pastColumn(pass *Pass, n *syntax.Node, comment bool) {
	limit, err := safecast.Conv[uint32](pass.Config.MaxColumns)
	if err != nil {
		return
	}
	end := pass.Tree.End(n)
	if end.Col <= limit {
		return
	}
	f := pass.Tree.File
	span := source.Span{File: f.ID, Start: f.OffsetAt(source.Point{Row: end.Row, Col: limit}), End: n.Span.End}
	if comment {
		diag.ReportWarning(pass.Reporter(), diag.LenCommentColumn, span, fmt.Sprintf("Comment past column %d", limit)).Emit()
		return
	}
	diag.ReportError(pass.Reporter(), diag.LenInstructionColumn, span, fmt.Sprintf("Instruction past column %d", limit)).Emit()
}

func pastLine(pass *Pass, n *syntax.Node, comment bool) {
	limit, err := safecast.Conv[uint32](pass.Config.MaxLines)
	if err != nil {
		return
	}
	if pass.Tree.Start(n).Row < limit {
		return
	}
	if comment {
		diag.ReportWarning(pass.Reporter(), diag.LenCommentLine, n.Span, fmt.Sprintf("Comment past line %d", limit)).Emit()
		return
	}
	diag.ReportError(pass.Reporter(), diag.LenInstructionLine, n.Span, fmt.Sprintf("Instruction past line %d", limit)).Emit()
}
