package lsp

import (
	"strconv"

	"fortio.org/safecast"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/syntax"
)

const inlayHintKindType = 1

func (s *Server) handleInlayHint(msg *rpcMessage) error {
	var params inlayHintParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	res := s.document(params.TextDocument.URI)
	if res == nil {
		return s.sendResponse(msg.ID, []inlayHint{})
	}
	return s.sendResponse(msg.ID, buildInlayHints(res, s.cat, params.Range, s.positionEncoding()))
}

// buildInlayHints annotates, at the end of their line, numbers that are a
// known prefab hash with the prefab name and HASH("..") calls with their
// value.
func buildInlayHints(res *analysis.Result, cat *catalog.Catalog, rng lspRange, enc positionEncoding) []inlayHint {
	file := res.File()
	start := offsetForPosition(file, rng.Start, enc)
	end := max(offsetForPosition(file, rng.End, enc), start)

	hints := make([]inlayHint, 0)
	for _, num := range res.Tree.Root.FindAll(syntax.KindNumber) {
		if num.Span.Start < start || num.Span.End > end {
			continue
		}
		text := res.Tree.Text(num)
		label, ok := "", false
		if fn, _, isCall := catalog.CallArgument(text); isCall {
			if fn == "HASH" {
				if v, evaluated := catalog.Evaluate(text); evaluated {
					label, ok = strconv.FormatFloat(v, 'f', -1, 64), true
				}
			}
		} else {
			label, ok = prefabForLiteral(cat, text)
		}
		if !ok {
			continue
		}
		hints = append(hints, inlayHint{
			Position:    positionForOffset(file, lineHintOffset(num), enc),
			Label:       label,
			Kind:        inlayHintKindType,
			PaddingLeft: true,
		})
	}
	return hints
}

// lineHintOffset is where a hint for n goes: before the newline of its line,
// or after the instruction when the line has no newline.
func lineHintOffset(n *syntax.Node) uint32 {
	line := n.FindParent(syntax.KindLine)
	if line == nil {
		return n.Span.End
	}
	if nl := line.ChildOfKind(syntax.KindNewline); nl != nil {
		return nl.Span.Start
	}
	if instr := line.ChildOfKind(syntax.KindInstruction); instr != nil {
		return instr.Span.End
	}
	return n.Span.End
}

// prefabForLiteral resolves an integer literal equal to a prefab hash.
func prefabForLiteral(cat *catalog.Catalog, text string) (string, bool) {
	v, ok := catalog.IntegerLiteral(text)
	if !ok {
		return "", false
	}
	h, err := safecast.Conv[int32](v)
	if err != nil {
		return "", false
	}
	return cat.PrefabName(h)
}
