package lsp

import (
	"fmt"
	"strconv"
	"strings"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/check"
	"ic10lsp/internal/syntax"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	res := s.document(params.TextDocument.URI)
	if res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	enc := s.positionEncoding()
	h := buildHover(res, s.cat, locate(res, params.Position, enc))
	if h == nil {
		return s.sendResponse(msg.ID, nil)
	}
	r := rangeForSpan(res.File(), h.node.Span, enc)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: h.markdown},
		Range:    &r,
	})
}

type hoverResult struct {
	markdown string
	node     *syntax.Node
}

func buildHover(res *analysis.Result, cat *catalog.Catalog, c cursor) *hoverResult {
	n := c.node
	if n == nil {
		return nil
	}
	if num := n.FindParent(syntax.KindNumber); num != nil {
		n = num
	}
	name := res.Tree.Text(n)
	var md string
	switch n.Kind {
	case syntax.KindIdentifier:
		md = hoverIdentifier(res, name)
	case syntax.KindOperation:
		md = hoverOperation(cat, name)
	case syntax.KindLogicType:
		md = hoverVocabulary(res, cat, n, name)
	case syntax.KindNumber:
		md = hoverNumber(cat, name)
	}
	if md == "" {
		return nil
	}
	return &hoverResult{markdown: md, node: n}
}

func codeBlock(s string) string {
	return "```ic10\n" + s + "\n```"
}

func hoverIdentifier(res *analysis.Result, name string) string {
	table := res.Symbols
	if b, ok := table.Define(name); ok {
		return codeBlock(fmt.Sprintf("define %s %s", name, b.Value))
	}
	if b, ok := table.Alias(name); ok {
		return codeBlock(fmt.Sprintf("alias %s %s", name, b.Value))
	}
	if b, ok := table.Label(name); ok {
		return fmt.Sprintf("Label on line %d", b.Row+1)
	}
	return ""
}

func hoverOperation(cat *catalog.Catalog, mnemonic string) string {
	ins, ok := cat.Instruction(mnemonic)
	if !ok {
		return ""
	}
	parts := []string{codeBlock(mnemonic + ins.Signature.String())}
	if ins.Deprecated {
		parts = append(parts, "*Deprecated*")
	}
	if ins.Doc != "" {
		parts = append(parts, ins.Doc)
	}
	if len(ins.Signature) > 0 {
		var sb strings.Builder
		for i, p := range ins.Signature {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "- `%s`", p.Describe())
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

// hoverVocabulary shows one section per vocabulary the name may belong to in
// its operand position.
func hoverVocabulary(res *analysis.Result, cat *catalog.Catalog, n *syntax.Node, name string) string {
	candidates := cat.Candidates(name)
	kinds := candidates
	if instr := n.FindParent(syntax.KindInstruction); instr != nil {
		if sig, ok := cat.SignatureOf(res.Tree.Mnemonic(instr)); ok {
			if idx := check.OperandIndex(n); idx >= 0 && idx < len(sig) {
				if narrowed := sig[idx].Union.Intersect(candidates); !narrowed.Empty() {
					kinds = narrowed
				}
			}
		}
	}
	sections := make([]string, 0, kinds.Len())
	for _, t := range kinds.Members() {
		vocab := cat.Vocabulary(t)
		if vocab == nil {
			continue
		}
		entry, ok := vocab.Entry(name)
		if !ok {
			continue
		}
		section := fmt.Sprintf("# `%s` (`%s`)\n%s", name, t, entry.Doc)
		if entry.HasCode {
			section += fmt.Sprintf("\n\nValue: `%d`", entry.Code)
		}
		sections = append(sections, section)
	}
	return strings.Join(sections, "\n\n")
}

func hoverNumber(cat *catalog.Catalog, text string) string {
	if fn, arg, ok := catalog.CallArgument(text); ok {
		v, ok := catalog.Evaluate(text)
		if !ok {
			return ""
		}
		return fmt.Sprintf("`%s(\"%s\")` = `%s`", fn, arg, strconv.FormatFloat(v, 'f', -1, 64))
	}
	if name, ok := prefabForLiteral(cat, text); ok {
		return fmt.Sprintf("`%s` = `HASH(\"%s\")`", text, name)
	}
	return ""
}
