package lsp

import (
	"sort"
	"strconv"
	"strings"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/check"
	"ic10lsp/internal/symbols"
	"ic10lsp/internal/syntax"
	"ic10lsp/internal/types"
)

const (
	completionItemKindFunction = 3
	completionItemKindVariable = 6
	completionItemKindConstant = 21

	completionItemTagDeprecated = 1
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	res := s.document(params.TextDocument.URI)
	if res == nil {
		return s.sendResponse(msg.ID, []completionItem{})
	}
	enc := s.positionEncoding()
	items := buildCompletion(res, s.cat, locate(res, params.Position, enc), enc)
	if items == nil {
		items = []completionItem{}
	}
	return s.sendResponse(msg.ID, items)
}

func buildCompletion(res *analysis.Result, cat *catalog.Catalog, c cursor, enc positionEncoding) []completionItem {
	if c.line == nil {
		return instructionCompletions(cat, "")
	}
	if n := c.node.FindParent(syntax.KindOperation); n != nil {
		return instructionCompletions(cat, c.text(n.Span.Start))
	}
	if n := c.node.FindParent(syntax.KindInvalidInstruction); n != nil {
		return instructionCompletions(cat, firstWord(c.text(n.Span.Start)))
	}
	if strings.TrimSpace(c.text(c.line.Span.Start)) == "" {
		return instructionCompletions(cat, "")
	}

	instr := c.instruction()
	if instr == nil {
		return nil
	}
	op := instr.ChildByField(syntax.FieldOperation)
	if op == nil {
		return nil
	}
	if str := preprocStringAt(c); str != nil {
		return prefabCompletions(res, cat, c, str, enc)
	}

	mnemonic := res.Tree.Text(op)
	sig, ok := cat.SignatureOf(mnemonic)
	if !ok {
		return nil
	}
	idx, operand := check.CurrentParameter(instr, c.before())
	if idx >= len(sig) {
		return nil
	}
	param := sig[idx]
	prefix := ""
	if operand != nil && operand.Span.Start <= c.off {
		prefix = c.text(operand.Span.Start)
	}

	items := staticCompletions(cat, prefix, param)
	table := res.Symbols
	groups := [][]*symbols.Binding{table.Defines(), table.Aliases(), table.Labels()}
	if jumpsToLabel(mnemonic) {
		groups = [][]*symbols.Binding{table.Labels(), table.Defines(), table.Aliases()}
	}
	for _, group := range groups {
		items = append(items, dynamicCompletions(group, prefix, param)...)
	}
	return items
}

// jumpsToLabel reports whether the mnemonic is an absolute branch or jump,
// whose target is usually a label.
func jumpsToLabel(mnemonic string) bool {
	return mnemonic == "j" || mnemonic == "jal" ||
		strings.HasPrefix(mnemonic, "b") && !strings.HasPrefix(mnemonic, "br")
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}

func instructionCompletions(cat *catalog.Catalog, prefix string) []completionItem {
	var items []completionItem
	for _, mnemonic := range cat.Mnemonics() {
		if !strings.HasPrefix(mnemonic, prefix) {
			continue
		}
		ins, _ := cat.Instruction(mnemonic)
		item := completionItem{
			Label:        mnemonic,
			LabelDetails: &completionItemLabelDetails{Detail: ins.Signature.String()},
			Kind:         completionItemKindFunction,
			Deprecated:   ins.Deprecated,
		}
		if ins.Doc != "" {
			item.Documentation = &markupContent{Kind: "plaintext", Value: ins.Doc}
		}
		if ins.Deprecated {
			item.Tags = []int{completionItemTagDeprecated}
		}
		items = append(items, item)
	}
	return items
}

// staticCompletions lists vocabulary names the parameter accepts.
func staticCompletions(cat *catalog.Catalog, prefix string, param types.Param) []completionItem {
	var items []completionItem
	seen := make(map[string]bool)
	for _, t := range param.Union.Members() {
		vocab := cat.Vocabulary(t)
		if vocab == nil {
			continue
		}
		for _, name := range vocab.Names() {
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			seen[name] = true
			item := completionItem{
				Label:        name,
				LabelDetails: &completionItemLabelDetails{Detail: " " + t.String()},
				Kind:         completionItemKindConstant,
			}
			if doc, ok := vocab.DocOf(name); ok && doc != "" {
				item.Documentation = &markupContent{Kind: "plaintext", Value: doc}
			}
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// dynamicCompletions lists document bindings whose type fits the parameter.
func dynamicCompletions(bindings []*symbols.Binding, prefix string, param types.Param) []completionItem {
	var items []completionItem
	for _, b := range bindings {
		if !strings.HasPrefix(b.Name, prefix) || !types.MatchesType(param.Union, b.Type()) {
			continue
		}
		value := b.Value
		if b.Kind == symbols.KindLabel {
			value = strconv.FormatUint(uint64(b.Row), 10)
		}
		items = append(items, completionItem{
			Label: b.Name,
			LabelDetails: &completionItemLabelDetails{
				Detail:      " " + b.Kind.String(),
				Description: value,
			},
			Kind: completionItemKindVariable,
		})
	}
	return items
}

// preprocStringAt returns the HASH("..") string the cursor is inside.
func preprocStringAt(c cursor) *syntax.Node {
	num := c.node.FindParent(syntax.KindNumber)
	if num == nil {
		return nil
	}
	str := num.ChildOfKind(syntax.KindPreprocString)
	if str == nil || c.off < str.Span.Start || c.off > str.Span.End {
		return nil
	}
	return str
}

func prefabCompletions(res *analysis.Result, cat *catalog.Catalog, c cursor, str *syntax.Node, enc positionEncoding) []completionItem {
	prefix := c.text(str.Span.Start)
	r := rangeForSpan(res.File(), str.Span, enc)
	var items []completionItem
	for _, name := range cat.PrefabNames() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, completionItem{
			Label:    name,
			Kind:     completionItemKindConstant,
			TextEdit: &textEdit{Range: r, NewText: name},
		})
	}
	return items
}
