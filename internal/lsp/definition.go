package lsp

import (
	"ic10lsp/internal/symbols"
	"ic10lsp/internal/syntax"
)

const (
	symbolKindFunction = 12
	symbolKindVariable = 13
	symbolKindNumber   = 16

	symbolTagDeprecated = 1
)

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	uri := params.TextDocument.URI
	res := s.document(uri)
	if res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	enc := s.positionEncoding()
	c := locate(res, params.Position, enc)
	if c.node == nil || c.node.Kind != syntax.KindIdentifier {
		return s.sendResponse(msg.ID, nil)
	}
	span, ok := res.Symbols.SpanOf(res.Tree.Text(c.node))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, location{URI: uri, Range: rangeForSpan(res.File(), span, enc)})
}

// handleDocumentSymbol answers with a flat list of the document bindings.
func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	uri := params.TextDocument.URI
	res := s.document(uri)
	if res == nil {
		return s.sendResponse(msg.ID, []symbolInformation{})
	}
	enc := s.positionEncoding()
	out := make([]symbolInformation, 0, res.Symbols.Len())
	for _, b := range res.Symbols.Bindings() {
		info := symbolInformation{
			Name:       b.Name,
			Kind:       symbolKind(b.Kind),
			Deprecated: b.Deprecated,
			Location:   location{URI: uri, Range: rangeForSpan(res.File(), b.NameSpan, enc)},
		}
		if b.Deprecated {
			info.Tags = []int{symbolTagDeprecated}
		}
		out = append(out, info)
	}
	return s.sendResponse(msg.ID, out)
}

func symbolKind(k symbols.Kind) int {
	switch k {
	case symbols.KindDefine:
		return symbolKindNumber
	case symbols.KindLabel:
		return symbolKindFunction
	default:
		return symbolKindVariable
	}
}
