package lsp

import (
	"ic10lsp/internal/analysis"
	"ic10lsp/internal/syntax"
)

var semanticTokenTypes = []string{"keyword", "comment", "string", "function", "macro", "number", "variable"}

const (
	tokenKeyword uint32 = iota
	tokenComment
	tokenString
	tokenFunction
	tokenMacro
	tokenNumber
	tokenVariable
)

func (s *Server) handleSemanticTokens(msg *rpcMessage) error {
	var params semanticTokensParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	res := s.document(params.TextDocument.URI)
	if res == nil {
		return s.sendResponse(msg.ID, semanticTokens{Data: []uint32{}})
	}
	return s.sendResponse(msg.ID, buildSemanticTokens(res, s.positionEncoding()))
}

func tokenType(k syntax.Kind) (uint32, bool) {
	switch k {
	case syntax.KindComment:
		return tokenComment, true
	case syntax.KindOperation:
		return tokenKeyword, true
	case syntax.KindLogicType:
		return tokenString, true
	case syntax.KindDevice:
		return tokenFunction, true
	case syntax.KindRegister:
		return tokenMacro, true
	case syntax.KindNumber:
		return tokenNumber, true
	case syntax.KindIdentifier:
		return tokenVariable, true
	}
	return 0, false
}

// buildSemanticTokens encodes the classified leaves as relative
// (line, start, length, type, modifiers) quintuples.
func buildSemanticTokens(res *analysis.Result, enc positionEncoding) semanticTokens {
	file := res.File()
	data := make([]uint32, 0, 64)
	var prevLine, prevCol int
	res.Tree.Root.Walk(func(n *syntax.Node) bool {
		typ, ok := tokenType(n.Kind)
		if !ok {
			return true
		}
		start := positionForOffset(file, n.Span.Start, enc)
		end := positionForOffset(file, n.Span.End, enc)
		if end.Line != start.Line || end.Character <= start.Character {
			return false
		}
		deltaCol := start.Character
		if start.Line == prevLine {
			deltaCol -= prevCol
		}
		data = append(data,
			safeUint32(start.Line-prevLine),
			safeUint32(deltaCol),
			safeUint32(end.Character-start.Character),
			typ,
			0,
		)
		prevLine, prevCol = start.Line, start.Character
		return false
	})
	return semanticTokens{Data: data}
}
