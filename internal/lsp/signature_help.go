package lsp

import (
	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/check"
	"ic10lsp/internal/syntax"
)

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	res := s.document(params.TextDocument.URI)
	if res == nil {
		return s.sendResponse(msg.ID, nil)
	}
	help := buildSignatureHelp(res, s.cat, locate(res, params.Position, s.positionEncoding()))
	if help == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, help)
}

func buildSignatureHelp(res *analysis.Result, cat *catalog.Catalog, c cursor) *signatureHelp {
	instr := c.instruction()
	if instr == nil {
		return nil
	}
	op := instr.ChildByField(syntax.FieldOperation)
	if op == nil {
		return nil
	}
	mnemonic := res.Tree.Text(op)
	ins, ok := cat.Instruction(mnemonic)
	if !ok {
		return nil
	}
	active, _ := check.CurrentParameter(instr, c.before())

	label, offsets := ins.Signature.Label(mnemonic)
	info := signatureInformation{
		Label:           label,
		Parameters:      make([]parameterInformation, 0, len(offsets)),
		ActiveParameter: active,
	}
	for _, off := range offsets {
		info.Parameters = append(info.Parameters, parameterInformation{Label: off})
	}
	if ins.Doc != "" {
		info.Documentation = &markupContent{Kind: "plaintext", Value: ins.Doc}
	}
	return &signatureHelp{
		Signatures:      []signatureInformation{info},
		ActiveParameter: active,
	}
}
