package lsp

import (
	"encoding/json"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/lint"
	"ic10lsp/internal/syntax"
)

const codeActionKindQuickFix = "quickfix"

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	uri := params.TextDocument.URI
	res := s.document(uri)
	if res == nil {
		return s.sendResponse(msg.ID, []codeAction{})
	}
	return s.sendResponse(msg.ID, buildCodeActions(res, uri, params.Context.Diagnostics, s.positionEncoding()))
}

// buildCodeActions turns lint diagnostics sent back by the client into quick
// fixes. The replacement travels in the diagnostic data.
func buildCodeActions(res *analysis.Result, uri string, diagnostics []lspDiagnostic, enc positionEncoding) []codeAction {
	actions := make([]codeAction, 0, len(diagnostics))
	for _, d := range diagnostics {
		code, ok := diag.ParseID(d.Code)
		if !ok {
			continue
		}
		var replacement string
		if len(d.Data) > 0 {
			if err := json.Unmarshal(d.Data, &replacement); err != nil {
				continue
			}
		}
		var edit textEdit
		switch code {
		case diag.LintBatchModeLiteral, diag.LintReagentModeLiteral:
			if replacement == "" {
				continue
			}
			edit = textEdit{Range: d.Range, NewText: replacement}
		case diag.LintAbsoluteJump:
			op := operationAt(res, offsetForPosition(res.File(), d.Range.Start, enc))
			if op == nil {
				continue
			}
			if replacement == "" {
				if replacement, ok = lint.RelativeJump(res.Tree.Text(op)); !ok {
					continue
				}
			}
			edit = textEdit{Range: rangeForSpan(res.File(), op.Span, enc), NewText: replacement}
		default:
			continue
		}
		actions = append(actions, codeAction{
			Title:       "Replace with " + replacement,
			Kind:        codeActionKindQuickFix,
			Diagnostics: []lspDiagnostic{d},
			IsPreferred: true,
			Edit:        &workspaceEdit{Changes: map[string][]textEdit{uri: {edit}}},
		})
	}
	return actions
}

// operationAt returns the operation of the instruction on the line holding off.
func operationAt(res *analysis.Result, off uint32) *syntax.Node {
	line := lineAt(res.Tree, off)
	if line == nil {
		return nil
	}
	instr := line.ChildOfKind(syntax.KindInstruction)
	if instr == nil {
		return nil
	}
	return instr.ChildByField(syntax.FieldOperation)
}
