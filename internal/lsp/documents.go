package lsp

import (
	"encoding/json"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didOpen: %v", err)
		return nil
	}
	item := params.TextDocument
	doc, err := s.store.Open(s.baseCtx, item.URI, item.Version, item.Text)
	if err != nil {
		s.logf("didOpen: %v", err)
	}
	return s.publish(doc)
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didChange: %v", err)
		return nil
	}
	uri := params.TextDocument.URI
	text := ""
	if prev, ok := s.store.Get(uri); ok {
		text = prev.Text
	}
	text = applyChanges(text, params.ContentChanges, s.positionEncoding())
	doc, err := s.store.Change(s.baseCtx, uri, params.TextDocument.Version, text)
	if err != nil {
		s.logf("didChange: %v", err)
	}
	return s.publish(doc)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didClose: %v", err)
		return nil
	}
	uri := params.TextDocument.URI
	s.store.Close(uri)
	s.mu.Lock()
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		return s.sendPublish(uri, nil, nil)
	}
	return nil
}

// publish sends the diagnostics of doc's last good analysis.
func (s *Server) publish(doc *analysis.Document) error {
	if doc == nil || doc.Result == nil {
		return nil
	}
	enc := s.positionEncoding()
	file := doc.Result.File()
	list := make([]lspDiagnostic, 0, len(doc.Result.Diagnostics))
	for _, d := range doc.Result.Diagnostics {
		list = append(list, toLSPDiagnostic(doc.URI, file, d, enc))
	}
	s.mu.Lock()
	s.published[doc.URI] = struct{}{}
	s.mu.Unlock()
	version := doc.Version
	return s.sendPublish(doc.URI, &version, list)
}

func (s *Server) sendPublish(uri string, version *int32, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}

func toLSPDiagnostic(uri string, file *source.File, d diag.Diagnostic, enc positionEncoding) lspDiagnostic {
	out := lspDiagnostic{
		Range:    rangeForSpan(file, d.Primary, enc),
		Severity: lspSeverity(d.Severity),
		Code:     d.Code.ID(),
		Source:   "ic10lsp",
		Message:  d.Message,
	}
	for _, note := range d.Notes {
		out.RelatedInformation = append(out.RelatedInformation, diagnosticRelatedInformation{
			Location: location{URI: uri, Range: rangeForSpan(file, note.Span, enc)},
			Message:  note.Msg,
		})
	}
	if d.Data != "" {
		if raw, err := json.Marshal(d.Data); err == nil {
			out.Data = raw
		}
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}
