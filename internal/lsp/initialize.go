package lsp

import (
	"encoding/json"
	"path/filepath"
	"slices"

	"ic10lsp/internal/config"
	"ic10lsp/internal/version"
)

// workspaceRoot picks rootUri, then rootPath, then the first workspace
// folder, made absolute when possible.
func (p *initializeParams) workspaceRoot() string {
	root := uriToPath(p.RootURI)
	if root == "" {
		root = p.RootPath
	}
	if root == "" && len(p.WorkspaceFolders) > 0 {
		root = uriToPath(p.WorkspaceFolders[0].URI)
	}
	if root == "" {
		return ""
	}
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}

// negotiateEncoding prefers UTF-8 when offered. warn is set when the client
// listed encodings but not UTF-8.
func (p *initializeParams) negotiateEncoding() (enc positionEncoding, warn bool) {
	if p.Capabilities.General == nil || len(p.Capabilities.General.PositionEncodings) == 0 {
		return encodingUTF16, false
	}
	if slices.Contains(p.Capabilities.General.PositionEncodings, encodingUTF8.String()) {
		return encodingUTF8, false
	}
	return encodingUTF16, true
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	root := params.workspaceRoot()
	enc, warn := params.negotiateEncoding()

	s.mu.Lock()
	s.workspaceRoot = root
	s.encoding = enc
	fixed := s.configFixed
	s.mu.Unlock()

	s.store.SetConfig(s.initialConfig(root, fixed, params.InitializationOptions))

	if warn {
		if err := s.showMessage(messageTypeWarning, "Client does not support UTF-8. Non-ASCII characters will cause problems."); err != nil {
			return err
		}
	}
	return s.sendResponse(msg.ID, initializeResult{
		Capabilities: capabilities(enc),
		ServerInfo:   serverInfo{Name: "ic10lsp", Version: version.Version},
	})
}

// initialConfig layers ic10lsp.toml from root (unless fixed) and then the
// client's initializationOptions over the current configuration. Bad input
// at either layer is logged and skipped.
func (s *Server) initialConfig(root string, fixed bool, opts json.RawMessage) config.Configuration {
	cfg := s.store.Config()
	if !fixed && root != "" {
		if resolved, err := config.Resolve("", root); err != nil {
			s.logf("config: %v", err)
		} else {
			cfg = resolved
		}
	}
	next, err := config.ApplySettings(opts, cfg)
	if err != nil {
		s.logf("initializationOptions: %v", err)
		return cfg
	}
	return next
}

func capabilities(enc positionEncoding) serverCapabilities {
	space := []string{" "}
	return serverCapabilities{
		PositionEncoding:       enc.String(),
		TextDocumentSync:       textDocumentSyncOptions{OpenClose: true, Change: textDocumentSyncFull},
		HoverProvider:          true,
		CompletionProvider:     &completionOptions{TriggerCharacters: space},
		SignatureHelpProvider:  &signatureHelpOptions{TriggerCharacters: space},
		DefinitionProvider:     true,
		DocumentSymbolProvider: true,
		CodeActionProvider:     true,
		SemanticTokensProvider: &semanticTokensOptions{
			Legend: semanticTokensLegend{TokenTypes: semanticTokenTypes, TokenModifiers: []string{}},
			Full:   true,
		},
		InlayHintProvider:      true,
		ExecuteCommandProvider: &executeCommandOptions{Commands: []string{commandVersion}},
	}
}
