package lsp

import (
	"encoding/json"

	"ic10lsp/internal/config"
)

// handleDidChangeConfiguration layers the client settings over the current
// configuration, then re-analyses and republishes every open document.
func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didChangeConfiguration: %v", err)
		return nil
	}
	cfg, err := config.ApplySettings(params.Settings, s.store.Config())
	if err != nil {
		s.logf("didChangeConfiguration: %v", err)
		return s.showMessage(messageTypeError, err.Error())
	}
	s.store.SetConfig(cfg)

	docs, err := s.store.ReanalyzeAll(s.baseCtx)
	if err != nil {
		s.logf("reanalyze: %v", err)
		return nil
	}
	for _, doc := range docs {
		if err := s.publish(doc); err != nil {
			return err
		}
	}
	return nil
}
