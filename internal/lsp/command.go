package lsp

import (
	"ic10lsp/internal/version"
)

const commandVersion = "version"

func (s *Server) handleExecuteCommand(msg *rpcMessage) error {
	var params executeCommandParams
	if handled, err := s.decodeRequest(msg, &params); handled {
		return err
	}
	switch params.Command {
	case commandVersion:
		if err := s.showMessage(messageTypeInfo, "IC10LSP Version: "+version.Version); err != nil {
			return err
		}
		return s.sendResponse(msg.ID, nil)
	default:
		return s.sendError(msg.ID, codeInvalidParams, "unknown command "+params.Command)
	}
}
