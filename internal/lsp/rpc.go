package lsp

import "encoding/json"

// Outgoing envelopes. Result has no omitempty: a null result must still be
// sent for requests such as shutdown.
type (
	responseOut struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}
	errorOut struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Error   rpcError        `json:"error"`
	}
	notificationOut struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params"`
	}
)

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	return s.send(responseOut{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return s.send(errorOut{JSONRPC: "2.0", ID: id, Error: rpcError{Code: code, Message: message}})
}

func (s *Server) sendNotification(method string, params any) error {
	return s.send(notificationOut{JSONRPC: "2.0", Method: method, Params: params})
}

func (s *Server) showMessage(typ int, message string) error {
	return s.sendNotification("window/showMessage", showMessageParams{Type: typ, Message: message})
}

// decodeRequest unmarshals request params. On failure the invalid params
// error has already been answered and handled is true.
func (s *Server) decodeRequest(msg *rpcMessage, v any) (handled bool, err error) {
	if len(msg.Params) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(msg.Params, v); err != nil {
		return true, s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	return false, nil
}

// send serializes whole frames; handlers and the publisher may race.
func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
