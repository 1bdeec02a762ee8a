// Package lsp serves IC10 documents over the Language Server Protocol:
// JSON-RPC 2.0 framed with Content-Length headers, one request at a time.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"ic10lsp/internal/analysis"
	"ic10lsp/internal/catalog"
	"ic10lsp/internal/config"
	"ic10lsp/internal/trace"
)

var (
	// ErrExit ends Run after an orderly shutdown/exit sequence.
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown ends Run on an exit the client did not
	// announce with shutdown.
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures NewServer.
type ServerOptions struct {
	// Analyzer defaults to one over catalog.Default().
	Analyzer *analysis.Analyzer
	// Config is the starting configuration.
	Config config.Configuration
	// ConfigFixed disables the ic10lsp.toml lookup from the workspace root,
	// used when the configuration was given on the command line.
	ConfigFixed bool
	// Log receives server log lines; defaults to stderr.
	Log io.Writer
}

// Server owns the open documents of one client connection.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	log    io.Writer

	store *analysis.Store
	cat   *catalog.Catalog

	mu                sync.Mutex
	encoding          positionEncoding
	workspaceRoot     string
	shutdownRequested bool
	configFixed       bool
	published         map[string]struct{}

	baseCtx context.Context
}

func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	a := opts.Analyzer
	if a == nil {
		a = analysis.New(catalog.Default())
	}
	cfg := opts.Config
	if cfg == (config.Configuration{}) {
		cfg = config.Default()
	}
	s := &Server{
		in:          bufio.NewReader(in),
		out:         bufio.NewWriter(out),
		log:         opts.Log,
		store:       analysis.NewStore(a, cfg),
		cat:         a.Catalog,
		configFixed: opts.ConfigFixed,
		published:   make(map[string]struct{}),
		baseCtx:     context.Background(),
	}
	if s.log == nil {
		s.log = os.Stderr
	}
	return s
}

// Run reads messages until the input ends, ctx is cancelled or the client
// sends exit. A clean end of input returns nil.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	for ctx.Err() == nil {
		payload, err := readMessage(s.in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("dropping malformed message: %v", err)
			continue
		}
		if msg.Method == "" {
			// Responses to our own requests; the server sends none.
			continue
		}
		if err := s.traced(ctx, &msg); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *Server) traced(ctx context.Context, msg *rpcMessage) error {
	span, _ := trace.Start(ctx, trace.ScopeRequest, msg.Method)
	err := s.handleMessage(msg)
	switch {
	case err == nil:
		span.End("")
	case errors.Is(err, ErrExit):
		span.End("exit")
	default:
		span.Fail(err)
	}
	return err
}

type handlerFunc func(*Server, *rpcMessage) error

// handlers maps every method the server understands. Unknown requests get
// MethodNotFound, unknown notifications are dropped.
var handlers = map[string]handlerFunc{
	"initialize":                       (*Server).handleInitialize,
	"initialized":                      func(*Server, *rpcMessage) error { return nil },
	"shutdown":                         (*Server).handleShutdown,
	"exit":                             (*Server).handleExit,
	"workspace/didChangeConfiguration": (*Server).handleDidChangeConfiguration,
	"workspace/executeCommand":         (*Server).handleExecuteCommand,
	"textDocument/didOpen":             (*Server).handleDidOpen,
	"textDocument/didChange":           (*Server).handleDidChange,
	"textDocument/didClose":            (*Server).handleDidClose,
	"textDocument/hover":               (*Server).handleHover,
	"textDocument/completion":          (*Server).handleCompletion,
	"textDocument/signatureHelp":       (*Server).handleSignatureHelp,
	"textDocument/definition":          (*Server).handleDefinition,
	"textDocument/documentSymbol":      (*Server).handleDocumentSymbol,
	"textDocument/codeAction":          (*Server).handleCodeAction,
	"textDocument/semanticTokens/full": (*Server).handleSemanticTokens,
	"textDocument/inlayHint":           (*Server).handleInlayHint,
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	if h, ok := handlers[msg.Method]; ok {
		return h(s, msg)
	}
	if len(msg.ID) == 0 {
		return nil
	}
	return s.sendError(msg.ID, codeMethodNotFound, "method not found")
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleExit(*rpcMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.shutdownRequested {
		return ErrExitWithoutShutdown
	}
	return ErrExit
}

func (s *Server) positionEncoding() positionEncoding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encoding
}

// document returns the last good analysis of uri.
func (s *Server) document(uri string) *analysis.Result {
	if doc, ok := s.store.Get(uri); ok {
		return doc.Result
	}
	return nil
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}
