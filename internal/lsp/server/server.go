package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/emadjumaah/intenttext"
	iLsp "github.com/emadjumaah/intenttext/internal/lsp"
	"github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
)

// Server is the IntentText language server. It keeps the latest buffer
// content per open document, reparses on every open/change, and publishes
// the parser's diagnostics.
type Server struct {
	conn *jsonrpc2.Conn

	parser *intenttext.Parser

	// latest buffer content per document URI
	documents sync.Map
	// tracks canceled request IDs
	cancelMap sync.Map
	// tracking for method request counts
	trackRequestCount sync.Map
}

func NewServer(parser *intenttext.Parser) *Server {
	return &Server{
		parser: parser,
	}
}

func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (result interface{}, err error) {
	if s.conn == nil {
		s.conn = conn
	}
	slog.Info("received request", "method", req.Method, "id", req.ID)
	reqCount, _ := s.trackRequestCount.LoadOrStore(req.Method, 1)
	if count, ok := reqCount.(int); ok {
		s.trackRequestCount.Store(req.Method, count+1)
	}

	if _, ok := s.cancelMap.Load(req.ID.String()); ok {
		slog.Debug("request was canceled", "id", req.ID)
		s.cancelMap.Delete(req.ID.String())
		return nil, nil
	}

	switch req.Method {
	case "initialize":
		slog.Info("initializing lsp server")

		kind := lsp.TDSKFull
		return lsp.InitializeResult{
			Capabilities: lsp.ServerCapabilities{
				TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
					Kind: &kind,
				},
			},
		}, nil

	case "initialized":
		slog.Info("server initialized")
		return nil, nil

	case "shutdown":
		slog.Info("shutting down")
		s.printDebugStats()
		return nil, nil

	case "exit":
		slog.Info("exiting")
		os.Exit(0)
		return nil, nil

	case "textDocument/didOpen":
		var params lsp.DidOpenTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		s.documents.Store(params.TextDocument.URI, params.TextDocument.Text)
		return nil, s.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)

	case "textDocument/didChange":
		var params lsp.DidChangeTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		// Full sync: the last change carries the whole buffer
		if len(params.ContentChanges) == 0 {
			return nil, nil
		}
		content := params.ContentChanges[len(params.ContentChanges)-1].Text

		s.documents.Store(params.TextDocument.URI, content)
		return nil, s.publishDiagnostics(ctx, params.TextDocument.URI, content)

	case "textDocument/didSave":
		var params lsp.DidSaveTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		if content, ok := s.documents.Load(params.TextDocument.URI); ok {
			return nil, s.publishDiagnostics(ctx, params.TextDocument.URI, content.(string))
		}
		return nil, nil

	case "textDocument/didClose":
		var params lsp.DidCloseTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}

		s.documents.Delete(params.TextDocument.URI)

		// Clear diagnostics for the closed document
		return nil, s.sendDiagnostics(ctx, lsp.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []lsp.Diagnostic{},
		})

	case "$/cancelRequest":
		var params lsp.CancelParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return nil, err
		}
		slog.Debug("canceling request", "id", params.ID)
		s.cancelMap.Store(params.ID.String(), struct{}{})
		return nil, nil

	default:
		slog.Debug("unhandled method", "method", req.Method)
		return nil, nil
	}
}

func (s *Server) publishDiagnostics(ctx context.Context, uri lsp.DocumentURI, content string) error {
	diags := iLsp.DiagnosticsForBuffer(s.parser, content)

	slog.Debug("publishing diagnostics", "uri", uri, "count", len(diags))
	return s.sendDiagnostics(ctx, lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (s *Server) sendDiagnostics(ctx context.Context, params lsp.PublishDiagnosticsParams) error {
	if s.conn == nil {
		return fmt.Errorf("no active connection")
	}
	return s.conn.Notify(ctx, "textDocument/publishDiagnostics", params)
}

func (s *Server) printDebugStats() {
	s.trackRequestCount.Range(func(key, value interface{}) bool {
		msg := fmt.Sprintf("Method: %-30s Count: %d", key.(string), value.(int))
		slog.Debug(msg)
		return true
	})
}
