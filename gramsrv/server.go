// Package gramsrv is a language server for the attributed-EBNF grammar
// DSL (SPEC_FULL.md §4.11): it parses a .atg document on every change
// and publishes the resulting diagnostics. Adapted from the javalyzer
// LSP server (java/codebase/lsp.go): same glsp/commonlog wiring, same
// didOpen/didChange/didSave shape, retargeted at grammar.Parse instead
// of the Java source scanner.
package gramsrv

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cocogen/diag"
	"github.com/dhamidi/cocogen/grammar"
	"github.com/dhamidi/cocogen/sets"
)

const lsName = "cocogen"

// Server is a long-lived LSP process over stdio, diagnosing every .atg
// document it's told about.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	docs map[string][]byte
}

// New builds a Server ready to RunStdio.
func New(version string) *Server {
	s := &Server{version: version, docs: make(map[string][]byte)}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio serves LSP requests over stdin/stdout until the client
// disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error { return nil }

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.docs[path] = []byte(params.TextDocument.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs[path] = []byte(textChange.Text)
			s.publishDiagnostics(ctx, params.TextDocument.URI, path)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err == nil {
		delete(s.docs, path)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		s.docs[path] = []byte(*params.Text)
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

// publishDiagnostics parses the document, runs set preparation so any
// structural problem Prepare or NewComputer would hit on a malformed
// graph surfaces too, and reports every problem found through the
// standard LSP publishDiagnostics notification.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string, path string) {
	content, ok := s.docs[path]
	if !ok {
		return
	}

	sink := diag.NewList()
	tab, err := grammar.Parse(path, strings.NewReader(string(content)))
	if err != nil {
		sink.Report(diag.Diagnostic{Severity: diag.Error, Message: err.Error()})
	} else {
		func() {
			defer func() {
				if r := recover(); r != nil {
					sink.Report(diag.Diagnostic{Severity: diag.Fatal, Message: "internal: malformed grammar graph"})
				}
			}()
			c := sets.NewComputer(tab)
			c.Prepare()
		}()
	}

	var lspDiags []protocol.Diagnostic
	for _, d := range sink.Items() {
		line := uint32(0)
		col := uint32(0)
		if d.Pos != nil {
			if d.Pos.Line > 0 {
				line = uint32(d.Pos.Line - 1)
			}
			col = uint32(d.Pos.Col)
		}
		sev := toProtocolSeverity(d.Severity)
		lspDiags = append(lspDiags, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: col + 1},
			},
			Severity: &sev,
			Source:   strPtr(lsName),
			Message:  d.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: lspDiags,
	})
}

func toProtocolSeverity(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}

func strPtr(s string) *string { return &s }
