package lsp

import (
	"github.com/emadjumaah/intenttext"
	"github.com/sourcegraph/go-lsp"
)

// DiagnosticsForBuffer parses an IntentText buffer and maps the parser's
// diagnostics to LSP diagnostics. The parser never fails on content, so
// this is total: a broken buffer yields diagnostics, not an error.
func DiagnosticsForBuffer(parser *intenttext.Parser, content string) []lsp.Diagnostic {
	doc := parser.ParseString(content)

	// Clients expect an empty (non-nil) list to clear stale diagnostics
	diags := make([]lsp.Diagnostic, 0, len(doc.Diagnostics))
	for _, d := range doc.Diagnostics {
		pos := lsp.Position{Line: d.Line - 1, Character: d.Column - 1}
		diags = append(diags, lsp.Diagnostic{
			Range:    lsp.Range{Start: pos, End: pos},
			Severity: severityFor(d.Severity),
			Code:     string(d.Code),
			Source:   "intenttext",
			Message:  d.Message,
		})
	}
	return diags
}

func severityFor(s intenttext.Severity) lsp.DiagnosticSeverity {
	if s == intenttext.SeverityError {
		return lsp.Error
	}
	return lsp.Warning
}
