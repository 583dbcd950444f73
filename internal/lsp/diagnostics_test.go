package lsp

import (
	"testing"

	"github.com/emadjumaah/intenttext"
	"github.com/sourcegraph/go-lsp"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsForBuffer(t *testing.T) {
	parser := intenttext.NewParser()

	t.Run("clean_buffer_yields_empty_list", func(t *testing.T) {
		diags := DiagnosticsForBuffer(parser, "title: Hello\nnote: World\n")
		require.NotNil(t, diags)
		require.Empty(t, diags)
	})

	t.Run("unterminated_code_is_an_error", func(t *testing.T) {
		diags := DiagnosticsForBuffer(parser, "code:\nnever closed")

		require.Len(t, diags, 1)
		d := diags[0]
		require.Equal(t, lsp.Error, d.Severity)
		require.Equal(t, string(intenttext.CodeUnterminatedCodeBlock), d.Code)
		// 0-based LSP position for source line 1
		require.Equal(t, 0, d.Range.Start.Line)
	})

	t.Run("stray_end_is_a_warning", func(t *testing.T) {
		diags := DiagnosticsForBuffer(parser, "note: hi\nend:")

		require.Len(t, diags, 1)
		require.Equal(t, lsp.DiagnosticSeverity(lsp.Warning), diags[0].Severity)
		require.Equal(t, 1, diags[0].Range.Start.Line)
	})
}
