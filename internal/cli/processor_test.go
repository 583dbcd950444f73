package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emadjumaah/intenttext"
	"github.com/stretchr/testify/require"
)

func TestProcessSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.it")
	require.NoError(t, os.WriteFile(src, []byte("title: Hello\nnote: World\n"), 0644))

	p := NewProcessor(Options{NoBackup: true})
	results, err := p.ProcessPath(src)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Empty(t, results[0].Diagnostics)

	out, err := os.ReadFile(filepath.Join(dir, "doc.html"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Hello</h1>")
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.it"), []byte("title: A\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.it"), []byte("title: B\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.md"), []byte("# not ours\n"), 0644))

	p := NewProcessor(Options{NoBackup: true})
	results, err := p.ProcessPath(dir)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, name := range []string{"a.html", "b.html"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
	}
}

func TestCheckOnlyReportsDiagnosticsWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.it")
	require.NoError(t, os.WriteFile(src, []byte("code:\nnever closed\n"), 0644))

	p := NewProcessor(Options{CheckOnly: true})
	results, err := p.ProcessPath(src)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Diagnostics, 1)
	require.Equal(t, intenttext.CodeUnterminatedCodeBlock, results[0].Diagnostics[0].Code)

	_, err = os.Stat(filepath.Join(dir, "broken.html"))
	require.True(t, os.IsNotExist(err))
}

func TestMissingFilesIsAnError(t *testing.T) {
	dir := t.TempDir()

	p := NewProcessor(Options{})
	_, err := p.ProcessPath(dir)
	require.Error(t, err)
}
