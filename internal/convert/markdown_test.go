package convert

import (
	"strings"
	"testing"

	"github.com/emadjumaah/intenttext"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdown(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "headings",
			md:   "# My Doc\n\n## Part One\n\n### Detail\n",
			want: "title: My Doc\nsection: Part One\nsub: Detail\n",
		},
		{
			name: "late_h1_is_a_section",
			md:   "intro text\n\n# Not A Title\n",
			want: "intro text\nsection: Not A Title\n",
		},
		{
			name: "paragraph_lines",
			md:   "one\ntwo\n",
			want: "one\ntwo\n",
		},
		{
			name: "fenced_code",
			md:   "```go\nx := 1\ny := 2\n```\n",
			want: "code:\nx := 1\ny := 2\nend:\n",
		},
		{
			name: "list_items",
			md:   "- alpha\n- beta\n",
			want: "- alpha\n- beta\n",
		},
		{
			name: "blockquote_becomes_note",
			md:   "> remember this\n",
			want: "note: remember this\n",
		},
		{
			name: "thematic_break",
			md:   "one\n\n---\n\ntwo\n",
			want: "one\ndivider:\ntwo\n",
		},
		{
			name: "pipes_are_escaped",
			md:   "a | b\n",
			want: "a \\| b\n",
		},
	}

	c := NewConverter()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Convert(strings.NewReader(tc.md))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// Converted output must parse back cleanly
func TestConvertedOutputParses(t *testing.T) {
	md := "# Plan\n\nSome intro.\n\n## Work\n\n- alpha\n- beta\n\n```sh\nls\n```\n"

	c := NewConverter()
	src, err := c.Convert(strings.NewReader(md))
	require.NoError(t, err)

	doc := intenttext.NewParser().ParseString(src)
	require.Empty(t, doc.Diagnostics)
	require.Equal(t, "Plan", doc.Metadata.Title)
}
