package intenttext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPipeMetadata(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "no_delimiter", in: "just content", want: []string{"just content"}},
		{name: "empty", in: "", want: []string{""}},
		{name: "one_property", in: "content | key: value", want: []string{"content", "key: value"}},
		{name: "several_properties", in: "c | a: 1 | b: 2", want: []string{"c", "a: 1", "b: 2"}},
		{name: "escaped_pipe_survives", in: `a \| b | k: v`, want: []string{`a \| b`, "k: v"}},
		{name: "backslash_before_delimiter", in: `a\ | b`, want: []string{`a\ | b`}},
		{name: "double_backslash_still_splits", in: `a\\ | b`, want: []string{`a\\`, "b"}},
		{name: "bare_pipe_not_a_delimiter", in: "a|b", want: []string{"a|b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, splitPipeMetadata(tc.in))
		})
	}
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantKey   string
		wantValue any
		wantOK    bool
	}{
		{name: "string_value", in: "owner: John", wantKey: "owner", wantValue: "John", wantOK: true},
		{name: "integer_value", in: "priority: 3", wantKey: "priority", wantValue: int64(3), wantOK: true},
		{name: "float_value", in: "weight: 1.5", wantKey: "weight", wantValue: 1.5, wantOK: true},
		{name: "value_with_colon", in: "url: https://x", wantKey: "url", wantValue: "https://x", wantOK: true},
		{name: "escaped_value", in: `alias: a \| b`, wantKey: "alias", wantValue: "a | b", wantOK: true},
		{name: "no_colon", in: "not a property", wantOK: false},
		{name: "key_with_backslash", in: `bad\key: v`, wantOK: false},
		{name: "empty_key", in: ": v", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, value, ok := parseProperty(tc.in)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				require.Equal(t, tc.wantKey, key)
				require.Equal(t, tc.wantValue, value)
			}
		})
	}
}

func TestSplitTableRow(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "simple", in: "A | B", want: []string{"A", "B"}},
		{name: "no_space_required", in: "A|B|C", want: []string{"A", "B", "C"}},
		{name: "trimmed", in: "  A  |  B  ", want: []string{"A", "B"}},
		{name: "empty_cells_dropped", in: "A ||  | B", want: []string{"A", "B"}},
		{name: "escaped_pipe_in_cell", in: `A \| B | C`, want: []string{"A | B", "C"}},
		{name: "empty_input", in: "", want: nil},
		{name: "only_pipes", in: "|||", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, splitTableRow(tc.in))
		})
	}
}
