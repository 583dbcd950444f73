package intenttext

import "strings"

// RunKind identifies the formatting of one inline run
type RunKind string

const (
	RunPlain  RunKind = "plain"
	RunBold   RunKind = "bold"
	RunItalic RunKind = "italic"
	RunStrike RunKind = "strike"
	RunCode   RunKind = "code"
	RunLink   RunKind = "link"
)

// Run is one typed, delimiter-stripped fragment of inline text
type Run struct {
	Kind  RunKind
	Value string
	// Link destination, set only for RunLink
	Target string
}

// TokenizeFunc is the signature shared by the default inline tokenizer and
// extension-supplied overrides.
type TokenizeFunc func(text string) (string, []Run)

const codeFence = "```"

// TokenizeInline converts a text span into its inline runs. At each
// position it recognizes, in order: a triple-backtick code span (greedy to
// the next fence, literal when unmatched), the single-character delimiters
// `*` (bold), `_` (italic) and `~` (strike) matched to the next occurrence
// of the same character (literal when unmatched), and `[label](target)`
// links (literal when malformed). Everything else accumulates into plain
// runs. Delimiters do not nest; escapes are resolved by the caller before
// tokenization.
//
// The returned content is the concatenation of every run value, i.e. the
// input with all matched delimiters stripped. Every input character lands
// in exactly one run.
func TokenizeInline(text string) (string, []Run) {
	var runs []Run
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], codeFence) {
			if end := strings.Index(text[i+3:], codeFence); end >= 0 {
				runs = appendRun(runs, Run{Kind: RunCode, Value: text[i+3 : i+3+end]})
				i += end + 6
				continue
			}
		}

		switch c := text[i]; c {
		case '*', '_', '~':
			if end := strings.IndexByte(text[i+1:], c); end >= 0 {
				runs = appendRun(runs, Run{Kind: delimiterKind(c), Value: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		case '[':
			if run, width, ok := scanLink(text[i:]); ok {
				runs = appendRun(runs, run)
				i += width
				continue
			}
		}

		// Plain run until the next delimiter candidate. An unmatched
		// delimiter lands here as a literal.
		j := i + 1
		for j < len(text) && !delimiterCandidate(text, j) {
			j++
		}
		runs = appendRun(runs, Run{Kind: RunPlain, Value: text[i:j]})
		i = j
	}

	var content strings.Builder
	for _, r := range runs {
		content.WriteString(r.Value)
	}
	return content.String(), runs
}

func delimiterKind(c byte) RunKind {
	switch c {
	case '*':
		return RunBold
	case '_':
		return RunItalic
	default:
		return RunStrike
	}
}

func delimiterCandidate(s string, i int) bool {
	switch s[i] {
	case '*', '_', '~', '[':
		return true
	case '`':
		return strings.HasPrefix(s[i:], codeFence)
	}
	return false
}

// scanLink matches `[label](target)` at the start of s. The label becomes
// the run value so content round-trips; the target rides along separately.
func scanLink(s string) (Run, int, bool) {
	close := strings.IndexByte(s, ']')
	if close < 0 || close+1 >= len(s) || s[close+1] != '(' {
		return Run{}, 0, false
	}
	end := strings.IndexByte(s[close+2:], ')')
	if end < 0 {
		return Run{}, 0, false
	}
	return Run{
		Kind:   RunLink,
		Value:  s[1:close],
		Target: s[close+2 : close+2+end],
	}, close + 2 + end + 1, true
}

// appendRun merges consecutive plain runs so literal delimiters do not
// fragment the surrounding text.
func appendRun(runs []Run, r Run) []Run {
	if n := len(runs); n > 0 && r.Kind == RunPlain && runs[n-1].Kind == RunPlain {
		runs[n-1].Value += r.Value
		return runs
	}
	return append(runs, r)
}
