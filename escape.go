package intenttext

import "strings"

// Unescape resolves backslash escapes in a raw segment: `\|` becomes `|`
// and `\\` becomes `\`. Any other backslash is kept literally. Unescape is
// total and must be applied exactly once per raw segment, before any
// structural splitting of its result.
func Unescape(segment string) string {
	if !strings.ContainsRune(segment, '\\') {
		return segment
	}

	var b strings.Builder
	b.Grow(len(segment))
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if c == '\\' && i+1 < len(segment) {
			switch next := segment[i+1]; next {
			case '\\', '|':
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// escapedAt reports whether position i in s is preceded by an odd run of
// backslashes, i.e. whether a split point at i is escaped.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
