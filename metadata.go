package intenttext

import (
	"regexp"
	"strconv"
	"strings"
)

var propertySegmentRegex = regexp.MustCompile(`^([^:]+):\s*(.*)$`)

const pipeDelimiter = " | "

// splitPipeMetadata divides a keyword line's remainder into a raw content
// segment followed by zero or more raw property segments. The only split
// point is the literal " | " sequence, and a delimiter whose pipe sits
// behind an odd run of backslashes is treated as escaped content.
// Segments are returned raw; escape resolution is the caller's job.
func splitPipeMetadata(remainder string) []string {
	var segments []string
	start := 0
	for i := 0; i+len(pipeDelimiter) <= len(remainder); i++ {
		if remainder[i:i+len(pipeDelimiter)] != pipeDelimiter || escapedAt(remainder, i) {
			continue
		}
		segments = append(segments, remainder[start:i])
		start = i + len(pipeDelimiter)
		i = start - 1
	}
	return append(segments, remainder[start:])
}

// parseProperty matches one raw metadata segment against `key: value`.
// Keys containing a backslash or pipe are rejected; keys are not escapable,
// so a rejected segment can be re-attached to content verbatim.
func parseProperty(segment string) (key string, value any, ok bool) {
	m := propertySegmentRegex.FindStringSubmatch(segment)
	if m == nil {
		return "", nil, false
	}
	key = strings.TrimSpace(m[1])
	if key == "" || strings.ContainsAny(key, `\|`) {
		return "", nil, false
	}
	return key, propertyValue(Unescape(m[2])), true
}

// propertyValue narrows a scalar: integers and floats are stored as
// numbers, everything else stays a string.
func propertyValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// splitTableRow splits `headers:`/`row:` content into cells on unescaped
// bare pipes. Cells are trimmed, escape-resolved, and dropped when empty
// after trimming.
func splitTableRow(text string) []string {
	var cells []string
	start := 0
	appendCell := func(end int) {
		cell := strings.TrimSpace(text[start:end])
		if cell != "" {
			cells = append(cells, Unescape(cell))
		}
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '|' && !escapedAt(text, i) {
			appendCell(i)
			start = i + 1
		}
	}
	appendCell(len(text))
	return cells
}
