package intenttext

import (
	"regexp"
	"strings"
)

var (
	keywordLineRegex  = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9-]*):\s*(.*)$`)
	stepItemRegex     = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	checkboxLineRegex = regexp.MustCompile(`^\[([ xX])\]\s*(.*)$`)
)

// reservedKinds maps the built-in keyword set (matched case-insensitively)
// to block kinds. headers/row/end map to draft kinds the assembler resolves.
var reservedKinds = map[string]BlockKind{
	"title":    KindTitle,
	"summary":  KindSummary,
	"section":  KindSection,
	"sub":      KindSub,
	"divider":  KindDivider,
	"note":     KindNote,
	"headers":  kindHeaders,
	"row":      kindRow,
	"task":     KindTask,
	"done":     KindDone,
	"question": KindQuestion,
	"image":    KindImage,
	"link":     KindLink,
	"ref":      KindReference,
	"code":     KindCode,
	"end":      kindEnd,
}

// classifyLine turns one input line into a draft block, or nil for blank
// and extension-suppressed lines. depth bounds list-item embedding: a list
// item's embedded block is classified at depth 1 and is never itself a
// list or step item.
func (r *parseRun) classifyLine(line string, lineNo, depth int) *Block {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if m := keywordLineRegex.FindStringSubmatch(line); m != nil {
		return r.classifyKeyword(m[1], m[2], line, lineNo)
	}

	if m := checkboxLineRegex.FindStringSubmatch(line); m != nil {
		return r.checkboxBlock(m, lineNo)
	}

	if depth == 0 && (strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")) {
		return r.classifyListItem(line[2:], lineNo)
	}

	if m := stepItemRegex.FindStringSubmatch(line); m != nil {
		return r.contentBlock(KindStepItem, m[2], lineNo)
	}

	return r.textBlock(KindBodyText, line, lineNo)
}

// classifyKeyword handles a line that matched the keyword shape. The line
// argument is the full original line, used when the keyword degrades to
// body text.
func (r *parseRun) classifyKeyword(keyword, remainder, line string, lineNo int) *Block {
	lower := strings.ToLower(keyword)
	kind, reserved := reservedKinds[lower]
	ext := r.claimant(lower)

	if !reserved && ext == nil {
		if strings.HasPrefix(lower, "x-") || strings.HasPrefix(lower, "ext-") {
			r.warnf(CodeUnknownExtKeyword, lineNo, 1, "unknown extension keyword %q", keyword)
			return r.contentBlock(KindExtension, remainder, lineNo)
		}
		// Unknown keyword, not extension-shaped: plain prose.
		return r.textBlock(KindBodyText, line, lineNo)
	}

	switch kind {
	case kindHeaders, kindRow, kindEnd:
		// Pipe is the cell delimiter on table lines, so the whole
		// remainder stays content; the assembler splits cells itself.
		blk := r.newBlock(kind, lineNo)
		blk.SourceText = remainder
		blk.Text = remainder
		return blk
	}

	if !reserved {
		kind = KindExtension
	}

	content, props := r.splitMetadata(remainder, lineNo)
	unescaped := Unescape(content)

	blk := r.newBlock(kind, lineNo)
	blk.SourceText = content
	blk.Properties = props
	if kind == KindCode {
		// Code content is verbatim: no escape stripping, no inline marks.
		blk.Text = content
	} else {
		blk.Text, blk.Runs = r.tokenize(unescaped)
	}

	if ext != nil {
		override, action := ext.ConstructBlock(BlockContext{
			Keyword:    lower,
			Content:    unescaped,
			SourceText: content,
			Properties: props,
			Line:       lineNo,
			Column:     1,
		}, r.tokenize)
		switch action {
		case ActionSuppress:
			return nil
		case ActionReplace:
			if override != nil {
				override.ID = blk.ID
				if override.Line == 0 {
					override.Line = lineNo
				}
				return override
			}
		}
	}

	return blk
}

// classifyListItem builds a list item from the text after the `- `/`* `
// marker. When the remainder itself parses as a non-list keyword or
// checkbox block, that block becomes the item's single child and the item
// mirrors its content and properties so both representations agree.
func (r *parseRun) classifyListItem(remainder string, lineNo int) *Block {
	if inner := r.embeddedBlock(remainder, lineNo); inner != nil {
		item := r.newBlock(KindListItem, lineNo)
		item.Text = inner.Text
		item.SourceText = inner.SourceText
		item.Runs = inner.Runs
		item.Properties = inner.Properties
		item.Children = []*Block{inner}
		return item
	}
	return r.contentBlock(KindListItem, remainder, lineNo)
}

// embeddedBlock classifies a list item's remainder at depth 1. Only
// keyword and checkbox shapes qualify; table drafts and `end:` never embed.
func (r *parseRun) embeddedBlock(remainder string, lineNo int) *Block {
	if m := keywordLineRegex.FindStringSubmatch(remainder); m != nil {
		lower := strings.ToLower(m[1])
		kind, reserved := reservedKinds[lower]
		switch kind {
		case kindHeaders, kindRow, kindEnd:
			return nil
		}
		if reserved || r.claimant(lower) != nil || strings.HasPrefix(lower, "x-") || strings.HasPrefix(lower, "ext-") {
			return r.classifyKeyword(m[1], m[2], remainder, lineNo)
		}
		return nil
	}
	if m := checkboxLineRegex.FindStringSubmatch(remainder); m != nil {
		return r.checkboxBlock(m, lineNo)
	}
	return nil
}

func (r *parseRun) checkboxBlock(m []string, lineNo int) *Block {
	kind := KindTask
	if m[1] != " " {
		kind = KindDone
	}
	return r.contentBlock(kind, m[2], lineNo)
}

// textBlock builds a block from inline-formatted content alone. Body text
// never carries pipe metadata; a pipe in prose is just prose.
func (r *parseRun) textBlock(kind BlockKind, content string, lineNo int) *Block {
	blk := r.newBlock(kind, lineNo)
	blk.SourceText = content
	blk.Text, blk.Runs = r.tokenize(Unescape(content))
	return blk
}

// contentBlock builds a block whose remainder carries pipe metadata and
// inline-formatted content.
func (r *parseRun) contentBlock(kind BlockKind, remainder string, lineNo int) *Block {
	content, props := r.splitMetadata(remainder, lineNo)
	blk := r.newBlock(kind, lineNo)
	blk.SourceText = content
	blk.Properties = props
	blk.Text, blk.Runs = r.tokenize(Unescape(content))
	return blk
}

// splitMetadata separates content from `key: value` properties. A segment
// that fails to parse as a property is reported and re-attached to the
// content, never dropped.
func (r *parseRun) splitMetadata(remainder string, lineNo int) (string, map[string]any) {
	segments := splitPipeMetadata(remainder)
	content := segments[0]
	var props map[string]any
	for _, seg := range segments[1:] {
		key, value, ok := parseProperty(seg)
		if !ok {
			r.warnf(CodeInvalidPropertySegment, lineNo, 1, "metadata segment %q is not a key: value pair", seg)
			content += pipeDelimiter + seg
			continue
		}
		if props == nil {
			props = make(map[string]any)
		}
		props[key] = value
	}
	return content, props
}

// claimant returns the first registered extension whose keyword list
// includes keyword, or nil.
func (r *parseRun) claimant(keyword string) Extension {
	for _, ext := range r.exts {
		for _, kw := range ext.Keywords() {
			if strings.EqualFold(kw, keyword) {
				return ext
			}
		}
	}
	return nil
}
