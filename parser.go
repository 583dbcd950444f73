package intenttext

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Parser turns IntentText source into a Document. A Parser is stateless
// and safe for concurrent use; all working state lives in the parse call.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads UTF-8 IntentText from r and parses it. Extensions apply to
// this call only. The returned error is non-nil only when reading fails;
// malformed content never fails, it degrades to diagnostics on the
// returned Document.
func (p *Parser) Parse(r io.Reader, exts ...Extension) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseString(string(content), exts...), nil
}

// ParseString parses src. It always returns a Document: the parser has no
// fatal failure mode for well-formed UTF-8 input.
func (p *Parser) ParseString(src string, exts ...Extension) *Document {
	run := &parseRun{
		exts: exts,
		doc:  &Document{},
	}

	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lineNo := i + 1
		if run.capture {
			if strings.EqualFold(strings.TrimSpace(line), "end:") {
				run.closeCapture()
			} else {
				run.captureBuf = append(run.captureBuf, line)
			}
			continue
		}
		run.handleLine(line, lineNo)
	}

	if run.capture {
		run.diag(SeverityError, CodeUnterminatedCodeBlock, run.captureLine, 1,
			"code block opened on line %d is never closed with end:", run.captureLine)
		run.closeCapture()
	}
	run.flushTable()
	run.deriveMetadata()

	for _, ext := range run.exts {
		for _, d := range ext.Validate(run.doc) {
			d.Code = CodeExtensionValidation
			if d.Severity == "" {
				d.Severity = SeverityWarning
			}
			run.doc.Diagnostics = append(run.doc.Diagnostics, d)
		}
	}

	slog.Debug("parsed document",
		"blocks", len(run.doc.Blocks),
		"diagnostics", len(run.doc.Diagnostics),
		"direction", run.doc.Metadata.Direction)

	return run.doc
}

// parseRun is the per-call assembler state: the section scope, the code
// capture buffer, the pending table, and the diagnostics sink. It is
// created fresh for every parse and discarded on return.
type parseRun struct {
	exts   []Extension
	doc    *Document
	nextID int

	// Innermost open container (a section or a sub), nil at top level
	section *Block
	// The open top-level section owning subs, nil when none
	topSection *Block

	capture     bool
	captureBuf  []string
	captureLine int

	pending *pendingTable
}

// pendingTable accumulates a headers line and its contiguous row lines
// until a non-row line collapses them into one table block.
type pendingTable struct {
	headers []string
	rows    [][]string
	line    int
}

func (r *parseRun) handleLine(line string, lineNo int) {
	draft := r.classifyLine(line, lineNo, 0)

	// Any non-row line, blank and suppressed included, closes a table.
	if draft == nil || draft.Kind != kindRow {
		r.flushTable()
	}
	if draft == nil {
		return
	}

	switch draft.Kind {
	case kindHeaders:
		r.pending = &pendingTable{headers: splitTableRow(draft.SourceText), line: lineNo}

	case kindRow:
		cells := splitTableRow(draft.SourceText)
		if r.pending != nil {
			r.pending.rows = append(r.pending.rows, cells)
			return
		}
		r.warnf(CodeRowWithoutHeaders, lineNo, 1, "row: has no preceding headers:")
		tbl := r.newBlock(KindTable, lineNo)
		tbl.Table = &TablePayload{Rows: [][]string{cells}}
		r.attach(tbl)

	case kindEnd:
		r.warnf(CodeUnexpectedEnd, lineNo, 1, "end: outside of a code block")

	case KindCode:
		if strings.TrimSpace(draft.SourceText) == "" && draft.Properties == nil {
			r.capture = true
			r.captureBuf = r.captureBuf[:0]
			r.captureLine = lineNo
			return
		}
		r.attach(draft)

	case KindSection:
		r.doc.Blocks = append(r.doc.Blocks, draft)
		r.topSection = draft
		r.section = draft

	case KindSub:
		if r.topSection != nil {
			r.topSection.Children = append(r.topSection.Children, draft)
		} else {
			r.doc.Blocks = append(r.doc.Blocks, draft)
		}
		r.section = draft

	case KindTitle, KindSummary:
		// Title and summary never reset section scope.
		r.doc.Blocks = append(r.doc.Blocks, draft)

	case KindListItem, KindStepItem, KindTask, KindDone, KindQuestion, KindNote:
		r.attach(draft)

	default:
		r.doc.Blocks = append(r.doc.Blocks, draft)
		r.section = nil
		r.topSection = nil
	}
}

// attach adds a block to the innermost open section, or top level.
func (r *parseRun) attach(blk *Block) {
	if r.section != nil {
		r.section.Children = append(r.section.Children, blk)
		return
	}
	r.doc.Blocks = append(r.doc.Blocks, blk)
}

func (r *parseRun) closeCapture() {
	blk := r.newBlock(KindCode, r.captureLine)
	blk.Text = strings.Join(r.captureBuf, "\n")
	blk.SourceText = blk.Text
	r.capture = false
	r.captureBuf = nil
	r.attach(blk)
}

func (r *parseRun) flushTable() {
	if r.pending == nil {
		return
	}
	t := r.pending
	r.pending = nil
	if len(t.rows) == 0 {
		r.warnf(CodeHeadersWithoutRows, t.line, 1, "headers: with no following row: lines")
	}
	blk := r.newBlock(KindTable, t.line)
	blk.Table = &TablePayload{Headers: t.headers, Rows: t.rows}
	r.attach(blk)
}

func (r *parseRun) deriveMetadata() {
	md := Metadata{Direction: DirectionLTR}
	haveTitle, haveSummary := false, false
	for _, b := range r.doc.Blocks {
		switch {
		case !haveTitle && b.Kind == KindTitle:
			md.Title = b.Text
			haveTitle = true
		case !haveSummary && b.Kind == KindSummary:
			md.Summary = b.Text
			haveSummary = true
		}
	}
	r.doc.Walk(func(b *Block) {
		if md.Direction != DirectionRTL && blockHasArabic(b) {
			md.Direction = DirectionRTL
		}
	})
	r.doc.Metadata = md
}

func blockHasArabic(b *Block) bool {
	if containsArabic(b.Text) {
		return true
	}
	if b.Table == nil {
		return false
	}
	for _, cell := range b.Table.Headers {
		if containsArabic(cell) {
			return true
		}
	}
	for _, row := range b.Table.Rows {
		for _, cell := range row {
			if containsArabic(cell) {
				return true
			}
		}
	}
	return false
}

// containsArabic reports whether s contains a rune in the Arabic Unicode
// block (U+0600..U+06FF).
func containsArabic(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

func (r *parseRun) newBlock(kind BlockKind, lineNo int) *Block {
	r.nextID++
	return &Block{ID: r.nextID, Kind: kind, Line: lineNo}
}

// tokenize runs the extension inline-tokenizer chain, falling back to the
// default tokenizer when every extension declines.
func (r *parseRun) tokenize(text string) (string, []Run) {
	for _, ext := range r.exts {
		if content, runs, ok := ext.TokenizeInline(text, TokenizeInline); ok {
			return content, runs
		}
	}
	return TokenizeInline(text)
}

func (r *parseRun) warnf(code DiagnosticCode, line, col int, format string, args ...any) {
	r.diag(SeverityWarning, code, line, col, format, args...)
}

func (r *parseRun) diag(sev Severity, code DiagnosticCode, line, col int, format string, args ...any) {
	r.doc.Diagnostics = append(r.doc.Diagnostics, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}
