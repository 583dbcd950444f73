package intenttext

// BlockKind identifies the semantic role of a parsed block.
// Every block carries exactly one kind.
type BlockKind string

const (
	KindTitle     BlockKind = "title"
	KindSummary   BlockKind = "summary"
	KindSection   BlockKind = "section"
	KindSub       BlockKind = "sub"
	KindDivider   BlockKind = "divider"
	KindNote      BlockKind = "note"
	KindTask      BlockKind = "task"
	KindDone      BlockKind = "done"
	KindQuestion  BlockKind = "question"
	KindImage     BlockKind = "image"
	KindLink      BlockKind = "link"
	KindReference BlockKind = "reference"
	KindCode      BlockKind = "code"
	KindTable     BlockKind = "table"
	KindListItem  BlockKind = "list-item"
	KindStepItem  BlockKind = "step-item"
	KindBodyText  BlockKind = "body-text"
	KindExtension BlockKind = "extension"

	// Draft kinds produced by the line classifier and consumed by the
	// assembler. They never appear in a returned Document.
	kindHeaders BlockKind = "headers"
	kindRow     BlockKind = "row"
	kindEnd     BlockKind = "end"
)

// Block is one parsed unit of document structure
type Block struct {
	// Unique within the parse call, assigned at creation, never reused
	ID int
	// The semantic role of the block
	Kind BlockKind
	// Primary content after escape resolution and inline-mark removal
	Text string
	// The original content as written, before escape resolution and
	// inline processing. Retained for legacy rendering paths.
	SourceText string
	// Ordered inline runs; concatenating run values reproduces Text exactly
	Runs []Run
	// Pipe metadata. Values are string, int64 or float64. Nil when the
	// source line carried no metadata.
	Properties map[string]any
	// Owned child blocks. Only section-like blocks have children.
	Children []*Block
	// Present iff Kind == KindTable
	Table *TablePayload
	// 1-based source line the block started on
	Line int
}

// TablePayload holds the collapsed headers/rows of a table block
type TablePayload struct {
	// Optional header cells. Nil for tables synthesized from an orphan row.
	Headers []string
	Rows    [][]string
}

// Severity of a diagnostic
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DiagnosticCode is one of the closed set of reason codes
type DiagnosticCode string

const (
	CodeUnterminatedCodeBlock  DiagnosticCode = "UNTERMINATED_CODE_BLOCK"
	CodeUnexpectedEnd          DiagnosticCode = "UNEXPECTED_END"
	CodeInvalidPropertySegment DiagnosticCode = "INVALID_PROPERTY_SEGMENT"
	CodeHeadersWithoutRows     DiagnosticCode = "HEADERS_WITHOUT_ROWS"
	CodeRowWithoutHeaders      DiagnosticCode = "ROW_WITHOUT_HEADERS"
	CodeUnknownExtKeyword      DiagnosticCode = "UNKNOWN_EXTENSION_KEYWORD"
	CodeExtensionValidation    DiagnosticCode = "EXTENSION_VALIDATION"
)

// Diagnostic is a non-fatal structured note about a parsing anomaly.
// Diagnostics never halt parsing; they accumulate alongside the block tree.
type Diagnostic struct {
	Severity Severity
	Code     DiagnosticCode
	Message  string
	// 1-based source line and column
	Line   int
	Column int
}

// Direction is the derived text direction of a document
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Metadata summarizes a parsed document
type Metadata struct {
	// Text of the first title block, if any
	Title string
	// Text of the first summary block, if any
	Summary   string
	Direction Direction
}

// Document is the result of one parse call: the block tree, the derived
// metadata, and every diagnostic raised along the way. It is immutable
// after return and owned exclusively by the caller.
type Document struct {
	Blocks      []*Block
	Metadata    Metadata
	Diagnostics []Diagnostic
}

// Walk visits every block in the document depth-first, parents before
// children, in source order.
func (d *Document) Walk(visit func(b *Block)) {
	var walk func(bs []*Block)
	walk = func(bs []*Block) {
		for _, b := range bs {
			visit(b)
			walk(b.Children)
		}
	}
	walk(d.Blocks)
}
