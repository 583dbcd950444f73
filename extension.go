package intenttext

// BlockAction is an extension's verdict on a keyword block it was offered
type BlockAction int

const (
	// ActionDecline lets the default block (or the next extension) stand
	ActionDecline BlockAction = iota
	// ActionReplace substitutes the extension's block for the default one
	ActionReplace
	// ActionSuppress drops the block entirely; the line produces nothing
	ActionSuppress
)

// BlockContext is the read-only view of a keyword line handed to an
// extension's ConstructBlock.
type BlockContext struct {
	// Lower-cased keyword that matched
	Keyword string
	// Escape-resolved content segment, before inline-mark removal
	Content string
	// Content segment exactly as written
	SourceText string
	// Parsed pipe metadata, nil when none was supplied
	Properties map[string]any
	// 1-based position of the line in the source
	Line   int
	Column int
}

// Extension extends the recognized keyword set and/or overrides block
// construction, inline tokenization, and post-parse validation for a
// single parse call. Implementations must not retain or mutate parser
// state; they receive read-only context and return values.
//
// Embed BaseExtension to implement only the hooks you need.
type Extension interface {
	// Keywords returns the extra keywords this extension recognizes,
	// lower-case. They join the reserved set for the current parse call.
	Keywords() []string

	// ConstructBlock may replace or suppress the block built for a
	// keyword this extension claims. The first registered extension
	// claiming the keyword decides; later ones are not consulted.
	// tokenize is the active inline tokenizer, for building runs.
	ConstructBlock(ctx BlockContext, tokenize TokenizeFunc) (*Block, BlockAction)

	// TokenizeInline may take over inline tokenization for a text span.
	// Returning ok=false declines, falling through to the next extension
	// and finally the default tokenizer, available as fallback.
	TokenizeInline(text string, fallback TokenizeFunc) (content string, runs []Run, ok bool)

	// Validate inspects the finished document and contributes extra
	// diagnostics. All of them are reported under EXTENSION_VALIDATION.
	Validate(doc *Document) []Diagnostic
}

// BaseExtension is a no-op Extension for embedding
type BaseExtension struct{}

func (BaseExtension) Keywords() []string { return nil }

func (BaseExtension) ConstructBlock(BlockContext, TokenizeFunc) (*Block, BlockAction) {
	return nil, ActionDecline
}

func (BaseExtension) TokenizeInline(string, TokenizeFunc) (string, []Run, bool) {
	return "", nil, false
}

func (BaseExtension) Validate(*Document) []Diagnostic { return nil }
