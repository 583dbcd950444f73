package intenttext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// alertExtension rewrites x-alert lines into note blocks
type alertExtension struct {
	BaseExtension
}

func (alertExtension) Keywords() []string { return []string{"x-alert"} }

func (alertExtension) ConstructBlock(ctx BlockContext, tokenize TokenizeFunc) (*Block, BlockAction) {
	text, runs := tokenize(ctx.Content)
	return &Block{
		Kind:       KindNote,
		Text:       text,
		SourceText: ctx.SourceText,
		Runs:       runs,
		Properties: ctx.Properties,
	}, ActionReplace
}

// suppressExtension swallows every line with its keyword
type suppressExtension struct {
	BaseExtension
	keyword string
}

func (e suppressExtension) Keywords() []string { return []string{e.keyword} }

func (suppressExtension) ConstructBlock(BlockContext, TokenizeFunc) (*Block, BlockAction) {
	return nil, ActionSuppress
}

// shoutExtension upper-cases inline content instead of tokenizing it
type shoutExtension struct {
	BaseExtension
}

func (shoutExtension) TokenizeInline(text string, fallback TokenizeFunc) (string, []Run, bool) {
	upper := strings.ToUpper(text)
	return upper, []Run{{Kind: RunPlain, Value: upper}}, true
}

// decliningExtension declines everything it is offered
type decliningExtension struct {
	BaseExtension
	keyword string
}

func (e decliningExtension) Keywords() []string { return []string{e.keyword} }

// requireTitleExtension reports a missing title block
type requireTitleExtension struct {
	BaseExtension
}

func (requireTitleExtension) Validate(doc *Document) []Diagnostic {
	for _, b := range doc.Blocks {
		if b.Kind == KindTitle {
			return nil
		}
	}
	return []Diagnostic{{Message: "document has no title", Line: 1, Column: 1}}
}

func TestExtensionBlockOverride(t *testing.T) {
	doc := parse(t, "x-alert: hello | level: high", alertExtension{})

	require.Len(t, doc.Blocks, 1)
	blk := doc.Blocks[0]
	require.Equal(t, KindNote, blk.Kind)
	require.Equal(t, "hello", blk.Text)
	require.Equal(t, map[string]any{"level": "high"}, blk.Properties)
	require.NotZero(t, blk.ID)
	require.Equal(t, 1, blk.Line)

	// the keyword is recognized, so no unknown-extension warning
	require.Empty(t, doc.Diagnostics)
}

func TestExtensionSuppress(t *testing.T) {
	doc := parse(t, "secret: hidden\nnote: visible", suppressExtension{keyword: "secret"})

	require.Len(t, doc.Blocks, 1)
	require.Equal(t, KindNote, doc.Blocks[0].Kind)
	require.Empty(t, doc.Diagnostics)
}

func TestExtensionDeclineFallsThroughToDefault(t *testing.T) {
	// a declined reserved keyword keeps its default block
	doc := parse(t, "note: kept", decliningExtension{keyword: "note"})

	require.Len(t, doc.Blocks, 1)
	require.Equal(t, KindNote, doc.Blocks[0].Kind)
	require.Equal(t, "kept", doc.Blocks[0].Text)
}

func TestExtensionKeywordWithoutOverrideKeepsExtensionKind(t *testing.T) {
	// registering the keyword alone is enough to silence the warning
	doc := parse(t, "x-custom: payload", decliningExtension{keyword: "x-custom"})

	require.Len(t, doc.Blocks, 1)
	require.Equal(t, KindExtension, doc.Blocks[0].Kind)
	require.Equal(t, "payload", doc.Blocks[0].Text)
	require.Empty(t, doc.Diagnostics)
}

func TestFirstClaimingExtensionWins(t *testing.T) {
	doc := parse(t, "x-alert: hi",
		suppressExtension{keyword: "x-alert"},
		alertExtension{},
	)

	// the suppressor registered first, so the alert override never runs
	require.Empty(t, doc.Blocks)
}

func TestExtensionInlineOverride(t *testing.T) {
	doc := parse(t, "note: *quiet* words", shoutExtension{})

	require.Len(t, doc.Blocks, 1)
	blk := doc.Blocks[0]
	require.Equal(t, "*QUIET* WORDS", blk.Text)
	require.Equal(t, []Run{{Kind: RunPlain, Value: "*QUIET* WORDS"}}, blk.Runs)
}

func TestExtensionValidator(t *testing.T) {
	doc := parse(t, "note: no title here", requireTitleExtension{})

	require.Len(t, doc.Diagnostics, 1)
	d := doc.Diagnostics[0]
	require.Equal(t, CodeExtensionValidation, d.Code)
	require.Equal(t, SeverityWarning, d.Severity)
	require.Equal(t, "document has no title", d.Message)
}

func TestExtensionValidatorSeesFullTree(t *testing.T) {
	doc := parse(t, "title: present\nsection: S\ntask: T", requireTitleExtension{})
	require.Empty(t, doc.Diagnostics)
}
