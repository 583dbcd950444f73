package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Converter rewrites a markdown document as IntentText source, for
// migrating existing notes into the dialect. Headings become title/
// section/sub lines, fenced code becomes a code capture, list items become
// dash lines, blockquotes become notes.
type Converter struct {
	gm goldmark.Markdown
}

func NewConverter() *Converter {
	return &Converter{
		gm: goldmark.New(),
	}
}

// Convert reads markdown from r and returns equivalent IntentText source
func (c *Converter) Convert(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	root := c.gm.Parser().Parse(text.NewReader(content))

	var b strings.Builder
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := escapeContent(nodeText(node, content))
			switch {
			case node.Level == 1 && b.Len() == 0:
				fmt.Fprintf(&b, "title: %s\n", heading)
			case node.Level <= 2:
				fmt.Fprintf(&b, "section: %s\n", heading)
			default:
				fmt.Fprintf(&b, "sub: %s\n", heading)
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			b.WriteString("code:\n")
			for i := 0; i < node.Lines().Len(); i++ {
				line := node.Lines().At(i)
				b.Write(line.Value(content))
			}
			b.WriteString("end:\n")
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			b.WriteString("divider:\n")

		case *ast.Blockquote:
			fmt.Fprintf(&b, "note: %s\n", escapeContent(nodeText(node, content)))
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			// Emit the item's own text; nested lists are visited and
			// flattened to the same level.
			if first := node.FirstChild(); first != nil {
				fmt.Fprintf(&b, "- %s\n", escapeContent(nodeText(first, content)))
			}
			return ast.WalkContinue, nil

		case *ast.Paragraph:
			if _, inItem := node.Parent().(*ast.ListItem); inItem {
				return ast.WalkSkipChildren, nil
			}
			for i := 0; i < node.Lines().Len(); i++ {
				line := node.Lines().At(i)
				value := strings.TrimRight(string(line.Value(content)), "\n")
				fmt.Fprintf(&b, "%s\n", escapeContent(value))
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walking markdown ast: %w", err)
	}

	return b.String(), nil
}

// nodeText collects the raw text under a node, formatting stripped
func nodeText(n ast.Node, content []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(content))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// escapeContent protects markdown text embedded in an IntentText line:
// backslashes and pipes would otherwise be taken as escapes or metadata
// delimiters.
func escapeContent(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}
