package intenttext

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Writer renders a parsed Document to HTML. It is a pure consumer of the
// block tree: diagnostics are left for the caller to surface.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Write renders doc to out as a single <article> element carrying the
// derived text direction.
func (w *Writer) Write(doc *Document, out io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<article dir=\"%s\">\n", doc.Metadata.Direction)
	w.writeBlocks(&b, doc.Blocks, 1)
	b.WriteString("</article>\n")

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}

// writeBlocks renders a block sequence, grouping consecutive list items
// into one <ul> and consecutive step items into one <ol>.
func (w *Writer) writeBlocks(b *strings.Builder, blocks []*Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := 0; i < len(blocks); i++ {
		blk := blocks[i]
		if blk.Kind == KindListItem || blk.Kind == KindStepItem {
			tag := "ul"
			if blk.Kind == KindStepItem {
				tag = "ol"
			}
			j := i
			for j < len(blocks) && blocks[j].Kind == blk.Kind {
				j++
			}
			fmt.Fprintf(b, "%s<%s>\n", indent, tag)
			for _, item := range blocks[i:j] {
				fmt.Fprintf(b, "%s  <li>%s</li>\n", indent, inlineHTML(item))
			}
			fmt.Fprintf(b, "%s</%s>\n", indent, tag)
			i = j - 1
			continue
		}
		w.writeBlock(b, blk, depth)
	}
}

func (w *Writer) writeBlock(b *strings.Builder, blk *Block, depth int) {
	indent := strings.Repeat("  ", depth)
	switch blk.Kind {
	case KindTitle:
		fmt.Fprintf(b, "%s<h1>%s</h1>\n", indent, inlineHTML(blk))
	case KindSummary:
		fmt.Fprintf(b, "%s<p class=\"summary\">%s</p>\n", indent, inlineHTML(blk))
	case KindSection:
		fmt.Fprintf(b, "%s<section>\n%s  <h2>%s</h2>\n", indent, indent, inlineHTML(blk))
		w.writeBlocks(b, blk.Children, depth+1)
		fmt.Fprintf(b, "%s</section>\n", indent)
	case KindSub:
		fmt.Fprintf(b, "%s<section class=\"sub\">\n%s  <h3>%s</h3>\n", indent, indent, inlineHTML(blk))
		w.writeBlocks(b, blk.Children, depth+1)
		fmt.Fprintf(b, "%s</section>\n", indent)
	case KindDivider:
		fmt.Fprintf(b, "%s<hr>\n", indent)
	case KindNote:
		fmt.Fprintf(b, "%s<aside class=\"note\">%s</aside>\n", indent, inlineHTML(blk))
	case KindTask:
		fmt.Fprintf(b, "%s<div class=\"task\"><input type=\"checkbox\" disabled> %s</div>\n", indent, inlineHTML(blk))
	case KindDone:
		fmt.Fprintf(b, "%s<div class=\"task\"><input type=\"checkbox\" checked disabled> %s</div>\n", indent, inlineHTML(blk))
	case KindQuestion:
		fmt.Fprintf(b, "%s<div class=\"question\">%s</div>\n", indent, inlineHTML(blk))
	case KindImage:
		fmt.Fprintf(b, "%s<img src=\"%s\" alt=\"%s\">\n", indent,
			html.EscapeString(blk.Text), html.EscapeString(stringProperty(blk, "alt")))
	case KindLink:
		fmt.Fprintf(b, "%s<p><a href=\"%s\">%s</a></p>\n", indent,
			html.EscapeString(blk.Text), html.EscapeString(linkLabel(blk)))
	case KindReference:
		fmt.Fprintf(b, "%s<p class=\"ref\">%s</p>\n", indent, inlineHTML(blk))
	case KindCode:
		fmt.Fprintf(b, "%s<pre><code>%s</code></pre>\n", indent, html.EscapeString(blk.Text))
	case KindTable:
		w.writeTable(b, blk, depth)
	case KindExtension:
		fmt.Fprintf(b, "%s<div class=\"extension\">%s</div>\n", indent, inlineHTML(blk))
	default:
		fmt.Fprintf(b, "%s<p>%s</p>\n", indent, inlineHTML(blk))
	}
}

func (w *Writer) writeTable(b *strings.Builder, blk *Block, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s<table>\n", indent)
	if blk.Table != nil {
		if len(blk.Table.Headers) > 0 {
			fmt.Fprintf(b, "%s  <thead><tr>", indent)
			for _, cell := range blk.Table.Headers {
				fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(cell))
			}
			b.WriteString("</tr></thead>\n")
		}
		if len(blk.Table.Rows) > 0 {
			fmt.Fprintf(b, "%s  <tbody>\n", indent)
			for _, row := range blk.Table.Rows {
				fmt.Fprintf(b, "%s    <tr>", indent)
				for _, cell := range row {
					fmt.Fprintf(b, "<td>%s</td>", html.EscapeString(cell))
				}
				b.WriteString("</tr>\n")
			}
			fmt.Fprintf(b, "%s  </tbody>\n", indent)
		}
	}
	fmt.Fprintf(b, "%s</table>\n", indent)
}

// inlineHTML renders a block's inline runs, falling back to its escaped
// text when no runs were produced.
func inlineHTML(blk *Block) string {
	if len(blk.Runs) == 0 {
		return html.EscapeString(blk.Text)
	}
	var sb strings.Builder
	for _, r := range blk.Runs {
		v := html.EscapeString(r.Value)
		switch r.Kind {
		case RunBold:
			sb.WriteString("<strong>" + v + "</strong>")
		case RunItalic:
			sb.WriteString("<em>" + v + "</em>")
		case RunStrike:
			sb.WriteString("<del>" + v + "</del>")
		case RunCode:
			sb.WriteString("<code>" + v + "</code>")
		case RunLink:
			fmt.Fprintf(&sb, "<a href=\"%s\">%s</a>", html.EscapeString(r.Target), v)
		default:
			sb.WriteString(v)
		}
	}
	return sb.String()
}

func stringProperty(blk *Block, key string) string {
	if v, ok := blk.Properties[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

func linkLabel(blk *Block) string {
	if label := stringProperty(blk, "label"); label != "" {
		return label
	}
	return blk.Text
}
