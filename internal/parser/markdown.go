package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. The whole file is
// one page; each heading, paragraph line and list item is a line.
type MarkdownParser struct{}

func (p *MarkdownParser) Extract(r io.Reader, filename string) ([]doctree.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var lines []string
	var walk func(n ast.Node, bullet string)
	walk = func(n ast.Node, bullet string) {
		switch node := n.(type) {
		case *ast.Heading:
			if t := strings.TrimSpace(inlineText(node, src)); t != "" {
				lines = append(lines, t)
			}
			return
		case *ast.Paragraph, *ast.TextBlock:
			for i, l := range strings.Split(inlineText(node, src), "\n") {
				l = strings.TrimSpace(l)
				if l == "" {
					continue
				}
				if i == 0 {
					l = bullet + l
				}
				lines = append(lines, l)
			}
			return
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				lines = append(lines, strings.TrimRight(string(seg.Value(src)), "\r\n"))
			}
			return
		case *ast.ThematicBreak:
			return
		case *ast.ListItem:
			bullet = "- "
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c, bullet)
			// only the first block of a list item carries the bullet
			if _, ok := n.(*ast.ListItem); ok {
				bullet = ""
			}
		}
	}
	walk(doc, "")

	return singlePage(lines), nil
}

// inlineText flattens the inline children of a block, keeping line breaks.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.Label(src))
			default:
				collect(c)
			}
		}
	}
	collect(n)
	return buf.String()
}
