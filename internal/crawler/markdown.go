package crawler

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ExtractMarkdown returns the title and plain text of a markdown document.
// The title is the first level-1 heading, else the first level-2 heading,
// else "Untitled".
func ExtractMarkdown(body []byte) (title, content string) {
	doc := markdown.Parser().Parse(text.NewReader(body))

	var h1, h2 string
	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := nodeText(node, body)
			if node.Level == 1 && h1 == "" {
				h1 = heading
			} else if node.Level == 2 && h2 == "" {
				h2 = heading
			}
		case *ast.Text:
			b.Write(node.Segment.Value(body))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(body))
				b.WriteByte(' ')
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			b.Write(node.URL(body))
		}
		return ast.WalkContinue, nil
	})

	switch {
	case h1 != "":
		title = h1
	case h2 != "":
		title = h2
	default:
		title = untitled
	}
	return title, collapse(b.String())
}

// nodeText concatenates the inline text under n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return collapse(b.String())
}
