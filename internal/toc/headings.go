package toc

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a markdown heading in document order.
type Heading struct {
	Text  string
	Level int // 1..6
	// Position is the byte offset of the heading text within the source.
	Position int
}

// ExtractHeadings parses markdown and returns all headings in document
// order. Inline formatting inside the heading is flattened to plain text.
func ExtractHeadings(markdown []byte) []Heading {
	reader := text.NewReader(markdown)
	doc := goldmark.DefaultParser().Parse(reader)

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		position := -1
		collectHeadingText(&buf, heading, markdown, &position)
		if position < 0 {
			position = 0
		}

		headings = append(headings, Heading{
			Text:     buf.String(),
			Level:    heading.Level,
			Position: position,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// collectHeadingText flattens the heading's inline children into buf and
// records the offset of the first text segment.
func collectHeadingText(buf *bytes.Buffer, node ast.Node, source []byte, position *int) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			if *position < 0 {
				*position = c.Segment.Start
			}
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		default:
			collectHeadingText(buf, child, source, position)
		}
	}
}
