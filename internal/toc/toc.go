// Package toc builds a nested table of contents from markdown headings.
package toc

import (
	"github.com/socratesone/knowledge-navigator/internal/anchor"
)

// Section is one entry in the table of contents. Children all have a
// deeper heading level than their parent and appear after it in document
// order.
type Section struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Level         int        `json:"level"`
	StartPosition int        `json:"start_position"`
	Children      []*Section `json:"children,omitempty"`
}

// Build converts headings (in document order) into a forest of sections.
// Nesting mirrors the heading levels exactly, including skipped levels: an
// H3 directly under an H1 nests beneath it. Anchor IDs are generated with
// opts and deduplicated within the document.
func Build(headings []Heading, opts anchor.Options) []*Section {
	var (
		top   []*Section
		stack []*Section
		ids   = map[string]struct{}{}
	)

	for _, h := range headings {
		section := &Section{
			ID:            anchor.GenerateUnique(h.Text, ids, opts),
			Title:         h.Text,
			Level:         h.Level,
			StartPosition: h.Position,
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			top = append(top, section)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, section)
		}

		stack = append(stack, section)
	}

	return top
}

// FromMarkdown extracts headings from markdown and builds the TOC in one
// step.
func FromMarkdown(markdown []byte, opts anchor.Options) []*Section {
	return Build(ExtractHeadings(markdown), opts)
}
