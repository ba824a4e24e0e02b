package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/socratesone/knowledge-navigator/internal/navigation"
	"github.com/socratesone/knowledge-navigator/internal/toc"
)

// SidebarHTML renders the navigation tree as nested <ul><li> HTML for
// the static site sidebar. activeSlug marks the current topic; its
// ancestor categories render expanded.
func SidebarHTML(tree *navigation.Tree, activeSlug string) string {
	expanded := make(map[string]bool)
	if node := tree.TopicBySlug(activeSlug); node != nil {
		for p := node.Parent(); p != nil; p = p.Parent() {
			expanded[p.ID] = true
		}
	}

	var b strings.Builder
	b.WriteString(`<nav class="topic-tree">` + "\n")
	renderNodes(&b, tree.Roots(), activeSlug, expanded)
	b.WriteString("</nav>\n")
	return b.String()
}

func renderNodes(b *strings.Builder, nodes []*navigation.Node, activeSlug string, expanded map[string]bool) {
	if len(nodes) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, node := range nodes {
		if node.IsCategory() {
			state := "collapsed"
			if expanded[node.ID] {
				state = "expanded"
			}
			fmt.Fprintf(b, `<li class="category %s" data-id="%s"><span class="category-toggle">%s</span>`+"\n",
				state, html.EscapeString(node.ID), html.EscapeString(node.Title))
			renderNodes(b, node.Children, activeSlug, expanded)
			b.WriteString("</li>\n")
			continue
		}

		active := ""
		if node.Slug == activeSlug {
			active = ` class="active"`
		}
		tier := ""
		if node.Level != "" {
			tier = fmt.Sprintf(` <span class="tier tier-%s">%s</span>`, node.Level, node.Level)
		}
		fmt.Fprintf(b, `<li class="topic" data-id="%s"><a href="%s.html"%s>%s</a>%s</li>`+"\n",
			html.EscapeString(node.ID), html.EscapeString(node.Slug), active, html.EscapeString(node.Title), tier)
	}
	b.WriteString("</ul>\n")
}

// TOCHTML renders a topic's table of contents as nested lists for the
// right-hand panel.
func TOCHTML(sections []*toc.Section) string {
	var b strings.Builder
	renderSections(&b, sections)
	return b.String()
}

func renderSections(b *strings.Builder, sections []*toc.Section) {
	if len(sections) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, s := range sections {
		fmt.Fprintf(b, `<li><a href="#%s">%s</a>`+"\n", html.EscapeString(s.ID), html.EscapeString(s.Title))
		renderSections(b, s.Children)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
