package site

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/socratesone/knowledge-navigator/internal/config"
	"github.com/socratesone/knowledge-navigator/internal/navigation"
	"github.com/socratesone/knowledge-navigator/internal/progress"
	"github.com/socratesone/knowledge-navigator/internal/store"
)

// Generator writes the knowledge base out as a static HTML site.
type Generator struct {
	Config   *config.Config
	Store    *store.Store
	Reporter progress.Reporter
}

// NewGenerator creates a Generator for the given configuration. st may
// be nil to build without a render cache.
func NewGenerator(cfg *config.Config, st *store.Store) *Generator {
	return &Generator{
		Config:   cfg,
		Store:    st,
		Reporter: progress.NewReporter(),
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title     string
	SiteTitle string
	Theme     string
	Slug      string
	Content   template.HTML
	Sidebar   template.HTML
	TOC       template.HTML
}

// Generate builds the full static site. The returned library is the one
// the pages were rendered from, so callers serving the same content can
// reuse it instead of loading again.
func (g *Generator) Generate(ctx context.Context) (*Library, error) {
	lib, err := Load(ctx, g.Config, g.Store)
	if err != nil {
		return nil, err
	}
	if len(lib.Topics) == 0 {
		return nil, fmt.Errorf("no topics found under %s", g.Config.ContentDir)
	}

	outDir := g.Config.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	// Static assets and the client-side search index.
	if err := os.WriteFile(filepath.Join(outDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return nil, err
	}
	if err := WriteSearchIndex(SearchTopics(lib), filepath.Join(outDir, "search-index.json")); err != nil {
		return nil, fmt.Errorf("writing search index: %w", err)
	}

	manifestJSON, err := json.MarshalIndent(lib.Manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "manifest.json"), manifestJSON, 0o644); err != nil {
		return nil, err
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	tree := navigation.NewTree(lib.Manifest)

	if g.Reporter != nil {
		g.Reporter.Start(len(lib.Topics))
	}
	for i, topic := range lib.Topics {
		if g.Reporter != nil {
			g.Reporter.Update(i+1, topic.Slug)
		}
		if err := g.writePage(tmpl, tree, topic); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", topic.Slug, err)
		}
	}
	if g.Reporter != nil {
		g.Reporter.Finish()
	}

	if err := g.writeHome(tmpl, tree, lib); err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}

	return lib, nil
}

// writePage renders a single topic page.
func (g *Generator) writePage(tmpl *template.Template, tree *navigation.Tree, topic *Topic) error {
	data := pageData{
		Title:     topic.Title,
		SiteTitle: g.Config.Title,
		Theme:     string(g.Config.Theme),
		Slug:      topic.Slug,
		Content:   template.HTML(topic.HTML),
		Sidebar:   template.HTML(SidebarHTML(tree, topic.Slug)),
		TOC:       template.HTML(TOCHTML(topic.TOC)),
	}

	f, err := os.Create(filepath.Join(g.Config.OutputDir, topic.Slug+".html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// writeHome renders index.html: the site title plus the category
// overview, with no topic selected.
func (g *Generator) writeHome(tmpl *template.Template, tree *navigation.Tree, lib *Library) error {
	var b template.HTML
	b = template.HTML(fmt.Sprintf(
		`<h1>%s</h1><p class="home-intro">%d topics. Pick one from the sidebar or search above.</p>`,
		template.HTMLEscapeString(g.Config.Title), len(lib.Topics)))

	data := pageData{
		Title:     g.Config.Title,
		SiteTitle: g.Config.Title,
		Theme:     string(g.Config.Theme),
		Content:   b,
		Sidebar:   template.HTML(SidebarHTML(tree, "")),
	}

	f, err := os.Create(filepath.Join(g.Config.OutputDir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}
