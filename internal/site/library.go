// Package site assembles the viewable knowledge base: it pairs the
// navigation manifest with the markdown articles on disk, runs each
// article through cleanup and rendering, and either writes the result
// out as a static site or hands it to the server for live serving.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/socratesone/knowledge-navigator/internal/anchor"
	"github.com/socratesone/knowledge-navigator/internal/config"
	"github.com/socratesone/knowledge-navigator/internal/content"
	"github.com/socratesone/knowledge-navigator/internal/navigation"
	"github.com/socratesone/knowledge-navigator/internal/store"
	"github.com/socratesone/knowledge-navigator/internal/toc"
	"github.com/socratesone/knowledge-navigator/internal/walker"
)

// Topic is one fully prepared article: cleaned markdown, rendered HTML,
// and its table of contents.
type Topic struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Summary     string         `json:"summary,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Tier        string         `json:"tier,omitempty"`
	Markdown    string         `json:"-"`
	HTML        string         `json:"html,omitempty"`
	TOC         []*toc.Section `json:"toc,omitempty"`
	ContentHash string         `json:"-"`
}

// Library is the in-memory knowledge base: the navigation manifest plus
// every topic that could be paired with an article on disk.
type Library struct {
	Manifest *navigation.Manifest
	Topics   []*Topic

	bySlug map[string]*Topic
	byID   map[string]*Topic
}

// Topic returns the prepared topic for a manifest slug, or nil.
func (l *Library) Topic(slug string) *Topic { return l.bySlug[slug] }

// TopicByID returns the prepared topic for a manifest node id, or nil.
func (l *Library) TopicByID(id string) *Topic { return l.byID[id] }

// Load reads the manifest and content directory from cfg and prepares
// every topic. When st is non-nil, sanitize+render results are cached
// there keyed by content hash; unchanged articles skip the pipeline.
func Load(ctx context.Context, cfg *config.Config, st *store.Store) (*Library, error) {
	manifest, err := navigation.LoadManifest(cfg.ManifestFile())
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}

	articles, err := walker.Walk(walker.Config{
		RootDir:     cfg.ContentDir,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		MaxFileSize: cfg.MaxFileSize,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning content: %w", err)
	}

	bySlug := make(map[string]walker.ArticleInfo, len(articles))
	for _, a := range articles {
		bySlug[a.Slug] = a
	}

	lib := &Library{
		Manifest: manifest,
		bySlug:   make(map[string]*Topic),
		byID:     make(map[string]*Topic),
	}

	opts := cfg.Cleanup.Options()
	optionsHash := hashOptions(opts)
	r := newRenderer()

	tree := navigation.NewTree(manifest)
	for _, node := range tree.Topics() {
		article, ok := bySlug[node.Slug]
		if !ok {
			log.Printf("site: topic %q has no article %s.md, skipping", node.ID, node.Slug)
			continue
		}

		topic, err := prepareTopic(ctx, r, node, article, opts, optionsHash, st)
		if err != nil {
			return nil, fmt.Errorf("preparing topic %q: %w", node.Slug, err)
		}

		lib.Topics = append(lib.Topics, topic)
		lib.bySlug[topic.Slug] = topic
		lib.byID[topic.ID] = topic
	}

	sort.SliceStable(lib.Topics, func(i, j int) bool {
		return lib.Topics[i].Slug < lib.Topics[j].Slug
	})

	return lib, nil
}

// prepareTopic runs one article through the cleanup and render
// pipeline, consulting the render cache when available.
func prepareTopic(ctx context.Context, r *renderer, node *navigation.Node, article walker.ArticleInfo, opts *content.CleanupOptions, optionsHash string, st *store.Store) (*Topic, error) {
	raw, err := os.ReadFile(article.Path)
	if err != nil {
		return nil, content.NewError(content.ErrorNotFound, article.Path, err)
	}

	fm, body, err := content.ParseFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	topic := &Topic{
		ID:          node.ID,
		Slug:        node.Slug,
		Title:       node.Title,
		Summary:     node.Summary,
		Tags:        node.Tags,
		Tier:        string(node.Level),
		ContentHash: article.ContentHash,
	}
	if fm.Title != "" {
		topic.Title = fm.Title
	}
	if fm.Summary != "" {
		topic.Summary = fm.Summary
	}
	if len(fm.Tags) > 0 {
		topic.Tags = mergeTags(topic.Tags, fm.Tags)
	}

	cleaned := content.Sanitize(string(body), opts)
	topic.Markdown = cleaned

	if st != nil {
		cached, err := st.Render(ctx, node.ID, article.ContentHash, optionsHash)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			topic.HTML = cached.HTML
			if err := json.Unmarshal([]byte(cached.TOCJSON), &topic.TOC); err == nil {
				return topic, nil
			}
			// Unreadable cache entry; fall through and re-render.
		}
	}

	topic.HTML, topic.TOC, err = r.Render(cleaned)
	if err != nil {
		return nil, content.NewError(content.ErrorParse, article.Path, err)
	}

	if st != nil {
		tocJSON, err := json.Marshal(topic.TOC)
		if err != nil {
			return nil, fmt.Errorf("encoding toc: %w", err)
		}
		if err := st.PutRender(ctx, &store.CachedRender{
			TopicID:     node.ID,
			ContentHash: article.ContentHash,
			OptionsHash: optionsHash,
			HTML:        topic.HTML,
			TOCJSON:     string(tocJSON),
		}); err != nil {
			return nil, err
		}
	}

	return topic, nil
}

// renderer wraps goldmark configured for topic articles.
type renderer struct {
	md goldmark.Markdown
}

func newRenderer() *renderer {
	return &renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts cleaned markdown to HTML and extracts its table of
// contents. Heading ids in the HTML match the TOC section ids.
func (r *renderer) Render(markdown string) (string, []*toc.Section, error) {
	source := []byte(markdown)

	ids := &anchorIDs{existing: make(map[string]struct{})}
	pctx := parser.NewContext(parser.WithIDs(ids))

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf, parser.WithContext(pctx)); err != nil {
		return "", nil, fmt.Errorf("converting markdown: %w", err)
	}

	sections := toc.FromMarkdown(source, anchor.Options{})
	return buf.String(), sections, nil
}

// anchorIDs plugs the anchor generator into goldmark so rendered
// heading ids agree with the TOC builder.
type anchorIDs struct {
	existing map[string]struct{}
}

func (a *anchorIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	return []byte(anchor.GenerateUnique(string(value), a.existing, anchor.Options{}))
}

func (a *anchorIDs) Put(value []byte) {
	a.existing[string(value)] = struct{}{}
}

// hashOptions derives a stable cache key component from the cleanup
// option set.
func hashOptions(opts *content.CleanupOptions) string {
	return walker.HashContent([]byte(fmt.Sprintf("%+v", *opts)))
}

// mergeTags combines manifest and frontmatter tags, dropping duplicates
// while keeping first-seen order.
func mergeTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, t := range append(append([]string{}, a...), b...) {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
