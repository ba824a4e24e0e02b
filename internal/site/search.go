package site

import (
	"encoding/json"
	"os"

	"github.com/socratesone/knowledge-navigator/internal/search"
)

// maxIndexedContent caps how much article text each search index entry
// carries.
const maxIndexedContent = 2000

// SearchTopics converts the library's topics into the search engine's
// input form. The cleaned markdown, not the rendered HTML, is indexed.
func SearchTopics(lib *Library) []search.Topic {
	topics := make([]search.Topic, 0, len(lib.Topics))
	for _, t := range lib.Topics {
		content := t.Markdown
		if len(content) > maxIndexedContent {
			content = content[:maxIndexedContent]
		}
		topics = append(topics, search.Topic{
			ID:      t.ID,
			Title:   t.Title,
			Slug:    t.Slug,
			Tags:    t.Tags,
			Summary: t.Summary,
			Content: content,
		})
	}
	return topics
}

// WriteSearchIndex writes the search index as JSON to the given path
// for the static site's client-side search.
func WriteSearchIndex(topics []search.Topic, outputPath string) error {
	data, err := json.MarshalIndent(topics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
