package content

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// internalFrontmatterKeys are authoring-pipeline keys that never reach
// readers. Matching is case-insensitive.
var internalFrontmatterKeys = map[string]struct{}{
	"internal_id":    {},
	"reviewer":       {},
	"review_status":  {},
	"todo":           {},
	"draft_notes":    {},
	"ai_generated":   {},
	"prompt":         {},
	"constitutional": {},
}

// ParseFrontMatter extracts the typed frontmatter and the markdown body
// from a raw article. Articles without a frontmatter block return a zero
// FrontMatter and the full source as body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &fm)
	if err != nil {
		return FrontMatter{}, nil, NewError(ErrorParse, "", err)
	}
	if fm.Extra == nil {
		fm.Extra = map[string]any{}
	}
	return fm, body, nil
}

// filterFrontmatterBlock drops internal-only keys from a leading
// frontmatter block. The block is rewritten only when user-relevant keys
// remain; otherwise it is removed entirely. Content without a leading
// block, or with a block that fails to parse, is returned unchanged.
func filterFrontmatterBlock(content string) string {
	block, body, ok := splitFrontmatterBlock(content)
	if !ok {
		return content
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil || len(doc.Content) == 0 {
		return content
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return content
	}

	kept := mapping.Content[:0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := strings.ToLower(strings.TrimSpace(mapping.Content[i].Value))
		if _, internal := internalFrontmatterKeys[key]; internal {
			continue
		}
		kept = append(kept, mapping.Content[i], mapping.Content[i+1])
	}
	mapping.Content = kept

	if len(kept) == 0 {
		return strings.TrimLeft(body, "\n")
	}

	rewritten, err := yaml.Marshal(mapping)
	if err != nil {
		return content
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(bytes.TrimRight(rewritten, "\n"))
	b.WriteString("\n---\n")
	b.WriteString(body)
	return b.String()
}

// splitFrontmatterBlock splits content into the YAML between the leading
// --- delimiters and the remaining body. ok is false when no leading
// block exists.
func splitFrontmatterBlock(content string) (block, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") && content != "---" && !strings.HasPrefix(content, "---\r\n") {
		return "", "", false
	}

	lines := strings.SplitAfter(content, "\n")
	var blockLines []string
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], "\r\n")
		if trimmed == "---" {
			return strings.Join(blockLines, ""), strings.Join(lines[i+1:], ""), true
		}
		blockLines = append(blockLines, lines[i])
	}
	return "", "", false
}
