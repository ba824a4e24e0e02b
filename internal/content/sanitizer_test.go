package content

import (
	"strings"
	"testing"
)

func onlyOption(set func(*CleanupOptions)) *CleanupOptions {
	opts := &CleanupOptions{}
	set(opts)
	return opts
}

func TestSanitizeRemovesConstitutionalMarkup(t *testing.T) {
	input := `# Topic

![Constitutional](https://img.shields.io/badge/spec-passing-green)

**Constitutional:** section 4.2 compliant

<!-- constitutional: verified -->
<span class="badge spec-badge">verified</span>

Real content stays.
`
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveConstitutional = true }))

	if strings.Contains(got, "Constitutional:") {
		t.Errorf("output still contains Constitutional label:\n%s", got)
	}
	if strings.Contains(got, "shields.io") {
		t.Errorf("output still contains badge image:\n%s", got)
	}
	if strings.Contains(got, "badge") {
		t.Errorf("output still contains badge element:\n%s", got)
	}
	if !strings.Contains(got, "Real content stays.") {
		t.Errorf("real content was removed:\n%s", got)
	}
}

func TestSanitizeKeepsConstitutionalInsideCode(t *testing.T) {
	input := "# Topic\n\n```go\n// **Constitutional:** part of the sample\nfmt.Println(\"hi\")\n```\n"
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveConstitutional = true }))

	if !strings.Contains(got, "**Constitutional:** part of the sample") {
		t.Errorf("code sample was modified:\n%s", got)
	}
}

func TestSanitizeRemovesInstructionalMetadata(t *testing.T) {
	input := `# Topic

<!-- TODO: rewrite this intro -->
Intro text.

[PLACEHOLDER: diagram]

> Developer note: remove before publishing.

Closing text.
`
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveInstructional = true }))

	for _, leaked := range []string{"TODO", "PLACEHOLDER", "Developer note"} {
		if strings.Contains(got, leaked) {
			t.Errorf("output still contains %q:\n%s", leaked, got)
		}
	}
	if !strings.Contains(got, "Intro text.") || !strings.Contains(got, "Closing text.") {
		t.Errorf("reader content was removed:\n%s", got)
	}
}

func TestSanitizeFrontmatterFiltering(t *testing.T) {
	input := `---
title: Signals
reviewer: alice
review_status: pending
tags:
  - angular
---
Body.
`
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveInstructional = true }))

	if strings.Contains(got, "reviewer") || strings.Contains(got, "review_status") {
		t.Errorf("internal keys survived:\n%s", got)
	}
	if !strings.Contains(got, "title: Signals") {
		t.Errorf("user-relevant key dropped:\n%s", got)
	}
	if !strings.HasPrefix(got, "---\n") {
		t.Errorf("frontmatter block missing:\n%s", got)
	}
}

func TestSanitizeFrontmatterRemovedWhenAllInternal(t *testing.T) {
	input := `---
internal_id: x-17
ai_generated: true
---
Body.
`
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveInstructional = true }))

	if strings.Contains(got, "---") {
		t.Errorf("frontmatter delimiters survived:\n%s", got)
	}
	if !strings.Contains(got, "Body.") {
		t.Errorf("body was removed:\n%s", got)
	}
}

func TestSanitizeRemovesDigitArtifacts(t *testing.T) {
	input := "```go\n1234\nfmt.Println(1)\n5678\n```\n\n123456 stays in prose\n"
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveDigitArtifacts = true }))

	if strings.Contains(got, "1234\n") {
		t.Errorf("leading gutter line survived:\n%s", got)
	}
	if strings.Contains(got, "5678") {
		t.Errorf("trailing gutter line survived:\n%s", got)
	}
	if !strings.Contains(got, "fmt.Println(1)") {
		t.Errorf("code body was removed:\n%s", got)
	}
	if !strings.Contains(got, "```go") || strings.Count(got, "```") != 2 {
		t.Errorf("fence markers were not preserved:\n%s", got)
	}
	if !strings.Contains(got, "123456 stays in prose") {
		t.Errorf("prose numeric line was removed:\n%s", got)
	}
}

func TestSanitizeRemovesDuplicateCodeBlocks(t *testing.T) {
	first := "```typescript\nconst x = signal(0);\nconsole.log(x());\n```"
	second := "```typescript\nconst x  =  signal(0);\n  console.log(x());\n```"
	input := "# T\n\n" + first + "\n\nBetween.\n\n" + second + "\n\nAfter.\n"

	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveDuplicateCode = true }))

	if strings.Count(got, "```typescript") != 1 {
		t.Fatalf("typescript blocks = %d, want 1:\n%s", strings.Count(got, "```typescript"), got)
	}
	if !strings.Contains(got, first) {
		t.Errorf("first block not retained byte-for-byte:\n%s", got)
	}
	if !strings.Contains(got, "Between.") || !strings.Contains(got, "After.") {
		t.Errorf("surrounding prose was removed:\n%s", got)
	}
}

func TestSanitizeKeepsDifferentLanguageBlocks(t *testing.T) {
	input := "```go\nx := 1\n```\n\n```python\nx := 1\n```\n"
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.RemoveDuplicateCode = true }))

	if strings.Count(got, "```") != 4 {
		t.Errorf("blocks with different languages were deduplicated:\n%s", got)
	}
}

func TestSanitizeNormalizesWhitespace(t *testing.T) {
	input := "# Title\n\ncontent   \n\n\n\n\nmore\n\n## Empty Heading\n\n## Kept\n\ntext\n\n- \n- real item\n"
	got := Sanitize(input, onlyOption(func(o *CleanupOptions) { o.NormalizeWhitespace = true }))

	if strings.Contains(got, "\n\n\n\n") {
		t.Errorf("blank line run survived:\n%q", got)
	}
	if strings.Contains(got, "content   ") {
		t.Errorf("trailing whitespace survived:\n%q", got)
	}
	if strings.Contains(got, "## Empty Heading") {
		t.Errorf("empty heading survived:\n%s", got)
	}
	if !strings.Contains(got, "## Kept") {
		t.Errorf("heading with content was removed:\n%s", got)
	}
	if strings.Contains(got, "- \n") {
		t.Errorf("empty list item survived:\n%q", got)
	}
	if !strings.Contains(got, "- real item") {
		t.Errorf("real list item was removed:\n%s", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"# Clean Topic\n\nSome text with **bold** and `code`.\n\n- item one\n- item two\n",
		"---\ntitle: Signals\n---\n# Signals\n\n```go\nx := 1\n```\n",
		"",
		"plain paragraph only\n",
	}

	for _, in := range inputs {
		once := Sanitize(in, nil)
		twice := Sanitize(once, nil)
		if once != twice {
			t.Errorf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

func TestSanitizeFallbackPreservesEducationalValue(t *testing.T) {
	// Every content line is a developer blockquote: full cleanup would
	// leave nothing, so the safety check reruns minimal cleanup only.
	var b strings.Builder
	b.WriteString("> Developer note: one\n\n")
	for i := 0; i < 10; i++ {
		b.WriteString("> Developer note: keep the **bold** draft around\n\n")
	}
	input := b.String()

	var warnings []string
	SetDiagnostics(func(format string, args ...any) {
		warnings = append(warnings, format)
	})
	defer SetDiagnostics(nil)

	got := Sanitize(input, nil)

	if got == "" {
		t.Fatalf("fallback did not preserve content")
	}
	if !strings.Contains(got, "**bold**") {
		t.Errorf("fallback output lost the original text:\n%s", got)
	}
	if len(warnings) == 0 {
		t.Errorf("no diagnostic emitted for fallback")
	}
}

func TestSanitizeNeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{
		"x",
		"<!-- TODO -->hello",
		"# h\n\ncontent\n",
	}
	for _, in := range inputs {
		if got := Sanitize(in, nil); got == "" {
			t.Errorf("Sanitize(%q) = empty", in)
		}
	}
}

func TestSanitizeNilOptionsUsesDefaults(t *testing.T) {
	input := "**Constitutional:** yes\n\nReal text.\n"
	got := Sanitize(input, nil)
	if strings.Contains(got, "Constitutional") {
		t.Errorf("defaults did not strip badge label:\n%s", got)
	}
}
