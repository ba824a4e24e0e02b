package content

import (
	"log"
	"regexp"
	"strings"
)

// logf emits sanitizer diagnostics. Replace via SetDiagnostics to silence
// or redirect them.
var logf = log.Printf

// SetDiagnostics redirects sanitizer diagnostic output. Passing nil
// restores the default logger.
func SetDiagnostics(fn func(format string, args ...any)) {
	if fn == nil {
		logf = log.Printf
		return
	}
	logf = fn
}

// Badge and compliance markup left behind by the authoring pipeline.
var (
	badgeImagePattern   = regexp.MustCompile(`(?i)!\[(?:constitutional|spec|badge|compliance)[^\]]*\]\([^)]*\)\s*`)
	shieldsImagePattern = regexp.MustCompile(`!\[[^\]]*\]\(https?://img\.shields\.io[^)]*\)\s*`)
	boldLabelPattern    = regexp.MustCompile(`(?i)\*\*(?:constitutional|spec(?:ification)? status|compliance)[^*\n]*\*\*:?[^\n]*`)
	badgeCommentPattern = regexp.MustCompile(`(?i)<!--\s*(?:constitutional|spec-badge|badge)[^>]*-->\s*`)
	badgeElementPattern = regexp.MustCompile(`(?i)<(?:span|div)[^>\n]*class="[^"]*badge[^"]*"[^>\n]*>[^<\n]*</(?:span|div)>\s*`)
)

// Instructional metadata aimed at authors, not readers.
var (
	devCommentPattern  = regexp.MustCompile(`(?is)<!--\s*(?:todo|fixme|note)\b.*?-->`)
	placeholderPattern = regexp.MustCompile(`(?i)\[(?:todo|fixme|placeholder|tbd|draft)(?::[^\]]*)?\]`)
	devQuotePattern    = regexp.MustCompile(`(?i)^>\s*(?:(?:dev(?:eloper)?|internal|reviewer|author)\s+note|note\s+to\s+(?:self|reviewers?))\b`)
)

var (
	numericLinePattern  = regexp.MustCompile(`^\d{4,}$`)
	emptyListItemLine   = regexp.MustCompile(`^\s*[-*+]\s*$`)
	headingLinePattern  = regexp.MustCompile(`^#{1,6}\s`)
	boldSpanPattern     = regexp.MustCompile(`\*\*[^*\n]+\*\*`)
	inlineCodePattern   = regexp.MustCompile("`[^`\n]+`")
	listItemPattern     = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+\S`)
	codeCommentPattern  = regexp.MustCompile(`(?ms)(?://|#)[^\n]*$|/\*.*?\*/|<!--.*?-->`)
	whitespaceRunInCode = regexp.MustCompile(`\s+`)
)

// Sanitize strips authoring artifacts from raw markdown. It is a pure
// function of (content, opts), never fails, and returns the input
// unchanged on any internal error. A nil opts uses the defaults.
func Sanitize(content string, opts *CleanupOptions) (result string) {
	o := DefaultCleanupOptions()
	if opts != nil {
		o = *opts
	}

	defer func() {
		if r := recover(); r != nil {
			logf("sanitize: cleanup failed, returning content unchanged: %v", r)
			result = content
		}
	}()

	result = runStages(content, o)

	if o.PreserveEducationalValue {
		result = checkEducationalValue(content, result, o)
	}
	return result
}

// runStages applies the enabled cleanup stages in fixed order.
func runStages(content string, o CleanupOptions) string {
	out := content
	if o.RemoveConstitutional {
		out = removeConstitutionalMarkup(out)
	}
	if o.RemoveInstructional {
		out = removeInstructionalMetadata(out)
		out = filterFrontmatterBlock(out)
	}
	if o.RemoveDigitArtifacts {
		out = removeDigitArtifacts(out)
	}
	if o.RemoveDuplicateCode {
		out = removeDuplicateCodeBlocks(out)
	}
	if o.NormalizeWhitespace {
		out = normalizeWhitespace(out)
	}
	return out
}

// checkEducationalValue guards against over-aggressive cleanup. When the
// cleaned article lost every markdown feature the reader cares about, the
// full cleanup is discarded and only the least destructive stages rerun.
func checkEducationalValue(original, cleaned string, o CleanupOptions) string {
	if len(cleaned) < len(original)/2 {
		logf("sanitize: cleanup removed more than half the content (%d -> %d bytes)",
			len(original), len(cleaned))
	}

	if len(original) <= 100 || hasEducationalFeatures(cleaned) {
		return cleaned
	}

	logf("sanitize: cleanup stripped all educational features, falling back to minimal cleanup")
	minimal := CleanupOptions{
		RemoveConstitutional: o.RemoveConstitutional,
		RemoveDigitArtifacts: o.RemoveDigitArtifacts,
	}
	return runStages(original, minimal)
}

// hasEducationalFeatures reports whether text retains at least one of:
// heading, fenced code block, bold span, inline code span, list item.
func hasEducationalFeatures(text string) bool {
	if strings.Contains(text, "```") {
		return true
	}
	for _, line := range strings.Split(text, "\n") {
		if headingLinePattern.MatchString(line) {
			return true
		}
	}
	return boldSpanPattern.MatchString(text) ||
		inlineCodePattern.MatchString(text) ||
		listItemPattern.MatchString(text)
}

// removeConstitutionalMarkup strips badge images, bolded compliance
// labels, badge comments and inline badge elements. Fenced code blocks
// are left alone so samples that legitimately contain these literals
// survive.
func removeConstitutionalMarkup(content string) string {
	return mapOutsideFences(content, func(line string) (string, bool) {
		line = badgeImagePattern.ReplaceAllString(line, "")
		line = shieldsImagePattern.ReplaceAllString(line, "")
		line = boldLabelPattern.ReplaceAllString(line, "")
		line = badgeCommentPattern.ReplaceAllString(line, "")
		line = badgeElementPattern.ReplaceAllString(line, "")
		return line, true
	})
}

// removeInstructionalMetadata strips developer-facing comments,
// placeholder tags, and blockquoted developer notes.
func removeInstructionalMetadata(content string) string {
	// Multi-line HTML comments first; they can span lines.
	content = devCommentPattern.ReplaceAllString(content, "")

	return mapOutsideFences(content, func(line string) (string, bool) {
		if devQuotePattern.MatchString(line) {
			return "", false
		}
		line = placeholderPattern.ReplaceAllString(line, "")
		return line, true
	})
}

// removeDigitArtifacts drops standalone numeric lines of length >= 4 that
// sit immediately inside a code fence, on either side. These are line
// number gutters copied in with the snippet.
func removeDigitArtifacts(content string) string {
	lines := strings.Split(content, "\n")
	keep := make([]bool, len(lines))
	for i := range keep {
		keep[i] = true
	}

	inFence := false
	for i, line := range lines {
		if isFenceLine(line) {
			if !inFence {
				// Opening fence: check the line immediately inside.
				if i+1 < len(lines) && numericLinePattern.MatchString(strings.TrimSpace(lines[i+1])) {
					keep[i+1] = false
				}
			} else {
				// Closing fence: check the line immediately before it.
				if i > 0 && numericLinePattern.MatchString(strings.TrimSpace(lines[i-1])) {
					keep[i-1] = false
				}
			}
			inFence = !inFence
		}
	}

	var out []string
	for i, line := range lines {
		if keep[i] {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// codeBlock is a fenced block located in the source line slice.
type codeBlock struct {
	start, end int // inclusive line indexes of the fence markers
	language   string
	body       string
}

// removeDuplicateCodeBlocks deletes fenced blocks whose declared language
// and normalized body match an earlier block. The first occurrence wins.
func removeDuplicateCodeBlocks(content string) string {
	lines := strings.Split(content, "\n")
	blocks := findCodeBlocks(lines)
	if len(blocks) < 2 {
		return content
	}

	seen := map[string]struct{}{}
	drop := map[int]bool{}
	for _, b := range blocks {
		key := b.language + "\x00" + normalizeCodeBody(b.body)
		if _, dup := seen[key]; dup {
			for i := b.start; i <= b.end; i++ {
				drop[i] = true
			}
			continue
		}
		seen[key] = struct{}{}
	}

	if len(drop) == 0 {
		return content
	}

	var out []string
	for i, line := range lines {
		if !drop[i] {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// findCodeBlocks locates complete fenced blocks. An unterminated fence is
// ignored.
func findCodeBlocks(lines []string) []codeBlock {
	var blocks []codeBlock
	start := -1
	language := ""

	for i, line := range lines {
		if !isFenceLine(line) {
			continue
		}
		if start < 0 {
			start = i
			language = ""
			info := strings.TrimLeft(strings.TrimSpace(line), "`~")
			if fields := strings.Fields(info); len(fields) > 0 {
				language = strings.ToLower(fields[0])
			}
			continue
		}
		blocks = append(blocks, codeBlock{
			start:    start,
			end:      i,
			language: language,
			body:     strings.Join(lines[start+1:i], "\n"),
		})
		start = -1
	}
	return blocks
}

// normalizeCodeBody strips comments, case-folds, and collapses whitespace
// so cosmetic differences do not defeat duplicate detection.
func normalizeCodeBody(body string) string {
	body = codeCommentPattern.ReplaceAllString(body, "")
	body = strings.ToLower(body)
	body = whitespaceRunInCode.ReplaceAllString(body, " ")
	return strings.TrimSpace(body)
}

// normalizeWhitespace trims trailing whitespace, collapses runs of blank
// lines, and drops empty headings and empty list items. Fenced code block
// interiors keep their blank lines.
func normalizeWhitespace(content string) string {
	lines := strings.Split(content, "\n")

	// Trim trailing whitespace everywhere and drop empty list items.
	trimmed := lines[:0]
	inFence := false
	for _, line := range lines {
		if isFenceLine(line) {
			inFence = !inFence
		}
		line = strings.TrimRight(line, " \t")
		if !inFence && emptyListItemLine.MatchString(line) && !isFenceLine(line) {
			continue
		}
		trimmed = append(trimmed, line)
	}
	lines = trimmed

	lines = dropEmptyHeadings(lines)

	// Collapse 3+ consecutive blank lines down to exactly two, outside
	// fences.
	var out []string
	blanks := 0
	inFence = false
	for _, line := range lines {
		if isFenceLine(line) {
			inFence = !inFence
		}
		if !inFence && strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}

	result := strings.Join(out, "\n")
	result = strings.Trim(result, "\n")
	if result != "" {
		result += "\n"
	}
	return result
}

// dropEmptyHeadings removes headings with no content before the next
// heading or end of document.
func dropEmptyHeadings(lines []string) []string {
	drop := map[int]bool{}
	inFence := false
	for i, line := range lines {
		if isFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence || !headingLinePattern.MatchString(line) {
			continue
		}

		empty := true
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if headingLinePattern.MatchString(lines[j]) {
				break
			}
			empty = false
			break
		}
		if empty {
			drop[i] = true
		}
	}

	if len(drop) == 0 {
		return lines
	}
	var out []string
	for i, line := range lines {
		if !drop[i] {
			out = append(out, line)
		}
	}
	return out
}

// mapOutsideFences applies fn to every line outside fenced code blocks.
// Returning keep=false drops the line.
func mapOutsideFences(content string, fn func(line string) (string, bool)) string {
	lines := strings.Split(content, "\n")
	out := lines[:0]
	inFence := false
	for _, line := range lines {
		if isFenceLine(line) {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		mapped, keep := fn(line)
		if !keep {
			continue
		}
		out = append(out, mapped)
	}
	return strings.Join(out, "\n")
}

func isFenceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}
