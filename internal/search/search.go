// Package search ranks topics against a reader query with fixed-weight
// term matching. Scoring is deterministic: equal inputs always produce
// the same ordering.
package search

import (
	"sort"
	"strings"
)

// Topic is the searchable projection of a navigation topic plus its
// article text.
type Topic struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Tags    []string `json:"tags,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Content string   `json:"content,omitempty"`
}

// Result is one ranked hit. Results are ordered by descending score;
// ties keep the original topic order.
type Result struct {
	Topic   Topic  `json:"topic"`
	Score   int    `json:"score"`
	Excerpt string `json:"excerpt,omitempty"`
}

// Weights are the fixed per-category match weights. Multiple matching
// categories and terms sum.
type Weights struct {
	ExactTitle     int
	TitleSubstring int
	Tag            int
	Content        int
}

// DefaultWeights returns the standard scoring table.
func DefaultWeights() Weights {
	return Weights{ExactTitle: 100, TitleSubstring: 60, Tag: 30, Content: 10}
}

const excerptRadius = 80

// Search scores topics against query and returns matches ordered by
// descending score. An empty (or all-whitespace) query is an identity
// pass: every topic comes back unscored in its original order, matching
// the browse-all use case.
func Search(query string, topics []Topic) []Result {
	return SearchWeighted(query, topics, DefaultWeights())
}

// SearchWeighted is Search with a caller-supplied weight table.
func SearchWeighted(query string, topics []Topic, w Weights) []Result {
	q := strings.ToLower(strings.TrimSpace(query))

	if q == "" {
		results := make([]Result, len(topics))
		for i, t := range topics {
			results[i] = Result{Topic: t}
		}
		return results
	}

	terms := strings.Fields(q)

	var results []Result
	for _, t := range topics {
		score, excerpt := scoreTopic(t, q, terms, w)
		if score == 0 {
			continue
		}
		results = append(results, Result{Topic: t, Score: score, Excerpt: excerpt})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// scoreTopic sums the weights of every matching category and term.
func scoreTopic(t Topic, q string, terms []string, w Weights) (int, string) {
	title := strings.ToLower(t.Title)
	content := strings.ToLower(t.Content)

	score := 0
	if title == q {
		score += w.ExactTitle
	}
	if strings.Contains(title, q) {
		score += w.TitleSubstring
	}

	for _, term := range terms {
		for _, tag := range t.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				score += w.Tag
				break
			}
		}
		if strings.Contains(content, term) {
			score += w.Content
		}
	}

	excerpt := ""
	if score > 0 {
		excerpt = buildExcerpt(t, q, terms)
	}
	return score, excerpt
}

// buildExcerpt returns a short highlighted window around the first
// matching term in the topic's content, falling back to the summary.
func buildExcerpt(t Topic, q string, terms []string) string {
	content := t.Content
	lower := strings.ToLower(content)

	idx, matchLen := -1, 0
	if i := strings.Index(lower, q); i >= 0 {
		idx, matchLen = i, len(q)
	} else {
		for _, term := range terms {
			if i := strings.Index(lower, term); i >= 0 && (idx < 0 || i < idx) {
				idx, matchLen = i, len(term)
			}
		}
	}

	if idx < 0 {
		return t.Summary
	}

	start := idx - excerptRadius
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + excerptRadius
	if end > len(content) {
		end = len(content)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("…")
	}
	b.WriteString(content[start:idx])
	b.WriteString("<mark>")
	b.WriteString(content[idx : idx+matchLen])
	b.WriteString("</mark>")
	b.WriteString(content[idx+matchLen : end])
	if end < len(content) {
		b.WriteString("…")
	}
	return b.String()
}
