package search

import (
	"strings"
	"testing"
)

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	topics := []Topic{
		{ID: "1", Title: "Angular Signals"},
		{ID: "2", Title: "RxJS"},
	}

	for _, q := range []string{"", "   "} {
		results := Search(q, topics)
		if len(results) != 2 {
			t.Fatalf("Search(%q) results = %d, want 2", q, len(results))
		}
		for i, r := range results {
			if r.Topic.ID != topics[i].ID {
				t.Errorf("Search(%q) order changed: got %q at %d", q, r.Topic.ID, i)
			}
			if r.Score != 0 {
				t.Errorf("Search(%q) score = %d, want 0", q, r.Score)
			}
		}
	}
}

func TestSearchRanksTitleMatchFirst(t *testing.T) {
	topics := []Topic{
		{ID: "2", Title: "RxJS"},
		{ID: "1", Title: "Angular Signals"},
	}

	results := Search("Signals", topics)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Topic.ID != "1" {
		t.Errorf("first result = %q, want Angular Signals", results[0].Topic.Title)
	}
}

func TestSearchExactBeatsSubstring(t *testing.T) {
	topics := []Topic{
		{ID: "sub", Title: "Advanced Signals Patterns"},
		{ID: "exact", Title: "Signals"},
	}

	results := Search("signals", topics)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Topic.ID != "exact" {
		t.Errorf("first = %q, want exact title match", results[0].Topic.ID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("exact score %d not above substring score %d",
			results[0].Score, results[1].Score)
	}
}

func TestSearchWeightOrdering(t *testing.T) {
	topics := []Topic{
		{ID: "content", Title: "Zones", Content: "signals are mentioned here"},
		{ID: "tag", Title: "Reactivity", Tags: []string{"signals"}},
		{ID: "title", Title: "Intro to Signals"},
	}

	results := Search("signals", topics)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	want := []string{"title", "tag", "content"}
	for i, id := range want {
		if results[i].Topic.ID != id {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Topic.ID, id)
		}
	}
}

func TestSearchSumsCategories(t *testing.T) {
	topics := []Topic{
		{ID: "all", Title: "Signals", Tags: []string{"signals"}, Content: "signals everywhere"},
	}
	results := Search("signals", topics)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	w := DefaultWeights()
	want := w.ExactTitle + w.TitleSubstring + w.Tag + w.Content
	if results[0].Score != want {
		t.Errorf("score = %d, want %d", results[0].Score, want)
	}
}

func TestSearchStableTieBreak(t *testing.T) {
	topics := []Topic{
		{ID: "a", Title: "Routing Basics"},
		{ID: "b", Title: "Routing Guards"},
	}
	results := Search("routing", topics)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Topic.ID != "a" || results[1].Topic.ID != "b" {
		t.Errorf("tie not broken by original order: %q, %q",
			results[0].Topic.ID, results[1].Topic.ID)
	}
}

func TestSearchNoMatches(t *testing.T) {
	topics := []Topic{{ID: "1", Title: "Angular Signals"}}
	results := Search("quantum", topics)
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestSearchQueryNormalization(t *testing.T) {
	topics := []Topic{{ID: "1", Title: "Angular Signals"}}
	a := Search("  SIGNALS  ", topics)
	b := Search("signals", topics)
	if len(a) != 1 || len(b) != 1 || a[0].Score != b[0].Score {
		t.Errorf("normalization mismatch: %v vs %v", a, b)
	}
}

func TestSearchExcerptHighlighting(t *testing.T) {
	long := strings.Repeat("x", 200) + " signals appear here " + strings.Repeat("y", 200)
	topics := []Topic{{ID: "1", Title: "Misc", Tags: []string{"signals"}, Content: long}}

	results := Search("signals", topics)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	ex := results[0].Excerpt
	if !strings.Contains(ex, "<mark>signals</mark>") {
		t.Errorf("excerpt missing highlight: %q", ex)
	}
	if len(ex) >= len(long) {
		t.Errorf("excerpt not windowed: %d bytes", len(ex))
	}
	if !strings.HasPrefix(ex, "…") || !strings.HasSuffix(ex, "…") {
		t.Errorf("excerpt missing ellipses: %q", ex)
	}
}

func TestSearchExcerptFallsBackToSummary(t *testing.T) {
	topics := []Topic{{ID: "1", Title: "Angular Signals", Summary: "Reactive primitives."}}
	results := Search("signals", topics)
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Excerpt != "Reactive primitives." {
		t.Errorf("excerpt = %q, want summary fallback", results[0].Excerpt)
	}
}
