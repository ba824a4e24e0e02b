package navigation

import (
	"strings"
	"testing"
)

const sampleManifest = `{
  "version": 1,
  "title": "Angular Knowledge Base",
  "nodes": [
    {
      "id": "cat-core", "title": "Core Concepts", "slug": "core", "type": "category", "order": 1,
      "children": [
        {"id": "t-signals", "title": "Angular Signals", "slug": "angular-signals", "type": "topic",
         "level": "intermediate", "order": 1, "tags": ["reactivity", "signals"]},
        {"id": "t-di", "title": "Dependency Injection", "slug": "dependency-injection", "type": "topic",
         "level": "fundamentals", "order": 2}
      ]
    },
    {
      "id": "cat-adv", "title": "Advanced", "slug": "advanced", "type": "category", "order": 2,
      "children": [
        {"id": "cat-perf", "title": "Performance", "slug": "performance", "type": "category", "order": 1,
         "children": [
           {"id": "t-cd", "title": "Change Detection", "slug": "change-detection", "type": "topic",
            "level": "expert", "order": 1}
         ]}
      ]
    }
  ]
}`

func loadSample(t *testing.T) *Tree {
	t.Helper()
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	return NewTree(m)
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(m.Nodes) != 2 {
		t.Fatalf("roots = %d, want 2", len(m.Nodes))
	}
	if m.Nodes[0].ID != "cat-core" || m.Nodes[1].ID != "cat-adv" {
		t.Errorf("root order = %q, %q; want cat-core, cat-adv", m.Nodes[0].ID, m.Nodes[1].ID)
	}

	signals := m.Nodes[0].Children[0]
	if signals.Title != "Angular Signals" || signals.Level != TierIntermediate {
		t.Errorf("topic = %q/%q, want Angular Signals/intermediate", signals.Title, signals.Level)
	}
	if signals.Parent() == nil || signals.Parent().ID != "cat-core" {
		t.Errorf("parent not linked")
	}
}

func TestParseManifestOrdering(t *testing.T) {
	data := `{"nodes":[
		{"id":"b","title":"B","slug":"b","type":"category","order":2},
		{"id":"a","title":"A","slug":"a","type":"category","order":1}
	]}`
	m, err := ParseManifest([]byte(data))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Nodes[0].ID != "a" || m.Nodes[1].ID != "b" {
		t.Errorf("order = %q, %q; want a, b", m.Nodes[0].ID, m.Nodes[1].ID)
	}
}

func TestParseManifestGeneratesIDs(t *testing.T) {
	data := `{"nodes":[{"title":"X","slug":"x","type":"category"}]}`
	m, err := ParseManifest([]byte(data))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Nodes[0].ID == "" {
		t.Error("missing id was not generated")
	}
}

func TestParseManifestRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"topic with children", `{"nodes":[{"id":"t","title":"T","slug":"t","type":"topic",
			"children":[{"id":"c","title":"C","slug":"c","type":"topic"}]}]}`, "only categories"},
		{"unknown type", `{"nodes":[{"id":"x","title":"X","slug":"x","type":"widget"}]}`, "unknown type"},
		{"duplicate id", `{"nodes":[
			{"id":"x","title":"A","slug":"a","type":"category"},
			{"id":"x","title":"B","slug":"b","type":"category"}]}`, "duplicate node id"},
		{"bad tier", `{"nodes":[{"id":"t","title":"T","slug":"t","type":"topic","level":"wizard"}]}`, "skill tier"},
		{"missing slug", `{"nodes":[{"id":"t","title":"T","type":"topic"}]}`, "no slug"},
		{"missing title", `{"nodes":[{"id":"t","slug":"t","type":"topic"}]}`, "no title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	tree := loadSample(t)

	if !tree.Toggle("cat-core") {
		t.Fatal("Toggle(cat-core) = false")
	}
	if !tree.Node("cat-core").IsExpanded {
		t.Error("cat-core not expanded after toggle")
	}
	if tree.Node("cat-adv").IsExpanded {
		t.Error("toggle leaked to sibling category")
	}

	tree.Toggle("cat-core")
	if tree.Node("cat-core").IsExpanded {
		t.Error("cat-core still expanded after second toggle")
	}

	if tree.Toggle("t-signals") {
		t.Error("Toggle on a topic should report false")
	}
	if tree.Toggle("nope") {
		t.Error("Toggle on unknown id should report false")
	}
}

func TestSelectTopicUniqueSelection(t *testing.T) {
	tree := loadSample(t)

	if !tree.SelectTopic("t-signals") {
		t.Fatal("SelectTopic(t-signals) = false")
	}
	if !tree.SelectTopic("t-cd") {
		t.Fatal("SelectTopic(t-cd) = false")
	}

	selected := 0
	for _, topic := range tree.Topics() {
		if topic.IsSelected {
			selected++
			if topic.ID != "t-cd" {
				t.Errorf("wrong topic selected: %q", topic.ID)
			}
		}
	}
	if selected != 1 {
		t.Errorf("selected count = %d, want 1", selected)
	}
	if tree.Selected() == nil || tree.Selected().ID != "t-cd" {
		t.Errorf("Selected() = %v, want t-cd", tree.Selected())
	}
}

func TestSelectTopicExpandsAncestors(t *testing.T) {
	tree := loadSample(t)

	if !tree.SelectTopic("t-cd") {
		t.Fatal("SelectTopic(t-cd) = false")
	}
	if !tree.Node("cat-adv").IsExpanded {
		t.Error("grandparent category not expanded")
	}
	if !tree.Node("cat-perf").IsExpanded {
		t.Error("parent category not expanded")
	}
	if tree.Node("cat-core").IsExpanded {
		t.Error("unrelated category expanded")
	}
}

func TestSelectTopicRejects(t *testing.T) {
	tree := loadSample(t)
	if tree.SelectTopic("cat-core") {
		t.Error("SelectTopic on category should report false")
	}
	if tree.SelectTopic("missing") {
		t.Error("SelectTopic on unknown id should report false")
	}
	if tree.Selected() != nil {
		t.Error("failed selects should not change selection")
	}
}

func TestExpandCollapseAll(t *testing.T) {
	tree := loadSample(t)

	tree.ExpandAll()
	for _, id := range []string{"cat-core", "cat-adv", "cat-perf"} {
		if !tree.Node(id).IsExpanded {
			t.Errorf("%s not expanded after ExpandAll", id)
		}
	}

	tree.SelectTopic("t-cd")
	tree.CollapseAll()
	for _, id := range []string{"cat-core", "cat-adv", "cat-perf"} {
		if tree.Node(id).IsExpanded {
			t.Errorf("%s still expanded after CollapseAll", id)
		}
	}
}

func TestExpandedIDsRoundTrip(t *testing.T) {
	tree := loadSample(t)
	tree.Toggle("cat-adv")
	tree.Toggle("cat-perf")

	ids := tree.ExpandedIDs()
	if len(ids) != 2 {
		t.Fatalf("expanded ids = %v, want 2 entries", ids)
	}

	fresh := loadSample(t)
	fresh.RestoreExpanded(ids)
	if !fresh.Node("cat-adv").IsExpanded || !fresh.Node("cat-perf").IsExpanded {
		t.Error("RestoreExpanded did not expand persisted categories")
	}
	if fresh.Node("cat-core").IsExpanded {
		t.Error("RestoreExpanded expanded an unrelated category")
	}
}

func TestTopicsAndTopicBySlug(t *testing.T) {
	tree := loadSample(t)

	topics := tree.Topics()
	if len(topics) != 3 {
		t.Fatalf("topics = %d, want 3", len(topics))
	}
	want := []string{"t-signals", "t-di", "t-cd"}
	for i, id := range want {
		if topics[i].ID != id {
			t.Errorf("topics[%d] = %q, want %q", i, topics[i].ID, id)
		}
	}

	if n := tree.TopicBySlug("dependency-injection"); n == nil || n.ID != "t-di" {
		t.Errorf("TopicBySlug = %v, want t-di", n)
	}
	if n := tree.TopicBySlug("missing"); n != nil {
		t.Errorf("TopicBySlug(missing) = %v, want nil", n)
	}
}
