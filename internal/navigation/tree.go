package navigation

// Tree wraps a loaded manifest with expand/collapse and selection
// operations. It is owned by a single view session and is not safe for
// concurrent mutation.
type Tree struct {
	roots []*Node
	index map[string]*Node

	selected *Node
}

// NewTree builds a Tree over the manifest's nodes.
func NewTree(m *Manifest) *Tree {
	t := &Tree{index: map[string]*Node{}}
	if m != nil {
		t.roots = m.Nodes
	}
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			t.index[n.ID] = n
			if n.IsSelected {
				t.selected = n
			}
			walk(n.Children)
		}
	}
	walk(t.roots)
	return t
}

// Roots returns the top-level nodes in display order.
func (t *Tree) Roots() []*Node { return t.roots }

// Node looks up a node by id; nil when absent.
func (t *Tree) Node(id string) *Node { return t.index[id] }

// Selected returns the currently selected topic, or nil.
func (t *Tree) Selected() *Node { return t.selected }

// Toggle flips the expansion state of the category with the given id.
// It reports false for unknown ids and for topic nodes.
func (t *Tree) Toggle(id string) bool {
	n := t.index[id]
	if n == nil || !n.IsCategory() {
		return false
	}
	n.IsExpanded = !n.IsExpanded
	return true
}

// SelectTopic marks the topic with the given id as selected, clearing any
// previous selection, and expands all ancestor categories so the topic is
// visible. It reports false for unknown ids and for category nodes.
func (t *Tree) SelectTopic(id string) bool {
	n := t.index[id]
	if n == nil || n.IsCategory() {
		return false
	}

	if t.selected != nil {
		t.selected.IsSelected = false
	}
	n.IsSelected = true
	t.selected = n

	for p := n.parent; p != nil; p = p.parent {
		p.IsExpanded = true
	}
	return true
}

// ClearSelection unselects the current topic, if any.
func (t *Tree) ClearSelection() {
	if t.selected != nil {
		t.selected.IsSelected = false
		t.selected = nil
	}
}

// ExpandAll expands every category node.
func (t *Tree) ExpandAll() { t.setExpanded(true) }

// CollapseAll collapses every category node, including ancestors of the
// current selection.
func (t *Tree) CollapseAll() { t.setExpanded(false) }

func (t *Tree) setExpanded(expanded bool) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsCategory() {
				n.IsExpanded = expanded
			}
			walk(n.Children)
		}
	}
	walk(t.roots)
}

// ExpandedIDs returns the ids of all expanded categories, in tree order.
// Used to persist reader preferences.
func (t *Tree) ExpandedIDs() []string {
	var ids []string
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsCategory() && n.IsExpanded {
				ids = append(ids, n.ID)
			}
			walk(n.Children)
		}
	}
	walk(t.roots)
	return ids
}

// RestoreExpanded expands exactly the categories whose ids appear in ids.
// Unknown ids are ignored.
func (t *Tree) RestoreExpanded(ids []string) {
	t.setExpanded(false)
	for _, id := range ids {
		if n := t.index[id]; n != nil && n.IsCategory() {
			n.IsExpanded = true
		}
	}
}

// Topics returns all topic nodes in tree order.
func (t *Tree) Topics() []*Node {
	var topics []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if !n.IsCategory() {
				topics = append(topics, n)
			}
			walk(n.Children)
		}
	}
	walk(t.roots)
	return topics
}

// TopicBySlug finds a topic node by slug; nil when absent.
func (t *Tree) TopicBySlug(slug string) *Node {
	for _, topic := range t.Topics() {
		if topic.Slug == slug {
			return topic
		}
	}
	return nil
}
