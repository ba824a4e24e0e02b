// Package navigation models the static category/topic tree the viewer
// renders as its sidebar, including expand/collapse and selection state.
package navigation

// NodeType distinguishes the two node kinds in the tree.
type NodeType string

const (
	NodeCategory NodeType = "category"
	NodeTopic    NodeType = "topic"
)

// SkillTier classifies topic difficulty.
type SkillTier string

const (
	TierFundamentals SkillTier = "fundamentals"
	TierIntermediate SkillTier = "intermediate"
	TierAdvanced     SkillTier = "advanced"
	TierExpert       SkillTier = "expert"
)

// ValidTier reports whether t is one of the four known tiers.
func ValidTier(t SkillTier) bool {
	switch t {
	case TierFundamentals, TierIntermediate, TierAdvanced, TierExpert:
		return true
	}
	return false
}

// Node is one entry in the navigation tree. Only category nodes carry
// children. Expansion and selection flags are mutated in place by Tree
// operations; everything else is immutable after load.
type Node struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Type       NodeType  `json:"type"`
	Level      SkillTier `json:"level,omitempty"`
	Order      int       `json:"order"`
	Tags       []string  `json:"tags,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	IsExpanded bool      `json:"is_expanded,omitempty"`
	IsSelected bool      `json:"is_selected,omitempty"`
	Children   []*Node   `json:"children,omitempty"`

	parent *Node
}

// Parent returns the node's parent category, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// IsCategory reports whether the node is a category.
func (n *Node) IsCategory() bool { return n.Type == NodeCategory }

// Manifest is the on-disk JSON shape of the topic tree.
type Manifest struct {
	Version int     `json:"version"`
	Title   string  `json:"title,omitempty"`
	Nodes   []*Node `json:"nodes"`
}
