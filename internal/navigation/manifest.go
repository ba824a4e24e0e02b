package navigation

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
)

// LoadManifest reads and validates the topic manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest JSON. Node order fields
// determine sibling ordering; nodes without an id get a generated one.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	seen := map[string]struct{}{}
	if err := prepareNodes(m.Nodes, nil, seen); err != nil {
		return nil, err
	}

	return &m, nil
}

// prepareNodes validates a sibling group, fills in generated ids, links
// parents, and sorts by the order field (stable, so manifest order breaks
// ties).
func prepareNodes(nodes []*Node, parent *Node, seen map[string]struct{}) error {
	for _, n := range nodes {
		if n == nil {
			return fmt.Errorf("manifest: null node entry")
		}
		if n.Title == "" {
			return fmt.Errorf("manifest: node %q has no title", n.ID)
		}
		if n.Type != NodeCategory && n.Type != NodeTopic {
			return fmt.Errorf("manifest: node %q has unknown type %q", n.Title, n.Type)
		}
		if n.Type == NodeTopic {
			if len(n.Children) > 0 {
				return fmt.Errorf("manifest: topic %q has children; only categories may", n.Title)
			}
			if n.Slug == "" {
				return fmt.Errorf("manifest: topic %q has no slug", n.Title)
			}
			if n.Level != "" && !ValidTier(n.Level) {
				return fmt.Errorf("manifest: topic %q has unknown skill tier %q", n.Title, n.Level)
			}
		}

		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("manifest: duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}

		n.parent = parent
		if err := prepareNodes(n.Children, n, seen); err != nil {
			return err
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Order < nodes[j].Order
	})
	return nil
}
