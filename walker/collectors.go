package walker

import (
	"github.com/erraggy/oasmodel/model"
	"github.com/erraggy/oasmodel/nodepath"
)

// NodeInfo is a node found by a collector together with its location.
type NodeInfo struct {
	Node *model.Node
	// Path is the node's path relative to the walk root.
	Path nodepath.Path
	// Name is the key for nodes held in keyed collections.
	Name string
}

// Collect walks root and returns, in pre-order, every node for which match
// returns true. A nil match collects every node.
func Collect(root *model.Node, match func(*model.Node) bool, opts ...Option) ([]NodeInfo, error) {
	out := make([]NodeInfo, 0)
	table := NewTable[Visitor]("collect").Otherwise(func(wc *WalkContext, n *model.Node) Action {
		if match == nil || match(n) {
			out = append(out, NodeInfo{Node: n, Path: wc.Path(), Name: wc.Name()})
		}
		return Continue
	})
	if err := Walk(root, table, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectKind returns every node of the given kinds below and including root.
func CollectKind(root *model.Node, kinds ...model.Kind) ([]NodeInfo, error) {
	want := make(map[model.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	return Collect(root, func(n *model.Node) bool { return want[n.Kind()] })
}

// CollectRefs returns every node carrying a "$ref" property.
func CollectRefs(root *model.Node) ([]NodeInfo, error) {
	return Collect(root, func(n *model.Node) bool { return n.Has("$ref") })
}
