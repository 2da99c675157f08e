package graph

import (
	"fmt"
	"maps"
	"slices"
)

// Attachment is an extra edge added by Compose: it connects a node of the
// receiving graph to Node, a handle in the composed graph.
type Attachment[E any] struct {
	Node   NodeID
	Weight E
}

// ComposeOptions customizes Compose. A nil *ComposeOptions copies payloads
// unchanged.
type ComposeOptions[V, E any] struct {
	// NodeMap transforms each node payload copied from the other graph.
	NodeMap func(V) (V, error)
	// EdgeMap transforms each edge payload copied from the other graph.
	EdgeMap func(E) (E, error)
}

// Compose copies every node and edge of other into g and then adds one edge
// per attach entry, from the key (a node of g) to the image of the
// attachment's node. Nodes are copied in ascending handle order, then
// edges; attachments are applied in ascending order of their key. All edge
// insertions follow g's multigraph policy.
//
// It returns the mapping from other's node handles to their handles in g.
// Attachments are validated before anything is copied: an absent key gives
// ErrInvalidEndpoint and an absent other node gives ErrNotFound. A callback
// error aborts the copy midway without rollback.
func (g *Graph[V, E]) Compose(other *Graph[V, E], attach map[NodeID]Attachment[E], opts *ComposeOptions[V, E]) (map[NodeID]NodeID, error) {
	if opts == nil {
		opts = &ComposeOptions[V, E]{}
	}
	if other == g {
		other = g.Copy()
	}
	keys := slices.Sorted(maps.Keys(attach))
	for _, k := range keys {
		if !g.HasNode(k) {
			return nil, fmt.Errorf("compose: attach from %d: %w", k, ErrInvalidEndpoint)
		}
		if a := attach[k]; !other.HasNode(a.Node) {
			return nil, fmt.Errorf("compose: attach to %d: %w", a.Node, ErrNotFound)
		}
	}

	nodeMap := make(map[NodeID]NodeID, other.NumNodes())
	for i, n := range other.nodes.All() {
		w := n.weight
		if opts.NodeMap != nil {
			var err error
			if w, err = opts.NodeMap(w); err != nil {
				return nodeMap, fmt.Errorf("compose: map node %d: %w", i, err)
			}
		}
		nodeMap[NodeID(i)] = g.AddNode(w)
	}
	for i, e := range other.edges.All() {
		w := e.weight
		if opts.EdgeMap != nil {
			var err error
			if w, err = opts.EdgeMap(w); err != nil {
				return nodeMap, fmt.Errorf("compose: map edge %d: %w", i, err)
			}
		}
		g.insertOrUpdate(nodeMap[e.source], nodeMap[e.target], w)
	}
	for _, k := range keys {
		a := attach[k]
		g.insertOrUpdate(k, nodeMap[a.Node], a.Weight)
	}
	return nodeMap, nil
}
