package graph

import (
	"fmt"
	"slices"
)

// EdgeMapFunc picks the node of the substituted graph that an edge touching
// the replaced node should be reconnected to. It receives the edge's stored
// endpoints and payload and returns a handle in the substituted graph, or
// false to drop the edge.
type EdgeMapFunc[E any] func(source, target NodeID, weight E) (NodeID, bool, error)

// SubstituteOptions customizes SubstituteNodeWithSubgraph. A nil
// *SubstituteOptions keeps every node and copies payloads unchanged.
type SubstituteOptions[V, E any] struct {
	// NodeFilter reports whether a node of the substituted graph is copied.
	NodeFilter func(V) (bool, error)
	// EdgeWeightMap transforms each edge payload copied from the
	// substituted graph.
	EdgeWeightMap func(E) (E, error)
}

// SubstituteNodeWithSubgraph replaces node with a copy of other.
//
// Nodes of other that pass the filter are copied, then every edge of other
// whose endpoints were both copied. If no node survives the filter, node is
// removed and an empty map returned. Otherwise each edge touching node is
// passed to edgeMap: edges stored with node as target are handled first and
// become (source, image), then the remaining edges become (image, target).
// A self-loop on node counts as incoming only. Reconnected edges follow the
// multigraph policy. Finally node is removed.
//
// It returns the mapping from other's handles to the copies in g. An absent
// node gives ErrNotFound, as does an edgeMap result with no copy. Callback
// errors abort the operation without rollback.
func (g *Graph[V, E]) SubstituteNodeWithSubgraph(node NodeID, other *Graph[V, E], edgeMap EdgeMapFunc[E], opts *SubstituteOptions[V, E]) (map[NodeID]NodeID, error) {
	if !g.HasNode(node) {
		return nil, fmt.Errorf("substitute node %d: %w", node, ErrNotFound)
	}
	if opts == nil {
		opts = &SubstituteOptions[V, E]{}
	}
	if other == g {
		other = g.Copy()
	}

	out := make(map[NodeID]NodeID, other.NumNodes())
	for i, n := range other.nodes.All() {
		if opts.NodeFilter != nil {
			keep, err := opts.NodeFilter(n.weight)
			if err != nil {
				return out, fmt.Errorf("substitute: filter node %d: %w", i, err)
			}
			if !keep {
				continue
			}
		}
		out[NodeID(i)] = g.AddNode(n.weight)
	}
	if len(out) == 0 {
		g.RemoveNode(node)
		return out, nil
	}

	for i, e := range other.edges.All() {
		src, ok1 := out[e.source]
		dst, ok2 := out[e.target]
		if !ok1 || !ok2 {
			continue
		}
		w := e.weight
		if opts.EdgeWeightMap != nil {
			var err error
			if w, err = opts.EdgeWeightMap(w); err != nil {
				return out, fmt.Errorf("substitute: map edge %d: %w", i, err)
			}
		}
		g.insertOrUpdate(src, dst, w)
	}

	p := g.nodes.Ptr(int(node))
	incoming := slices.Clone(p.in)
	slices.Sort(incoming)
	var outgoing []EdgeID
	for _, id := range p.out {
		if !slices.Contains(incoming, id) {
			outgoing = append(outgoing, id)
		}
	}
	slices.Sort(outgoing)

	type reroute struct {
		id       EdgeID
		incoming bool
	}
	var edges []reroute
	for _, id := range incoming {
		edges = append(edges, reroute{id, true})
	}
	for _, id := range outgoing {
		edges = append(edges, reroute{id, false})
	}
	if edgeMap == nil {
		edges = nil
	}

	// Snapshot payloads first: reconnecting may overwrite them under the
	// non-multigraph policy.
	snap := make([]edge[E], len(edges))
	for i, r := range edges {
		snap[i], _ = g.edges.Get(int(r.id))
	}
	for i, r := range edges {
		e := snap[i]
		target, ok, err := edgeMap(e.source, e.target, e.weight)
		if err != nil {
			return out, fmt.Errorf("substitute: map edge (%d, %d): %w", e.source, e.target, err)
		}
		if !ok {
			continue
		}
		image, found := out[target]
		if !found {
			return out, fmt.Errorf("substitute: no image for node %d: %w", target, ErrNotFound)
		}
		if r.incoming {
			g.insertOrUpdate(e.source, image, e.weight)
		} else {
			g.insertOrUpdate(image, e.target, e.weight)
		}
	}
	g.RemoveNode(node)
	return out, nil
}
