package graph

// SubgraphWithNodeMap returns the subgraph induced by nodes together with a
// map from each new handle to the original handle. Absent and repeated
// handles are ignored. The new graph numbers its nodes from zero in
// ascending original order and keeps every edge whose endpoints are both
// selected. It inherits the multigraph flag; the attributes are shared only
// when preserveAttrs is set.
func (g *Graph[V, E]) SubgraphWithNodeMap(nodes []NodeID, preserveAttrs bool) (*Graph[V, E], map[NodeID]NodeID) {
	selected := make(map[NodeID]bool, len(nodes))
	for _, n := range nodes {
		if g.HasNode(n) {
			selected[n] = true
		}
	}
	opts := []Option{WithMultigraph(g.multigraph), WithCapacity(len(selected), 0)}
	if preserveAttrs {
		opts = append(opts, WithAttrs(g.attrs))
	}
	sub := New[V, E](opts...)

	fwd := make(map[NodeID]NodeID, len(selected))
	back := make(map[NodeID]NodeID, len(selected))
	for i, n := range g.nodes.All() {
		orig := NodeID(i)
		if !selected[orig] {
			continue
		}
		id := sub.AddNode(n.weight)
		fwd[orig] = id
		back[id] = orig
	}
	for _, e := range g.edges.All() {
		src, ok1 := fwd[e.source]
		dst, ok2 := fwd[e.target]
		if ok1 && ok2 {
			sub.addEdge(src, dst, e.weight)
		}
	}
	return sub, back
}

// Subgraph is SubgraphWithNodeMap without the node map.
func (g *Graph[V, E]) Subgraph(nodes []NodeID, preserveAttrs bool) *Graph[V, E] {
	sub, _ := g.SubgraphWithNodeMap(nodes, preserveAttrs)
	return sub
}

// EdgeSubgraph returns the subgraph induced by the listed node pairs. Pairs
// without an edge are ignored. The result is a copy of g, handles and holes
// included, reduced to the endpoints of the listed pairs and to every edge
// (parallel ones too) whose endpoints form a listed pair in either order.
func (g *Graph[V, E]) EdgeSubgraph(pairs [][2]NodeID) *Graph[V, E] {
	keepNodes := make(map[NodeID]bool)
	keepPairs := make(map[[2]NodeID]bool)
	for _, p := range pairs {
		if !g.HasEdge(p[0], p[1]) {
			continue
		}
		keepNodes[p[0]] = true
		keepNodes[p[1]] = true
		keepPairs[p] = true
	}

	out := g.Copy()
	for _, n := range g.NodeIndices() {
		if !keepNodes[n] {
			out.RemoveNode(n)
		}
	}
	for i, e := range g.edges.All() {
		if !keepPairs[[2]NodeID{e.source, e.target}] && !keepPairs[[2]NodeID{e.target, e.source}] {
			out.removeEdge(EdgeID(i))
		}
	}
	return out
}
