package graph

// ToDirected returns a directed copy of g. Node handles are renumbered from
// zero in ascending order; each edge becomes a forward and a backward
// directed edge sharing the payload. The multigraph flag is kept, so in a
// non-multigraph a self-loop yields a single directed self-loop.
func (g *Graph[V, E]) ToDirected() *DiGraph[V, E] {
	d := NewDiGraph[V, E](
		WithMultigraph(g.multigraph),
		WithAttrs(g.attrs),
		WithCapacity(g.NumNodes(), 2*g.NumEdges()),
	)
	ids := make(map[NodeID]NodeID, g.NumNodes())
	for i, n := range g.nodes.All() {
		ids[NodeID(i)] = d.AddNode(n.weight)
	}
	for _, e := range g.edges.All() {
		src, dst := ids[e.source], ids[e.target]
		d.insertOrUpdate(src, dst, e.weight)
		d.insertOrUpdate(dst, src, e.weight)
	}
	return d
}

// ToUndirected returns an undirected copy of d. Node handles are
// renumbered from zero in ascending order. Edges are added in ascending
// handle order under the multigraph policy, so in a non-multigraph the
// edges (a, b) and (b, a) collapse into one carrying the later payload.
func (d *DiGraph[V, E]) ToUndirected() *Graph[V, E] {
	g := New[V, E](
		WithMultigraph(d.multigraph),
		WithAttrs(d.attrs),
		WithCapacity(d.NumNodes(), d.NumEdges()),
	)
	ids := make(map[NodeID]NodeID, d.NumNodes())
	for i, n := range d.nodes.All() {
		ids[NodeID(i)] = g.AddNode(n.weight)
	}
	for _, e := range d.edges.All() {
		g.insertOrUpdate(ids[e.source], ids[e.target], e.weight)
	}
	return g
}
