package graph

import (
	"maps"
	"slices"
)

// DiGraph is the directed sibling of Graph. It shares the same store; only
// edge lookup and iteration respect direction. In a non-multigraph, (a, b)
// and (b, a) are distinct pairs.
//
// The zero value is not usable - use NewDiGraph.
type DiGraph[V, E any] struct {
	store[V, E]
}

// NewDiGraph creates an empty directed graph.
func NewDiGraph[V, E any](opts ...Option) *DiGraph[V, E] {
	return &DiGraph[V, E]{store: newStore[V, E](true, opts)}
}

// Copy returns a shallow copy with identical handles, holes and flags.
func (d *DiGraph[V, E]) Copy() *DiGraph[V, E] {
	return &DiGraph[V, E]{store: d.clone()}
}

// Successors returns the distinct targets of edges leaving n, ascending.
func (d *DiGraph[V, E]) Successors(n NodeID) []NodeID {
	p := d.nodes.Ptr(int(n))
	if p == nil {
		return nil
	}
	return d.distinct(p.out, func(e edge[E]) NodeID { return e.target })
}

// Predecessors returns the distinct sources of edges entering n, ascending.
func (d *DiGraph[V, E]) Predecessors(n NodeID) []NodeID {
	p := d.nodes.Ptr(int(n))
	if p == nil {
		return nil
	}
	return d.distinct(p.in, func(e edge[E]) NodeID { return e.source })
}

func (d *DiGraph[V, E]) distinct(ids []EdgeID, end func(edge[E]) NodeID) []NodeID {
	seen := make(map[NodeID]struct{}, len(ids))
	for _, id := range ids {
		e, _ := d.edges.Get(int(id))
		seen[end(e)] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// OutEdges returns the edges leaving n in insertion order.
func (d *DiGraph[V, E]) OutEdges(n NodeID) []WeightedEdge[E] {
	p := d.nodes.Ptr(int(n))
	if p == nil {
		return nil
	}
	return d.weighted(p.out)
}

// InEdges returns the edges entering n in insertion order.
func (d *DiGraph[V, E]) InEdges(n NodeID) []WeightedEdge[E] {
	p := d.nodes.Ptr(int(n))
	if p == nil {
		return nil
	}
	return d.weighted(p.in)
}

func (d *DiGraph[V, E]) weighted(ids []EdgeID) []WeightedEdge[E] {
	out := make([]WeightedEdge[E], len(ids))
	for i, id := range ids {
		e, _ := d.edges.Get(int(id))
		out[i] = WeightedEdge[E]{Source: e.source, Target: e.target, Weight: e.weight}
	}
	return out
}

// OutDegree returns the number of edges leaving n.
func (d *DiGraph[V, E]) OutDegree(n NodeID) int {
	if p := d.nodes.Ptr(int(n)); p != nil {
		return len(p.out)
	}
	return 0
}

// InDegree returns the number of edges entering n.
func (d *DiGraph[V, E]) InDegree(n NodeID) int {
	if p := d.nodes.Ptr(int(n)); p != nil {
		return len(p.in)
	}
	return 0
}

// Adj maps each successor of n to the payload of an edge reaching it.
func (d *DiGraph[V, E]) Adj(n NodeID) map[NodeID]E {
	out := make(map[NodeID]E)
	for _, e := range d.OutEdges(n) {
		out[e.Target] = e.Weight
	}
	return out
}
