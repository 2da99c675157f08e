package graph

import (
	"maps"
	"slices"
)

// Graph is an undirected multigraph with stable node and edge handles.
// Edges keep the (source, target) order they were created with, but the
// order carries no meaning: every query treats (a, b) and (b, a) alike.
//
// The zero value is not usable - use New.
// Graph is not safe for concurrent use without external synchronization.
type Graph[V, E any] struct {
	store[V, E]
}

// New creates an empty undirected graph. It is a multigraph unless
// WithMultigraph(false) is given.
func New[V, E any](opts ...Option) *Graph[V, E] {
	return &Graph[V, E]{store: newStore[V, E](false, opts)}
}

// Copy returns a shallow copy with identical handles, holes and flags.
// Payloads are shared with g.
func (g *Graph[V, E]) Copy() *Graph[V, E] {
	return &Graph[V, E]{store: g.clone()}
}

// IncidentEdges returns every edge touching n. A self-loop is listed once.
// It returns nil if n is absent.
func (g *Graph[V, E]) IncidentEdges(n NodeID) []EdgeID {
	return g.incident(n)
}

// IncidentEdgeIndexMap maps each edge touching n to its endpoints, oriented
// so that Source is n, and its payload.
func (g *Graph[V, E]) IncidentEdgeIndexMap(n NodeID) map[EdgeID]WeightedEdge[E] {
	ids := g.incident(n)
	out := make(map[EdgeID]WeightedEdge[E], len(ids))
	for _, id := range ids {
		e, _ := g.edges.Get(int(id))
		out[id] = WeightedEdge[E]{Source: n, Target: otherEnd(e, n), Weight: e.weight}
	}
	return out
}

// Neighbors returns the distinct nodes adjacent to n in ascending order.
// A node with a self-loop is its own neighbor.
func (g *Graph[V, E]) Neighbors(n NodeID) []NodeID {
	seen := make(map[NodeID]struct{})
	for _, id := range g.incident(n) {
		e, _ := g.edges.Get(int(id))
		seen[otherEnd(e, n)] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Adj maps each neighbor of n to the payload of an edge connecting them.
// With parallel edges the most recently listed edge wins.
func (g *Graph[V, E]) Adj(n NodeID) map[NodeID]E {
	out := make(map[NodeID]E)
	for _, id := range g.incident(n) {
		e, _ := g.edges.Get(int(id))
		out[otherEnd(e, n)] = e.weight
	}
	return out
}

// Degree returns the number of edge ends at n. A self-loop counts twice.
// It returns 0 if n is absent.
func (g *Graph[V, E]) Degree(n NodeID) int {
	d := 0
	for _, id := range g.incident(n) {
		e, _ := g.edges.Get(int(id))
		if e.source == e.target {
			d += 2
		} else {
			d++
		}
	}
	return d
}
