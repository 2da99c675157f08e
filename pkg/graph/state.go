package graph

import "fmt"

// NodeEntry is one live node in a State.
type NodeEntry[V any] struct {
	Index  NodeID
	Weight V
}

// EdgeEntry is one live edge in a State.
type EdgeEntry[E any] struct {
	Source NodeID
	Target NodeID
	Weight E
}

// State is the complete contents of a container, holes included.
//
// Nodes lists every live node in ascending handle order. Edges has one
// element per edge handle below the edge bound; removed edges are nil.
// NodesRemoved mirrors the container flag of the same name.
//
// Holes after the highest live node are not recorded, so a rebuilt
// container's node bound is the highest encoded handle plus one.
type State[V, E any] struct {
	Nodes        []NodeEntry[V]
	Edges        []*EdgeEntry[E]
	NodesRemoved bool
}

// State captures the container for serialization.
func (s *store[V, E]) State() State[V, E] {
	st := State[V, E]{
		Nodes:        make([]NodeEntry[V], 0, s.nodes.Len()),
		Edges:        make([]*EdgeEntry[E], s.edges.Bound()),
		NodesRemoved: s.nodesRemoved,
	}
	for i, n := range s.nodes.All() {
		st.Nodes = append(st.Nodes, NodeEntry[V]{Index: NodeID(i), Weight: n.weight})
	}
	for i, e := range s.edges.All() {
		st.Edges[i] = &EdgeEntry[E]{Source: e.source, Target: e.target, Weight: e.weight}
	}
	return st
}

// FromState rebuilds an undirected graph from st. Options set the flags
// that are not part of the state (multigraph, attributes, capacity).
func FromState[V, E any](st State[V, E], opts ...Option) (*Graph[V, E], error) {
	g := New[V, E](opts...)
	if err := g.restore(st); err != nil {
		return nil, err
	}
	return g, nil
}

// DiGraphFromState rebuilds a directed graph from st.
func DiGraphFromState[V, E any](st State[V, E], opts ...Option) (*DiGraph[V, E], error) {
	d := NewDiGraph[V, E](opts...)
	if err := d.restore(st); err != nil {
		return nil, err
	}
	return d, nil
}

// restore fills an empty store from st using forward allocation only:
// placeholder nodes open the gaps and are freed once every real node has
// its handle, and edge holes are placeholder self-loops on one scratch node
// whose removal frees them all at once.
func (s *store[V, E]) restore(st State[V, E]) error {
	if len(st.Nodes) == 0 {
		for i, e := range st.Edges {
			if e != nil {
				return fmt.Errorf("edge %d without nodes: %w", i, ErrInvalidState)
			}
		}
		s.nodesRemoved = st.NodesRemoved
		return nil
	}

	var zero V
	switch {
	case !st.NodesRemoved:
		for i, n := range st.Nodes {
			if n.Index != NodeID(i) {
				return fmt.Errorf("node %d at position %d without holes: %w", n.Index, i, ErrInvalidState)
			}
			s.AddNode(n.Weight)
		}
	case len(st.Nodes) == 1:
		h := st.Nodes[0].Index
		if h < 0 {
			return fmt.Errorf("node %d: %w", h, ErrInvalidState)
		}
		for range int(h) {
			s.AddNode(zero)
		}
		s.AddNode(st.Nodes[0].Weight)
		for i := range h {
			s.removeNode(i)
		}
	default:
		var placeholders []NodeID
		prev := NodeID(-1)
		for _, n := range st.Nodes {
			if n.Index <= prev {
				return fmt.Errorf("node %d after %d: %w", n.Index, prev, ErrInvalidState)
			}
			for int(n.Index) > s.nodes.Bound() {
				placeholders = append(placeholders, s.AddNode(zero))
			}
			s.AddNode(n.Weight)
			prev = n.Index
		}
		for _, p := range placeholders {
			s.removeNode(p)
		}
	}

	bound := s.nodes.Bound()
	scratch := s.AddNode(zero)
	var none E
	for i, e := range st.Edges {
		if e == nil {
			s.addEdge(scratch, scratch, none)
			continue
		}
		if e.Source == scratch || e.Target == scratch || !s.HasNode(e.Source) || !s.HasNode(e.Target) {
			return fmt.Errorf("edge %d (%d, %d): %w", i, e.Source, e.Target, ErrInvalidState)
		}
		s.addEdge(e.Source, e.Target, e.Weight)
	}
	s.removeNode(scratch)
	s.nodes.TrimTo(bound)
	s.nodesRemoved = st.NodesRemoved
	return nil
}
