package codec

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

// Version is the layout version written by this package. Decoding accepts
// any version up to and including it.
const Version = 1

// Document is the unit of serialization. Besides the container state it
// records what is needed to construct an equivalent empty container: the
// direction, the multigraph flag, the graph-level attribute and the bounds
// at encode time as capacity hints.
type Document[V, E any] struct {
	ID            uuid.UUID
	Version       int
	Directed      bool
	Multigraph    bool
	Attrs         any
	NodeCountHint int
	EdgeCountHint int
	State         graph.State[V, E]
}

// GraphDocument captures g in a new document with a fresh random ID.
func GraphDocument[V, E any](g *graph.Graph[V, E]) *Document[V, E] {
	return &Document[V, E]{
		ID:            uuid.New(),
		Version:       Version,
		Multigraph:    g.Multigraph(),
		Attrs:         g.Attrs(),
		NodeCountHint: g.NodeBound(),
		EdgeCountHint: g.EdgeBound(),
		State:         g.State(),
	}
}

// DiGraphDocument captures d in a new document with a fresh random ID.
func DiGraphDocument[V, E any](d *graph.DiGraph[V, E]) *Document[V, E] {
	return &Document[V, E]{
		ID:            uuid.New(),
		Version:       Version,
		Directed:      true,
		Multigraph:    d.Multigraph(),
		Attrs:         d.Attrs(),
		NodeCountHint: d.NodeBound(),
		EdgeCountHint: d.EdgeBound(),
		State:         d.State(),
	}
}

// Graph rebuilds the undirected container described by doc.
func (doc *Document[V, E]) Graph() (*graph.Graph[V, E], error) {
	if doc.Directed {
		return nil, fmt.Errorf("%w: document %s is directed", ErrDirectionMismatch, doc.ID)
	}
	return graph.FromState(doc.State, doc.options()...)
}

// DiGraph rebuilds the directed container described by doc.
func (doc *Document[V, E]) DiGraph() (*graph.DiGraph[V, E], error) {
	if !doc.Directed {
		return nil, fmt.Errorf("%w: document %s is undirected", ErrDirectionMismatch, doc.ID)
	}
	return graph.DiGraphFromState(doc.State, doc.options()...)
}

func (doc *Document[V, E]) options() []graph.Option {
	return []graph.Option{
		graph.WithMultigraph(doc.Multigraph),
		graph.WithAttrs(doc.Attrs),
		graph.WithCapacity(max(doc.NodeCountHint, 0), max(doc.EdgeCountHint, 0)),
	}
}

func (doc *Document[V, E]) wire() wireDocument[V, E] {
	return wireDocument[V, E]{
		ID:            doc.ID.String(),
		Version:       doc.Version,
		Directed:      doc.Directed,
		Multigraph:    doc.Multigraph,
		Attrs:         doc.Attrs,
		NodeCountHint: doc.NodeCountHint,
		EdgeCountHint: doc.EdgeCountHint,
		State:         toWireState(doc.State),
	}
}

func fromWire[V, E any](w wireDocument[V, E]) (*Document[V, E], error) {
	if w.Version > Version {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrUnsupportedVersion, w.Version, Version)
	}
	doc := &Document[V, E]{
		Version:       w.Version,
		Directed:      w.Directed,
		Multigraph:    w.Multigraph,
		Attrs:         w.Attrs,
		NodeCountHint: w.NodeCountHint,
		EdgeCountHint: w.EdgeCountHint,
		State:         w.State.state(),
	}
	if w.ID != "" {
		id, err := uuid.Parse(w.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: id: %v", ErrMalformed, err)
		}
		doc.ID = id
	}
	return doc, nil
}
