package graph

import "errors"

var (
	// ErrNotFound is returned when a node or edge handle is not live, or when
	// a mapping callback names a node that has no image.
	ErrNotFound = errors.New("graph: not found")

	// ErrNoEdgeBetweenNodes is returned by pair-oriented edge queries and
	// updates ([Graph.Edge], [Graph.UpdateEdge], [Graph.RemoveEdge]) when no
	// edge connects the two nodes.
	ErrNoEdgeBetweenNodes = errors.New("graph: no edge between nodes")

	// ErrInvalidEndpoint is returned when an edge would reference a node that
	// is not live.
	ErrInvalidEndpoint = errors.New("graph: invalid endpoint")

	// ErrInvalidState is returned by [FromState] when the encoded state is
	// inconsistent (unordered node handles, dangling edge endpoints).
	ErrInvalidState = errors.New("graph: invalid state")
)
