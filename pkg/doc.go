// Package pkg holds the libraries behind stablegraph: graph containers whose
// node and edge handles survive removals, plus the plumbing to move them in
// and out of a process.
//
// # Overview
//
// The typical data flow:
//
//	edge list / adjacency matrix
//	         ↓
//	    [graph] package (Graph, DiGraph, structural operations)
//	         ↓
//	    [codec] package (JSON, MessagePack, BSON documents)
//	         ↓
//	    [snapshot] package (file, Badger, Redis, MongoDB backends)
//
// # Quick Start
//
//	g := graph.New[string, float64]()
//	a := g.AddNode("a")
//	b := g.AddNode("b")
//	g.AddEdge(a, b, 1.5)
//	g.RemoveNode(a)
//
//	data, _ := codec.Marshal(codec.JSON, codec.GraphDocument(g))
//	doc, _ := codec.Unmarshal[string, float64](codec.JSON, data)
//	h, _ := doc.Graph() // b keeps its handle, node 0 stays a hole
//
// # Main Packages
//
// [slot] - Generic arena with stable indices and lowest-hole reuse. The
// building block for node and edge storage.
//
// [graph] - Undirected and directed multigraph containers, the multigraph
// policy, state extraction and restoration, and structural operations
// (subgraphs, compose, contraction, substitution, edge-list extension).
//
// [codec] - Versioned documents wrapping a graph state, encoded as JSON,
// MessagePack or BSON. Holes in the edge table are written as nulls.
//
// [matrix] - Conversion between graphs and gonum adjacency matrices.
//
// [edgelist] - Reading and writing plain-text edge lists.
//
// [snapshot] - Keyed persistence of documents over pluggable backends.
//
// [render/dot] - Graphviz DOT output and in-process SVG rendering.
//
// ## Infrastructure
//
// [errors] - Coded errors shared by the CLI and libraries, plus input
// validation for paths and keys.
//
// [observability] - Hooks around codec and snapshot operations, with a
// Prometheus implementation.
//
// [buildinfo] - Version and VCS information stamped at build time.
//
// # Testing
//
//	go test ./pkg/...
//	STABLEGRAPH_MONGO_URI=mongodb://localhost:27017 go test ./pkg/snapshot/
//
// [slot]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/slot
// [graph]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/graph
// [codec]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/codec
// [matrix]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/matrix
// [edgelist]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/edgelist
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/snapshot
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/render/dot
// [errors]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stablegraph/pkg/buildinfo
package pkg
