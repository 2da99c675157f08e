// Package graph provides mutable multigraph containers with stable integer
// handles for nodes and edges.
//
// # Overview
//
// [Graph] is an undirected container; [DiGraph] is its directed sibling. Both
// are built on the same node and edge tables (see package slot): every node
// and edge is addressed by a handle ([NodeID], [EdgeID]) that stays valid
// across unrelated insertions and removals. Removing a node or edge leaves a
// hole, and the next allocation reuses the lowest hole before the handle
// space grows.
//
//	g := graph.New[string, float64]()
//	a := g.AddNode("a")
//	b := g.AddNode("b")
//	g.AddEdge(a, b, 1.5)
//	g.RemoveNode(a)    // edge (a, b) is removed with it
//	c := g.AddNode("c") // c == a: the hole is reused
//
// # Bounds and Counts
//
// [Graph.NodeBound] is one past the highest node handle ever issued;
// [Graph.NumNodes] is the number of live nodes. The same pair exists for
// edges. Bounds only shrink on [Graph.Clear].
//
// # Multigraph Policy
//
// A container is created as a multigraph unless [WithMultigraph] says
// otherwise. In a non-multigraph, inserting a second edge between the same
// pair of nodes overwrites the payload of the existing edge and returns its
// handle. For [Graph] the pair is unordered; for [DiGraph] it is ordered.
// Every bulk insertion path (edge lists, compose, substitution, contraction)
// goes through this policy.
//
// # Payloads
//
// Node payloads (V) and edge payloads (E) are opaque. They are stored and
// copied by assignment, so [Graph.Copy] and the subgraph operations share any
// referenced data with the source container.
//
// # State
//
// [Graph.State] captures the full container including holes, and [FromState]
// rebuilds a container with the same handles, holes and edge bound. Package
// codec puts the state on the wire as JSON, msgpack or BSON.
//
// # Structural Operations
//
//   - [Graph.Compose]: copy another graph in and attach it with extra edges
//   - [Graph.ContractNodes]: merge a node set into one node
//   - [Graph.SubstituteNodeWithSubgraph]: replace one node by a graph
//   - [Graph.SubgraphWithNodeMap], [Graph.Subgraph]: node-induced subgraphs
//   - [Graph.EdgeSubgraph]: edge-induced subgraph
//   - [Graph.ToDirected], [DiGraph.ToUndirected]: conversions
//
// Callback errors abort these operations immediately. Nothing is rolled
// back; the container is left valid but partially modified.
//
// # Concurrency
//
// Containers are not safe for concurrent use. Callers serialize access.
package graph
