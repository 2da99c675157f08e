package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/stablegraph/pkg/slot"
)

// NodeID is a stable node handle.
type NodeID int

// EdgeID is a stable edge handle.
type EdgeID int

// WeightedEdge is an edge's endpoints together with its payload.
type WeightedEdge[E any] struct {
	Source NodeID
	Target NodeID
	Weight E
}

type node[V any] struct {
	weight V
	out    []EdgeID // edges stored with this node as source
	in     []EdgeID // edges stored with this node as target
}

type edge[E any] struct {
	source NodeID
	target NodeID
	weight E
}

// store holds the node and edge tables shared by Graph and DiGraph.
// A self-loop is listed in both out and in of its node.
type store[V, E any] struct {
	nodes        *slot.Table[node[V]]
	edges        *slot.Table[edge[E]]
	directed     bool
	multigraph   bool
	nodesRemoved bool
	attrs        any
}

func newStore[V, E any](directed bool, opts []Option) store[V, E] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return store[V, E]{
		nodes:      slot.New[node[V]](cfg.nodeCap),
		edges:      slot.New[edge[E]](cfg.edgeCap),
		directed:   directed,
		multigraph: cfg.multigraph,
		attrs:      cfg.attrs,
	}
}

// =============================================================================
// Properties
// =============================================================================

// Multigraph reports whether parallel edges are allowed.
func (s *store[V, E]) Multigraph() bool { return s.multigraph }

// NodesRemoved reports whether a node was ever removed (or the container
// cleared). It selects the decoding path used by FromState.
func (s *store[V, E]) NodesRemoved() bool { return s.nodesRemoved }

// Attrs returns the graph-level attribute value.
func (s *store[V, E]) Attrs() any { return s.attrs }

// SetAttrs replaces the graph-level attribute value.
func (s *store[V, E]) SetAttrs(attrs any) { s.attrs = attrs }

// NodeBound returns one past the highest node handle ever issued.
func (s *store[V, E]) NodeBound() int { return s.nodes.Bound() }

// NumNodes returns the number of live nodes.
func (s *store[V, E]) NumNodes() int { return s.nodes.Len() }

// EdgeBound returns one past the highest edge handle ever issued.
func (s *store[V, E]) EdgeBound() int { return s.edges.Bound() }

// NumEdges returns the number of live edges.
func (s *store[V, E]) NumEdges() int { return s.edges.Len() }

// =============================================================================
// Nodes
// =============================================================================

// AddNode adds a node and returns its handle. The lowest free handle is
// reused first.
func (s *store[V, E]) AddNode(v V) NodeID {
	return NodeID(s.nodes.Insert(node[V]{weight: v}))
}

// AddNodes adds each payload in order and returns the new handles.
func (s *store[V, E]) AddNodes(vs []V) []NodeID {
	out := make([]NodeID, len(vs))
	for i, v := range vs {
		out[i] = s.AddNode(v)
	}
	return out
}

// HasNode reports whether n is a live node.
func (s *store[V, E]) HasNode(n NodeID) bool { return s.nodes.Contains(int(n)) }

// Node returns the payload of n.
func (s *store[V, E]) Node(n NodeID) (V, error) {
	nd, ok := s.nodes.Get(int(n))
	if !ok {
		var zero V
		return zero, fmt.Errorf("node %d: %w", n, ErrNotFound)
	}
	return nd.weight, nil
}

// SetNode replaces the payload of n.
func (s *store[V, E]) SetNode(n NodeID, v V) error {
	p := s.nodes.Ptr(int(n))
	if p == nil {
		return fmt.Errorf("node %d: %w", n, ErrNotFound)
	}
	p.weight = v
	return nil
}

// RemoveNode removes n and every edge incident to it. Removing an absent
// node is a no-op.
func (s *store[V, E]) RemoveNode(n NodeID) {
	if s.removeNode(n) {
		s.nodesRemoved = true
	}
}

// RemoveNodes removes every listed node, skipping absent ones.
func (s *store[V, E]) RemoveNodes(ns []NodeID) {
	for _, n := range ns {
		s.RemoveNode(n)
	}
}

func (s *store[V, E]) removeNode(n NodeID) bool {
	p := s.nodes.Ptr(int(n))
	if p == nil {
		return false
	}
	ids := append(slices.Clone(p.out), p.in...)
	for _, id := range ids {
		s.removeEdge(id)
	}
	s.nodes.Remove(int(n))
	return true
}

// NodeIndices returns the live node handles in ascending order.
func (s *store[V, E]) NodeIndices() []NodeID {
	out := make([]NodeID, 0, s.nodes.Len())
	for i := range s.nodes.All() {
		out = append(out, NodeID(i))
	}
	return out
}

// Nodes returns the live node payloads in ascending handle order.
func (s *store[V, E]) Nodes() []V {
	out := make([]V, 0, s.nodes.Len())
	for _, n := range s.nodes.All() {
		out = append(out, n.weight)
	}
	return out
}

// FindNode returns the lowest node whose payload satisfies match.
func (s *store[V, E]) FindNode(match func(V) bool) (NodeID, bool) {
	for i, n := range s.nodes.All() {
		if match(n.weight) {
			return NodeID(i), true
		}
	}
	return 0, false
}

// FilterNodes returns the nodes whose payload satisfies keep, in ascending
// order. The first error from keep aborts the scan.
func (s *store[V, E]) FilterNodes(keep func(V) (bool, error)) ([]NodeID, error) {
	var out []NodeID
	for i, n := range s.nodes.All() {
		ok, err := keep(n.weight)
		if err != nil {
			return nil, fmt.Errorf("filter node %d: %w", i, err)
		}
		if ok {
			out = append(out, NodeID(i))
		}
	}
	return out, nil
}

// ensureNode adds zero-payload nodes until n is live.
func (s *store[V, E]) ensureNode(n NodeID) error {
	if n < 0 {
		return fmt.Errorf("node %d: %w", n, ErrInvalidEndpoint)
	}
	var zero V
	for !s.HasNode(n) {
		s.AddNode(zero)
	}
	return nil
}

// =============================================================================
// Edges
// =============================================================================

// AddEdge connects a and b. Both nodes must be live. In a non-multigraph an
// existing edge between the pair has its payload replaced and its handle is
// returned.
func (s *store[V, E]) AddEdge(a, b NodeID, w E) (EdgeID, error) {
	if !s.HasNode(a) || !s.HasNode(b) {
		return 0, fmt.Errorf("add edge (%d, %d): %w", a, b, ErrInvalidEndpoint)
	}
	return s.insertOrUpdate(a, b, w), nil
}

// AddEdges adds each edge in order. On error the handles added so far are
// returned along with the error.
func (s *store[V, E]) AddEdges(edges []WeightedEdge[E]) ([]EdgeID, error) {
	out := make([]EdgeID, 0, len(edges))
	for _, e := range edges {
		id, err := s.AddEdge(e.Source, e.Target, e.Weight)
		if err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, nil
}

// AddEdgesNoData adds an edge with a zero payload for each pair.
func (s *store[V, E]) AddEdgesNoData(pairs [][2]NodeID) ([]EdgeID, error) {
	out := make([]EdgeID, 0, len(pairs))
	var zero E
	for _, p := range pairs {
		id, err := s.AddEdge(p[0], p[1], zero)
		if err != nil {
			return out, err
		}
		out = append(out, id)
	}
	return out, nil
}

// ExtendFromEdgeList adds an edge with a zero payload for each pair,
// creating zero-payload nodes until both endpoints exist.
func (s *store[V, E]) ExtendFromEdgeList(pairs [][2]NodeID) error {
	var zero E
	for _, p := range pairs {
		if err := s.extend(p[0], p[1], zero); err != nil {
			return err
		}
	}
	return nil
}

// ExtendFromWeightedEdgeList is ExtendFromEdgeList with payloads.
func (s *store[V, E]) ExtendFromWeightedEdgeList(edges []WeightedEdge[E]) error {
	for _, e := range edges {
		if err := s.extend(e.Source, e.Target, e.Weight); err != nil {
			return err
		}
	}
	return nil
}

func (s *store[V, E]) extend(a, b NodeID, w E) error {
	if err := s.ensureNode(min(a, b)); err != nil {
		return err
	}
	if err := s.ensureNode(max(a, b)); err != nil {
		return err
	}
	s.insertOrUpdate(a, b, w)
	return nil
}

// insertOrUpdate applies the multigraph policy. Endpoints must be live.
func (s *store[V, E]) insertOrUpdate(a, b NodeID, w E) EdgeID {
	if !s.multigraph {
		if id, ok := s.findEdge(a, b); ok {
			s.edges.Ptr(int(id)).weight = w
			return id
		}
	}
	return s.addEdge(a, b, w)
}

// addEdge allocates an edge without any policy. Endpoints must be live.
func (s *store[V, E]) addEdge(a, b NodeID, w E) EdgeID {
	id := EdgeID(s.edges.Insert(edge[E]{source: a, target: b, weight: w}))
	src := s.nodes.Ptr(int(a))
	src.out = append(src.out, id)
	dst := s.nodes.Ptr(int(b))
	dst.in = append(dst.in, id)
	return id
}

func (s *store[V, E]) removeEdge(id EdgeID) bool {
	e, ok := s.edges.Remove(int(id))
	if !ok {
		return false
	}
	if p := s.nodes.Ptr(int(e.source)); p != nil {
		p.out = deleteID(p.out, id)
	}
	if p := s.nodes.Ptr(int(e.target)); p != nil {
		p.in = deleteID(p.in, id)
	}
	return true
}

func deleteID(ids []EdgeID, id EdgeID) []EdgeID {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}

// RemoveEdgeByIndex removes the edge id. Removing an absent edge is a no-op.
func (s *store[V, E]) RemoveEdgeByIndex(id EdgeID) { s.removeEdge(id) }

// RemoveEdge removes one edge between a and b.
func (s *store[V, E]) RemoveEdge(a, b NodeID) error {
	id, ok := s.findEdge(a, b)
	if !ok {
		return fmt.Errorf("remove edge (%d, %d): %w", a, b, ErrNoEdgeBetweenNodes)
	}
	s.removeEdge(id)
	return nil
}

// RemoveEdgesFrom removes one edge for each listed pair. It stops at the
// first pair with no edge; earlier removals are kept.
func (s *store[V, E]) RemoveEdgesFrom(pairs [][2]NodeID) error {
	for _, p := range pairs {
		if err := s.RemoveEdge(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// ClearEdges removes every edge and keeps the nodes. The edge bound resets
// to zero.
func (s *store[V, E]) ClearEdges() {
	s.edges.Clear()
	for _, i := range s.nodes.Indices() {
		p := s.nodes.Ptr(i)
		p.out, p.in = nil, nil
	}
}

// Clear removes every node and edge and resets both bounds to zero.
// NodesRemoved reports true afterwards.
func (s *store[V, E]) Clear() {
	s.nodes.Clear()
	s.edges.Clear()
	s.nodesRemoved = true
}

// EdgeByIndex returns the payload of edge id.
func (s *store[V, E]) EdgeByIndex(id EdgeID) (E, error) {
	e, ok := s.edges.Get(int(id))
	if !ok {
		var zero E
		return zero, fmt.Errorf("edge %d: %w", id, ErrNotFound)
	}
	return e.weight, nil
}

// UpdateEdgeByIndex replaces the payload of edge id.
func (s *store[V, E]) UpdateEdgeByIndex(id EdgeID, w E) error {
	p := s.edges.Ptr(int(id))
	if p == nil {
		return fmt.Errorf("edge %d: %w", id, ErrNotFound)
	}
	p.weight = w
	return nil
}

// EdgeEndpoints returns the stored source and target of edge id.
func (s *store[V, E]) EdgeEndpoints(id EdgeID) (NodeID, NodeID, error) {
	e, ok := s.edges.Get(int(id))
	if !ok {
		return 0, 0, fmt.Errorf("edge %d: %w", id, ErrNotFound)
	}
	return e.source, e.target, nil
}

// HasEdge reports whether an edge connects a and b.
func (s *store[V, E]) HasEdge(a, b NodeID) bool {
	_, ok := s.findEdge(a, b)
	return ok
}

// Edge returns the payload of the first edge between a and b.
func (s *store[V, E]) Edge(a, b NodeID) (E, error) {
	id, ok := s.findEdge(a, b)
	if !ok {
		var zero E
		return zero, fmt.Errorf("edge (%d, %d): %w", a, b, ErrNoEdgeBetweenNodes)
	}
	e, _ := s.edges.Get(int(id))
	return e.weight, nil
}

// AllEdgeData returns the payloads of every edge between a and b.
func (s *store[V, E]) AllEdgeData(a, b NodeID) ([]E, error) {
	ids := s.between(a, b)
	if len(ids) == 0 {
		return nil, fmt.Errorf("edge (%d, %d): %w", a, b, ErrNoEdgeBetweenNodes)
	}
	out := make([]E, len(ids))
	for i, id := range ids {
		e, _ := s.edges.Get(int(id))
		out[i] = e.weight
	}
	return out, nil
}

// UpdateEdge replaces the payload of the first edge between a and b.
func (s *store[V, E]) UpdateEdge(a, b NodeID, w E) error {
	id, ok := s.findEdge(a, b)
	if !ok {
		return fmt.Errorf("update edge (%d, %d): %w", a, b, ErrNoEdgeBetweenNodes)
	}
	s.edges.Ptr(int(id)).weight = w
	return nil
}

// EdgeIndicesFromEndpoints returns every edge between a and b.
func (s *store[V, E]) EdgeIndicesFromEndpoints(a, b NodeID) []EdgeID {
	return s.between(a, b)
}

// EdgeIndices returns the live edge handles in ascending order.
func (s *store[V, E]) EdgeIndices() []EdgeID {
	out := make([]EdgeID, 0, s.edges.Len())
	for i := range s.edges.All() {
		out = append(out, EdgeID(i))
	}
	return out
}

// Edges returns the live edge payloads in ascending handle order.
func (s *store[V, E]) Edges() []E {
	out := make([]E, 0, s.edges.Len())
	for _, e := range s.edges.All() {
		out = append(out, e.weight)
	}
	return out
}

// EdgeList returns the (source, target) pair of every live edge in
// ascending handle order.
func (s *store[V, E]) EdgeList() [][2]NodeID {
	out := make([][2]NodeID, 0, s.edges.Len())
	for _, e := range s.edges.All() {
		out = append(out, [2]NodeID{e.source, e.target})
	}
	return out
}

// WeightedEdgeList returns every live edge in ascending handle order.
func (s *store[V, E]) WeightedEdgeList() []WeightedEdge[E] {
	out := make([]WeightedEdge[E], 0, s.edges.Len())
	for _, e := range s.edges.All() {
		out = append(out, WeightedEdge[E]{Source: e.source, Target: e.target, Weight: e.weight})
	}
	return out
}

// EdgeIndexMap maps every live edge handle to its endpoints and payload.
func (s *store[V, E]) EdgeIndexMap() map[EdgeID]WeightedEdge[E] {
	out := make(map[EdgeID]WeightedEdge[E], s.edges.Len())
	for i, e := range s.edges.All() {
		out[EdgeID(i)] = WeightedEdge[E]{Source: e.source, Target: e.target, Weight: e.weight}
	}
	return out
}

// FilterEdges returns the edges whose payload satisfies keep, in ascending
// order.
func (s *store[V, E]) FilterEdges(keep func(E) (bool, error)) ([]EdgeID, error) {
	var out []EdgeID
	for i, e := range s.edges.All() {
		ok, err := keep(e.weight)
		if err != nil {
			return nil, fmt.Errorf("filter edge %d: %w", i, err)
		}
		if ok {
			out = append(out, EdgeID(i))
		}
	}
	return out, nil
}

// HasParallelEdges reports whether any pair of nodes is connected by more
// than one edge. It is always false for a non-multigraph.
func (s *store[V, E]) HasParallelEdges() bool {
	if !s.multigraph {
		return false
	}
	for i := range s.nodes.All() {
		n := NodeID(i)
		seen := make(map[NodeID]bool)
		ids := s.nodes.Ptr(i).out
		if !s.directed {
			ids = s.incident(n)
		}
		for _, id := range ids {
			e, _ := s.edges.Get(int(id))
			other := otherEnd(e, n)
			if seen[other] {
				return true
			}
			seen[other] = true
		}
	}
	return false
}

// =============================================================================
// Incidence
// =============================================================================

// findEdge returns the first edge from a to b. For an undirected container
// either orientation matches.
func (s *store[V, E]) findEdge(a, b NodeID) (EdgeID, bool) {
	p := s.nodes.Ptr(int(a))
	if p == nil {
		return 0, false
	}
	for _, id := range p.out {
		if e, _ := s.edges.Get(int(id)); e.target == b {
			return id, true
		}
	}
	if s.directed {
		return 0, false
	}
	for _, id := range p.in {
		if e, _ := s.edges.Get(int(id)); e.source == b {
			return id, true
		}
	}
	return 0, false
}

func (s *store[V, E]) between(a, b NodeID) []EdgeID {
	p := s.nodes.Ptr(int(a))
	if p == nil {
		return nil
	}
	var out []EdgeID
	for _, id := range p.out {
		if e, _ := s.edges.Get(int(id)); e.target == b {
			out = append(out, id)
		}
	}
	if s.directed {
		return out
	}
	for _, id := range p.in {
		if e, _ := s.edges.Get(int(id)); e.source == b && e.source != e.target {
			out = append(out, id)
		}
	}
	return out
}

// incident returns every edge touching n, each exactly once: edges stored
// with n as source first, then the remaining edges with n as target.
func (s *store[V, E]) incident(n NodeID) []EdgeID {
	p := s.nodes.Ptr(int(n))
	if p == nil {
		return nil
	}
	out := slices.Clone(p.out)
	for _, id := range p.in {
		if e, _ := s.edges.Get(int(id)); e.source != e.target {
			out = append(out, id)
		}
	}
	return out
}

func otherEnd[E any](e edge[E], n NodeID) NodeID {
	if e.source == n {
		return e.target
	}
	return e.source
}

// =============================================================================
// Copying and Host Cooperation
// =============================================================================

// clone copies the tables, keeping every handle and hole. Payloads are
// shared by assignment.
func (s *store[V, E]) clone() store[V, E] {
	out := *s
	out.nodes = s.nodes.Clone()
	out.edges = s.edges.Clone()
	for _, i := range out.nodes.Indices() {
		p := out.nodes.Ptr(i)
		p.out = slices.Clone(p.out)
		p.in = slices.Clone(p.in)
	}
	return out
}

// Traverse calls visit for every live node payload, then every live edge
// payload, then the graph attributes when set. It stops at the first error.
// Hosts that trace references held by the container use it.
func (s *store[V, E]) Traverse(visit func(any) error) error {
	for _, n := range s.nodes.All() {
		if err := visit(n.weight); err != nil {
			return err
		}
	}
	for _, e := range s.edges.All() {
		if err := visit(e.weight); err != nil {
			return err
		}
	}
	if s.attrs != nil {
		return visit(s.attrs)
	}
	return nil
}

// Reset drops every reference the container holds and returns it to the
// freshly constructed state. Unlike Clear, NodesRemoved reports false
// afterwards and the attributes are dropped.
func (s *store[V, E]) Reset() {
	s.nodes.Clear()
	s.edges.Clear()
	s.nodesRemoved = false
	s.attrs = nil
}
