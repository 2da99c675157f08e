package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Compose
// =============================================================================

func TestCompose(t *testing.T) {
	g := New[string, string]()
	g.AddNodes([]string{"a", "b"})
	_, _ = g.AddEdge(0, 1, "ab")

	other := New[string, string]()
	other.AddNodes([]string{"x", "y"})
	_, _ = other.AddEdge(0, 1, "xy")

	m, err := g.Compose(other, map[NodeID]Attachment[string]{
		1: {Node: 0, Weight: "bx"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[NodeID]NodeID{0: 2, 1: 3}, m)
	assert.Equal(t, []string{"a", "b", "x", "y"}, g.Nodes())
	w, err := g.Edge(2, 3)
	require.NoError(t, err)
	assert.Equal(t, "xy", w)
	w, err = g.Edge(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "bx", w)
	assert.Equal(t, 2, other.NumNodes(), "other is untouched")
}

func TestComposeTransforms(t *testing.T) {
	g := New[string, int]()
	g.AddNode("root")
	other := New[string, int]()
	other.AddNodes([]string{"x", "y"})
	_, _ = other.AddEdge(0, 1, 2)

	_, err := g.Compose(other, nil, &ComposeOptions[string, int]{
		NodeMap: func(v string) (string, error) { return "sub/" + v, nil },
		EdgeMap: func(w int) (int, error) { return w * 10, nil },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "sub/x", "sub/y"}, g.Nodes())
	assert.Equal(t, []int{20}, g.Edges())
}

func TestComposeNonMultigraphPolicy(t *testing.T) {
	g := New[string, int](WithMultigraph(false))
	g.AddNode("root")
	other := New[string, int]()
	other.AddNodes([]string{"x", "y"})
	_, _ = other.AddEdge(0, 1, 1)
	_, _ = other.AddEdge(1, 0, 2)

	_, err := g.Compose(other, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumEdges())
	assert.Equal(t, []int{2}, g.Edges())
}

func TestComposeErrors(t *testing.T) {
	other := New[string, int]()
	other.AddNode("x")

	g := New[string, int]()
	g.AddNode("a")
	_, err := g.Compose(other, map[NodeID]Attachment[int]{7: {Node: 0}}, nil)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
	_, err = g.Compose(other, map[NodeID]Attachment[int]{0: {Node: 7}}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, g.NumNodes(), "attachments are checked before copying")

	boom := errors.New("boom")
	_, err = g.Compose(other, nil, &ComposeOptions[string, int]{
		NodeMap: func(string) (string, error) { return "", boom },
	})
	assert.ErrorIs(t, err, boom)
}

func TestComposeWithItself(t *testing.T) {
	g := New[string, int]()
	g.AddNodes([]string{"a", "b"})
	_, _ = g.AddEdge(0, 1, 1)

	m, err := g.Compose(g, map[NodeID]Attachment[int]{1: {Node: 0, Weight: 9}}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[NodeID]NodeID{0: 2, 1: 3}, m)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 3, g.NumEdges())
}

// =============================================================================
// ContractNodes
// =============================================================================

func contractFixture(multigraph bool) *Graph[string, string] {
	g := New[string, string](WithMultigraph(multigraph))
	g.AddNodes([]string{"n0", "n1", "n2"})
	_, _ = g.AddEdge(0, 2, "x")
	_, _ = g.AddEdge(1, 2, "y")
	return g
}

func TestContractCollapse(t *testing.T) {
	g := contractFixture(false)

	n, err := g.ContractNodes([]NodeID{0, 1}, "merged", nil)
	require.NoError(t, err)

	assert.False(t, g.HasNode(0))
	assert.False(t, g.HasNode(1))
	assert.Equal(t, 1, g.NumEdges())
	w, err := g.Edge(n, 2)
	require.NoError(t, err)
	assert.Equal(t, "x", w)
	v, _ := g.Node(n)
	assert.Equal(t, "merged", v)
}

func TestContractCombine(t *testing.T) {
	g := contractFixture(false)

	n, err := g.ContractNodes([]NodeID{0, 1}, "merged", func(a, b string) (string, error) {
		return a + "+" + b, nil
	})
	require.NoError(t, err)
	w, err := g.Edge(2, n)
	require.NoError(t, err)
	assert.Equal(t, "x+y", w)
}

func TestContractMultigraphKeepsParallel(t *testing.T) {
	g := contractFixture(true)
	called := false

	n, err := g.ContractNodes([]NodeID{0, 1}, "merged", func(a, _ string) (string, error) {
		called = true
		return a, nil
	})
	require.NoError(t, err)
	assert.False(t, called)
	all, err := g.AllEdgeData(n, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x", "y"}, all)
	assert.True(t, g.HasParallelEdges())
}

func TestContractInternalEdgeBecomesSelfLoop(t *testing.T) {
	g := New[string, int](WithMultigraph(false))
	g.AddNodes([]string{"a", "b", "c"})
	_, _ = g.AddEdge(0, 1, 1)
	_, _ = g.AddEdge(1, 2, 2)
	_, _ = g.AddEdge(1, 1, 3)

	n, err := g.ContractNodes([]NodeID{0, 1, 1, 42}, "ab", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumEdges())
	w, err := g.Edge(n, n)
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	assert.Equal(t, 3, g.Degree(n))
}

func TestContractEmptySet(t *testing.T) {
	g := contractFixture(false)
	n, err := g.ContractNodes(nil, "lonely", nil)
	require.NoError(t, err)
	assert.Equal(t, NodeID(3), n)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 2, g.NumEdges())
}

func TestContractCombineError(t *testing.T) {
	g := contractFixture(false)
	boom := errors.New("boom")

	_, err := g.ContractNodes([]NodeID{0, 1}, "merged", func(string, string) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.HasNode(0), "no rollback")
}

// =============================================================================
// SubstituteNodeWithSubgraph
// =============================================================================

func TestSubstituteRoutesEdges(t *testing.T) {
	g := New[string, string]()
	g.AddNodes([]string{"A", "X", "B"})
	_, _ = g.AddEdge(0, 1, "in")
	_, _ = g.AddEdge(1, 2, "out")

	sub := New[string, string]()
	sub.AddNodes([]string{"p", "q"})
	_, _ = sub.AddEdge(0, 1, "pq")

	m, err := g.SubstituteNodeWithSubgraph(1, sub, func(NodeID, NodeID, string) (NodeID, bool, error) {
		return 0, true, nil
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[NodeID]NodeID{0: 3, 1: 4}, m)
	assert.False(t, g.HasNode(1))
	p := m[0]
	w, err := g.Edge(0, p)
	require.NoError(t, err)
	assert.Equal(t, "in", w)
	w, err = g.Edge(p, 2)
	require.NoError(t, err)
	assert.Equal(t, "out", w)
	assert.True(t, g.HasEdge(p, m[1]))
	assert.Equal(t, 3, g.NumEdges())

	src, dst, err := g.EdgeEndpoints(g.EdgeIndicesFromEndpoints(p, 2)[0])
	require.NoError(t, err)
	assert.Equal(t, p, src)
	assert.Equal(t, NodeID(2), dst)
}

func TestSubstituteEdgeMapping(t *testing.T) {
	g := New[string, string]()
	g.AddNodes([]string{"A", "X", "B", "C"})
	_, _ = g.AddEdge(0, 1, "a")
	_, _ = g.AddEdge(1, 2, "b")
	_, _ = g.AddEdge(3, 1, "c")

	sub := New[string, string]()
	sub.AddNodes([]string{"p", "q"})

	var calls []string
	m, err := g.SubstituteNodeWithSubgraph(1, sub, func(src, dst NodeID, w string) (NodeID, bool, error) {
		calls = append(calls, w)
		switch w {
		case "a":
			return 0, true, nil
		case "b":
			return 1, true, nil
		}
		return 0, false, nil
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c", "b"}, calls, "incoming edges first")
	assert.True(t, g.HasEdge(0, m[0]))
	assert.True(t, g.HasEdge(m[1], 2))
	assert.False(t, g.HasEdge(3, m[0]))
	assert.False(t, g.HasEdge(3, m[1]))
	assert.Equal(t, 2, g.NumEdges())
}

func TestSubstituteSelfLoopProcessedOnce(t *testing.T) {
	g := New[string, int]()
	g.AddNode("X")
	_, _ = g.AddEdge(0, 0, 1)
	sub := New[string, int]()
	sub.AddNode("p")

	calls := 0
	_, err := g.SubstituteNodeWithSubgraph(0, sub, func(NodeID, NodeID, int) (NodeID, bool, error) {
		calls++
		return 0, true, nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSubstituteFilterAndWeightMap(t *testing.T) {
	g := New[string, int]()
	g.AddNodes([]string{"A", "X"})
	_, _ = g.AddEdge(0, 1, 1)

	sub := New[string, int]()
	sub.AddNodes([]string{"keep", "drop", "keep2"})
	_, _ = sub.AddEdge(0, 1, 5)
	_, _ = sub.AddEdge(0, 2, 6)

	m, err := g.SubstituteNodeWithSubgraph(1, sub, func(NodeID, NodeID, int) (NodeID, bool, error) {
		return 2, true, nil
	}, &SubstituteOptions[string, int]{
		NodeFilter:    func(v string) (bool, error) { return v != "drop", nil },
		EdgeWeightMap: func(w int) (int, error) { return w * 100, nil },
	})
	require.NoError(t, err)

	assert.Equal(t, map[NodeID]NodeID{0: 2, 2: 3}, m)
	w, err := g.Edge(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 600, w)
	w, err = g.Edge(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, g.NumEdges())
}

func TestSubstituteErrors(t *testing.T) {
	sub := New[string, int]()
	sub.AddNodes([]string{"p", "q"})

	g := New[string, int]()
	g.AddNodes([]string{"A", "X"})
	_, _ = g.AddEdge(0, 1, 1)

	_, err := g.SubstituteNodeWithSubgraph(5, sub, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = g.SubstituteNodeWithSubgraph(1, sub, func(NodeID, NodeID, int) (NodeID, bool, error) {
		return 1, true, nil
	}, &SubstituteOptions[string, int]{
		NodeFilter: func(v string) (bool, error) { return v == "p", nil },
	})
	assert.ErrorIs(t, err, ErrNotFound, "mapped node was filtered out")

	boom := errors.New("boom")
	g2 := New[string, int]()
	g2.AddNodes([]string{"A", "X"})
	_, _ = g2.AddEdge(0, 1, 1)
	_, err = g2.SubstituteNodeWithSubgraph(1, sub, func(NodeID, NodeID, int) (NodeID, bool, error) {
		return 0, false, boom
	}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestSubstituteNothingSurvives(t *testing.T) {
	g := New[string, int]()
	g.AddNodes([]string{"A", "X"})
	_, _ = g.AddEdge(0, 1, 1)
	sub := New[string, int]()
	sub.AddNode("p")

	m, err := g.SubstituteNodeWithSubgraph(1, sub, nil, &SubstituteOptions[string, int]{
		NodeFilter: func(string) (bool, error) { return false, nil },
	})
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.False(t, g.HasNode(1))
	assert.Equal(t, 0, g.NumEdges())
}

// =============================================================================
// Subgraphs
// =============================================================================

func TestSubgraphWithNodeMap(t *testing.T) {
	g := New[string, string](WithMultigraph(false), WithAttrs("meta"))
	g.AddNodes([]string{"n0", "n1", "n2", "n3"})
	_, _ = g.AddEdge(1, 3, "e13")
	_, _ = g.AddEdge(0, 1, "e01")

	sub, m := g.SubgraphWithNodeMap([]NodeID{3, 1, 1, 9}, false)
	assert.Equal(t, map[NodeID]NodeID{0: 1, 1: 3}, m)
	assert.Equal(t, []string{"n1", "n3"}, sub.Nodes())
	assert.Equal(t, 1, sub.NumEdges())
	w, err := sub.Edge(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "e13", w)
	assert.False(t, sub.Multigraph())
	assert.Nil(t, sub.Attrs())
	assert.False(t, sub.NodesRemoved())

	kept := g.Subgraph([]NodeID{0}, true)
	assert.Equal(t, "meta", kept.Attrs())
	assert.Equal(t, 1, kept.NumNodes())
	assert.Equal(t, 0, kept.NumEdges())
}

func TestEdgeSubgraph(t *testing.T) {
	g := New[string, string]()
	g.AddNodes([]string{"n0", "n1", "n2", "n3"})
	_, _ = g.AddEdge(0, 1, "a")
	_, _ = g.AddEdge(1, 2, "b")
	_, _ = g.AddEdge(2, 3, "c")
	_, _ = g.AddEdge(1, 0, "a2")

	sub := g.EdgeSubgraph([][2]NodeID{{1, 0}, {3, 2}, {0, 3}})
	assert.Equal(t, 4, sub.NumNodes())
	assert.Equal(t, []EdgeID{0, 2, 3}, sub.EdgeIndices())

	small := g.EdgeSubgraph([][2]NodeID{{0, 1}})
	assert.Equal(t, []NodeID{0, 1}, small.NodeIndices())
	assert.Equal(t, 4, small.NodeBound(), "handles are preserved")
	assert.ElementsMatch(t, []string{"a", "a2"}, small.Edges())
	assert.True(t, small.NodesRemoved())

	assert.Equal(t, 4, g.NumEdges(), "source is untouched")
}

// =============================================================================
// Conversions
// =============================================================================

func TestToDirected(t *testing.T) {
	g := New[string, int](WithMultigraph(false))
	g.AddNodes([]string{"a", "b", "c"})
	_, _ = g.AddEdge(0, 2, 7)
	_, _ = g.AddEdge(2, 2, 8)
	g.RemoveNode(1)

	d := g.ToDirected()
	assert.Equal(t, 2, d.NumNodes())
	assert.Equal(t, 2, d.NodeBound(), "handles are compacted")
	assert.Equal(t, 3, d.NumEdges(), "a self-loop is not doubled without parallel edges")
	assert.False(t, d.Multigraph())
	assert.True(t, d.HasEdge(0, 1))
	assert.True(t, d.HasEdge(1, 0))
	assert.Equal(t, 2, d.OutDegree(1))
	assert.Equal(t, 2, d.InDegree(1))
}

func TestToDirectedMultigraph(t *testing.T) {
	g := New[string, int]()
	g.AddNode("a")
	_, _ = g.AddEdge(0, 0, 1)

	d := g.ToDirected()
	assert.Equal(t, 2, d.NumEdges())
	assert.Equal(t, 2, d.OutDegree(0))
}

func TestToUndirected(t *testing.T) {
	d := NewDiGraph[string, int](WithMultigraph(false))
	d.AddNodes([]string{"a", "b"})
	_, _ = d.AddEdge(0, 1, 1)
	_, _ = d.AddEdge(1, 0, 2)
	assert.Equal(t, 2, d.NumEdges())

	g := d.ToUndirected()
	assert.Equal(t, 1, g.NumEdges())
	w, err := g.Edge(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, w)
}
