package dot

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

func TestFromGraphPlain(t *testing.T) {
	g := graph.New[string, int]()
	g.AddNodes([]string{"a", "b", "c"})
	_, _ = g.AddEdge(0, 2, 1)
	_, _ = g.AddEdge(2, 2, 2)
	g.RemoveNode(1)

	got, err := FromGraph(g, Options[string, int]{})
	require.NoError(t, err)
	assert.Equal(t, "graph {\n  0;\n  2;\n  0 -- 2;\n  2 -- 2;\n}\n", got)
}

func TestFromDiGraphAttrs(t *testing.T) {
	d := graph.NewDiGraph[string, int]()
	d.AddNodes([]string{"x", `say "hi"`})
	_, _ = d.AddEdge(1, 0, 7)

	got, err := FromDiGraph(d, Options[string, int]{
		GraphAttrs: Attrs{"rankdir": "LR", "bgcolor": "white"},
		NodeAttrs: func(_ graph.NodeID, v string) (Attrs, error) {
			return Attrs{"label": v, "shape": "box"}, nil
		},
		EdgeAttrs: func(_ graph.EdgeID, e int) (Attrs, error) {
			return Attrs{"weight": strconv.Itoa(e)}, nil
		},
	})
	require.NoError(t, err)
	want := "digraph {\n" +
		"  bgcolor=\"white\";\n" +
		"  rankdir=\"LR\";\n" +
		"  0 [label=\"x\", shape=\"box\"];\n" +
		"  1 [label=\"say \\\"hi\\\"\", shape=\"box\"];\n" +
		"  1 -> 0 [weight=\"7\"];\n" +
		"}\n"
	assert.Equal(t, want, got)
}

func TestAttrCallbackError(t *testing.T) {
	g := graph.New[int, int]()
	g.AddNodes([]int{0, 1})
	_, _ = g.AddEdge(0, 1, 0)
	boom := errors.New("boom")

	_, err := FromGraph(g, Options[int, int]{
		NodeAttrs: func(graph.NodeID, int) (Attrs, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)

	_, err = FromGraph(g, Options[int, int]{
		EdgeAttrs: func(graph.EdgeID, int) (Attrs, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
}

func TestRenderSVG(t *testing.T) {
	g := graph.New[string, int]()
	g.AddNodes([]string{"a", "b"})
	_, _ = g.AddEdge(0, 1, 1)

	src, err := FromGraph(g, Options[string, int]{})
	require.NoError(t, err)
	svg, err := RenderSVG(context.Background(), src)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), `viewBox="0 0 `)
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`, out)

	plain := []byte(`<svg><g/></svg>`)
	assert.Equal(t, plain, normalizeViewBox(plain))
}
