package edgelist

import (
	"bytes"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

func TestReadHandles(t *testing.T) {
	in := "0 1\n0 2 heavy\n\n2 3 two words\n0 1\n"
	g, err := Read(strings.NewReader(in), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 4, g.NumEdges())
	assert.True(t, g.Multigraph())
	assert.Equal(t, []string{"", "heavy", "two words", ""}, g.Edges())
	assert.Equal(t, [][2]graph.NodeID{{0, 1}, {0, 2}, {2, 3}, {0, 1}}, g.EdgeList())
}

func TestReadGrowsToHighestHandle(t *testing.T) {
	g, err := Read(strings.NewReader("5 2\n"), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 6, g.NumNodes())
	assert.True(t, g.HasEdge(2, 5))
}

func TestReadOptions(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		opts  ReadOptions
		nodes []string
		edges []string
	}{
		{
			name:  "comments",
			in:    "# header\n0 1 a # trailing\n   # indented\n1 2\n",
			opts:  ReadOptions{Comment: "#"},
			nodes: []string{"", "", ""},
			edges: []string{"a", ""},
		},
		{
			name:  "delimiter",
			in:    "0,1,x,y\n1,2\n",
			opts:  ReadOptions{Delimiter: ","},
			nodes: []string{"", "", ""},
			edges: []string{"x,y", ""},
		},
		{
			name:  "labels",
			in:    "alice bob 1\nbob carol\ncarol alice 3\n",
			opts:  ReadOptions{Labels: true},
			nodes: []string{"alice", "bob", "carol"},
			edges: []string{"1", "", "3"},
		},
		{
			name:  "labels with delimiter",
			in:    "new york;boston\nboston;new york;again\n",
			opts:  ReadOptions{Labels: true, Delimiter: ";"},
			nodes: []string{"new york", "boston"},
			edges: []string{"", "again"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.in), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.nodes, g.Nodes())
			assert.Equal(t, tt.edges, g.Edges())
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"single field", "0\n"},
		{"not a number", "0 x\n"},
		{"negative", "-1 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), ReadOptions{})
			assert.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestWrite(t *testing.T) {
	g := graph.New[string, string]()
	g.AddNodes([]string{"a", "b", "c"})
	_, _ = g.AddEdge(0, 1, "x")
	_, _ = g.AddEdge(1, 2, "")
	_, _ = g.AddEdge(2, 0, "z")
	g.RemoveEdgeByIndex(0)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, g, WriteOptions[string]{}))
	assert.Equal(t, "1 2\n2 0\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, g, WriteOptions[string]{Delimiter: ",", Weight: StringWeight}))
	assert.Equal(t, "1,2\n2,0,z\n", buf.String())
}

func TestWriteWeightError(t *testing.T) {
	g := graph.NewDiGraph[int, int]()
	g.AddNodes([]int{0, 1})
	_, _ = g.AddEdge(0, 1, 7)

	boom := errors.New("boom")
	err := Write(&bytes.Buffer{}, g, WriteOptions[int]{
		Weight: func(int) (string, bool, error) { return "", false, boom },
	})
	assert.ErrorIs(t, err, boom)
}

func TestFileRoundTrip(t *testing.T) {
	g := graph.New[int, int]()
	g.AddNodes([]int{0, 1, 2, 3})
	_, _ = g.AddEdge(0, 3, 30)
	_, _ = g.AddEdge(3, 1, 31)
	_, _ = g.AddEdge(1, 1, 11)

	path := filepath.Join(t.TempDir(), "graph.txt")
	err := WriteFile(path, g, WriteOptions[int]{
		Weight: func(w int) (string, bool, error) { return strconv.Itoa(w), true, nil },
	})
	require.NoError(t, err)

	got, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, g.EdgeList(), got.EdgeList())
	assert.Equal(t, []string{"30", "31", "11"}, got.Edges())
}
