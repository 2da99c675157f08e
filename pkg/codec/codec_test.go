package codec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

func holey(t *testing.T) *graph.Graph[string, int] {
	t.Helper()
	g := graph.New[string, int](graph.WithAttrs("meta"))
	g.AddNodes([]string{"a", "b", "c", "d"})
	for i, pair := range [][2]graph.NodeID{{0, 1}, {1, 2}, {2, 3}, {0, 3}, {3, 3}} {
		_, err := g.AddEdge(pair[0], pair[1], 10*(i+1))
		require.NoError(t, err)
	}
	g.RemoveNode(1)
	g.RemoveEdgeByIndex(2)
	return g
}

func TestRoundTrip(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			g := holey(t)
			doc := GraphDocument(g)

			data, err := Marshal(f, doc)
			require.NoError(t, err)
			got, err := Unmarshal[string, int](f, data)
			require.NoError(t, err)

			assert.Equal(t, doc.ID, got.ID)
			assert.Equal(t, Version, got.Version)
			assert.False(t, got.Directed)
			assert.True(t, got.Multigraph)
			assert.Equal(t, "meta", got.Attrs)
			assert.Equal(t, 4, got.NodeCountHint)
			assert.Equal(t, 5, got.EdgeCountHint)
			assert.Equal(t, g.State(), got.State)

			rebuilt, err := got.Graph()
			require.NoError(t, err)
			assert.Equal(t, g.EdgeIndexMap(), rebuilt.EdgeIndexMap())
			assert.Equal(t, g.AddNode("x"), rebuilt.AddNode("x"))
		})
	}
}

func TestRoundTripDirected(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			d := graph.NewDiGraph[string, int](graph.WithMultigraph(false))
			d.AddNodes([]string{"a", "b", "c"})
			_, _ = d.AddEdge(0, 2, 1)
			_, _ = d.AddEdge(2, 0, 2)
			d.RemoveNode(1)

			var buf bytes.Buffer
			require.NoError(t, EncodeDiGraph(&buf, f, d))
			got, err := DecodeDiGraph[string, int](&buf, f)
			require.NoError(t, err)

			assert.False(t, got.Multigraph())
			assert.Equal(t, d.State(), got.State())
			assert.Equal(t, []graph.NodeID{2}, got.Successors(0))
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeGraph(&buf, f, graph.New[int, int]()))
			got, err := DecodeGraph[int, int](&buf, f)
			require.NoError(t, err)
			assert.Equal(t, 0, got.NodeBound())
			assert.Equal(t, 0, got.EdgeBound())
		})
	}
}

func TestJSONWireLayout(t *testing.T) {
	g := graph.New[string, int]()
	g.AddNodes([]string{"a", "b", "c"})
	_, _ = g.AddEdge(0, 1, 4)
	_, _ = g.AddEdge(0, 2, 5)
	g.RemoveNode(1)

	data, err := Marshal(JSON, GraphDocument(g))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.JSONEq(t, `{"nodes":[[0,"a"],[2,"c"]],"edges":[null,[0,2,5]],"nodes_removed":true}`,
		string(fields["state"]))
	assert.JSONEq(t, `false`, string(fields["directed"]))
}

func TestDirectionMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGraph(&buf, JSON, graph.New[int, int]()))
	_, err := DecodeDiGraph[int, int](bytes.NewReader(buf.Bytes()), JSON)
	assert.ErrorIs(t, err, ErrDirectionMismatch)

	buf.Reset()
	require.NoError(t, EncodeDiGraph(&buf, JSON, graph.NewDiGraph[int, int]()))
	_, err = DecodeGraph[int, int](&buf, JSON)
	assert.ErrorIs(t, err, ErrDirectionMismatch)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"short node tuple", `{"version":1,"state":{"nodes":[[0]]}}`, ErrMalformed},
		{"long edge tuple", `{"version":1,"state":{"nodes":[[0,1]],"edges":[[0,0,1,2]]}}`, ErrMalformed},
		{"bad id", `{"id":"nope","version":1}`, ErrMalformed},
		{"future version", `{"version":99}`, ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal[int, int](JSON, []byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeInvalidState(t *testing.T) {
	data := `{"version":1,"state":{"nodes":[[0,1]],"edges":[[0,7,1]],"nodes_removed":false}}`
	_, err := DecodeGraph[int, int](bytes.NewReader([]byte(data)), JSON)
	assert.ErrorIs(t, err, graph.ErrInvalidState)
}

func TestUnknownFormat(t *testing.T) {
	_, err := Marshal(Format("xml"), GraphDocument(graph.New[int, int]()))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Unmarshal[int, int](Format("xml"), nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{" JSON ", JSON, false},
		{"msgpack", MsgPack, false},
		{"mpk", MsgPack, false},
		{"BSON", BSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/out/graph.mpk")
	require.NoError(t, err)
	assert.Equal(t, MsgPack, f)

	f, err = FormatFromPath("snap.bson")
	require.NoError(t, err)
	assert.Equal(t, BSON, f)
	assert.Equal(t, ".bson", f.Extension())

	_, err = FormatFromPath("README")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
