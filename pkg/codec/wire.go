package codec

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

type wireDocument[V, E any] struct {
	ID            string          `json:"id" msgpack:"id" bson:"id"`
	Version       int             `json:"version" msgpack:"version" bson:"version"`
	Directed      bool            `json:"directed" msgpack:"directed" bson:"directed"`
	Multigraph    bool            `json:"multigraph" msgpack:"multigraph" bson:"multigraph"`
	Attrs         any             `json:"attrs" msgpack:"attrs" bson:"attrs"`
	NodeCountHint int             `json:"node_count_hint" msgpack:"node_count_hint" bson:"node_count_hint"`
	EdgeCountHint int             `json:"edge_count_hint" msgpack:"edge_count_hint" bson:"edge_count_hint"`
	State         wireState[V, E] `json:"state" msgpack:"state" bson:"state"`
}

type wireState[V, E any] struct {
	Nodes        []wireNode[V]  `json:"nodes" msgpack:"nodes" bson:"nodes"`
	Edges        []*wireEdge[E] `json:"edges" msgpack:"edges" bson:"edges"`
	NodesRemoved bool           `json:"nodes_removed" msgpack:"nodes_removed" bson:"nodes_removed"`
}

// wireNode is encoded as [handle, payload].
type wireNode[V any] struct {
	_msgpack struct{} `msgpack:",as_array"`

	Index  graph.NodeID
	Weight V
}

// wireEdge is encoded as [source, target, payload]. A nil *wireEdge marks a
// removed edge slot.
type wireEdge[E any] struct {
	_msgpack struct{} `msgpack:",as_array"`

	Source graph.NodeID
	Target graph.NodeID
	Weight E
}

func toWireState[V, E any](st graph.State[V, E]) wireState[V, E] {
	w := wireState[V, E]{
		Nodes:        make([]wireNode[V], len(st.Nodes)),
		Edges:        make([]*wireEdge[E], len(st.Edges)),
		NodesRemoved: st.NodesRemoved,
	}
	for i, n := range st.Nodes {
		w.Nodes[i] = wireNode[V]{Index: n.Index, Weight: n.Weight}
	}
	for i, e := range st.Edges {
		if e != nil {
			w.Edges[i] = &wireEdge[E]{Source: e.Source, Target: e.Target, Weight: e.Weight}
		}
	}
	return w
}

func (w wireState[V, E]) state() graph.State[V, E] {
	st := graph.State[V, E]{
		Nodes:        make([]graph.NodeEntry[V], len(w.Nodes)),
		Edges:        make([]*graph.EdgeEntry[E], len(w.Edges)),
		NodesRemoved: w.NodesRemoved,
	}
	for i, n := range w.Nodes {
		st.Nodes[i] = graph.NodeEntry[V]{Index: n.Index, Weight: n.Weight}
	}
	for i, e := range w.Edges {
		if e != nil {
			st.Edges[i] = &graph.EdgeEntry[E]{Source: e.Source, Target: e.Target, Weight: e.Weight}
		}
	}
	return st
}

// =============================================================================
// JSON tuples
// =============================================================================

func (n wireNode[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{n.Index, n.Weight})
}

func (n *wireNode[V]) UnmarshalJSON(data []byte) error {
	parts, err := jsonTuple(data, 2)
	if err != nil {
		return fmt.Errorf("node: %w", err)
	}
	if err := json.Unmarshal(parts[0], &n.Index); err != nil {
		return fmt.Errorf("node handle: %w", err)
	}
	if err := json.Unmarshal(parts[1], &n.Weight); err != nil {
		return fmt.Errorf("node %d payload: %w", n.Index, err)
	}
	return nil
}

func (e wireEdge[E]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Source, e.Target, e.Weight})
}

func (e *wireEdge[E]) UnmarshalJSON(data []byte) error {
	parts, err := jsonTuple(data, 3)
	if err != nil {
		return fmt.Errorf("edge: %w", err)
	}
	if err := json.Unmarshal(parts[0], &e.Source); err != nil {
		return fmt.Errorf("edge source: %w", err)
	}
	if err := json.Unmarshal(parts[1], &e.Target); err != nil {
		return fmt.Errorf("edge target: %w", err)
	}
	if err := json.Unmarshal(parts[2], &e.Weight); err != nil {
		return fmt.Errorf("edge (%d, %d) payload: %w", e.Source, e.Target, err)
	}
	return nil
}

func jsonTuple(data []byte, size int) ([]json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(parts) != size {
		return nil, fmt.Errorf("%w: want %d elements, got %d", ErrMalformed, size, len(parts))
	}
	return parts, nil
}

// =============================================================================
// BSON tuples
// =============================================================================

// The state spells out its edge list so removed slots become BSON null
// without going through the driver's nil pointer handling.
func (w wireState[V, E]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	edges := make(bson.A, len(w.Edges))
	for i, e := range w.Edges {
		if e != nil {
			edges[i] = *e
		}
	}
	nodes := w.Nodes
	if nodes == nil {
		nodes = []wireNode[V]{}
	}
	return bson.MarshalValue(bson.D{
		{Key: "nodes", Value: nodes},
		{Key: "edges", Value: edges},
		{Key: "nodes_removed", Value: w.NodesRemoved},
	})
}

func (w *wireState[V, E]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t != bsontype.EmbeddedDocument {
		return fmt.Errorf("%w: state: want document, got %s", ErrMalformed, t)
	}
	doc := bson.Raw(data)
	if v, err := doc.LookupErr("nodes"); err == nil {
		if err := v.Unmarshal(&w.Nodes); err != nil {
			return fmt.Errorf("nodes: %w", err)
		}
	}
	if v, err := doc.LookupErr("edges"); err == nil {
		arr, ok := v.ArrayOK()
		if !ok {
			return fmt.Errorf("%w: edges: want array, got %s", ErrMalformed, v.Type)
		}
		vals, err := arr.Values()
		if err != nil {
			return fmt.Errorf("%w: edges: %v", ErrMalformed, err)
		}
		w.Edges = make([]*wireEdge[E], len(vals))
		for i, ev := range vals {
			if ev.Type == bsontype.Null {
				continue
			}
			e := new(wireEdge[E])
			if err := e.UnmarshalBSONValue(ev.Type, ev.Value); err != nil {
				return fmt.Errorf("edge %d: %w", i, err)
			}
			w.Edges[i] = e
		}
	}
	if v, err := doc.LookupErr("nodes_removed"); err == nil {
		removed, ok := v.BooleanOK()
		if !ok {
			return fmt.Errorf("%w: nodes_removed: want bool, got %s", ErrMalformed, v.Type)
		}
		w.NodesRemoved = removed
	}
	return nil
}

func (n wireNode[V]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(bson.A{n.Index, n.Weight})
}

func (n *wireNode[V]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	vals, err := bsonTuple(t, data, 2)
	if err != nil {
		return fmt.Errorf("node: %w", err)
	}
	if err := vals[0].Unmarshal(&n.Index); err != nil {
		return fmt.Errorf("node handle: %w", err)
	}
	if err := vals[1].Unmarshal(&n.Weight); err != nil {
		return fmt.Errorf("node %d payload: %w", n.Index, err)
	}
	return nil
}

func (e wireEdge[E]) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(bson.A{e.Source, e.Target, e.Weight})
}

func (e *wireEdge[E]) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	vals, err := bsonTuple(t, data, 3)
	if err != nil {
		return fmt.Errorf("edge: %w", err)
	}
	if err := vals[0].Unmarshal(&e.Source); err != nil {
		return fmt.Errorf("edge source: %w", err)
	}
	if err := vals[1].Unmarshal(&e.Target); err != nil {
		return fmt.Errorf("edge target: %w", err)
	}
	if err := vals[2].Unmarshal(&e.Weight); err != nil {
		return fmt.Errorf("edge (%d, %d) payload: %w", e.Source, e.Target, err)
	}
	return nil
}

func bsonTuple(t bsontype.Type, data []byte, size int) ([]bson.RawValue, error) {
	if t != bsontype.Array {
		return nil, fmt.Errorf("%w: want array, got %s", ErrMalformed, t)
	}
	vals, err := bson.Raw(data).Values()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(vals) != size {
		return nil, fmt.Errorf("%w: want %d elements, got %d", ErrMalformed, size, len(vals))
	}
	return vals, nil
}
