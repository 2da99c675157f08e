package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/stablegraph/pkg/graph"
)

// Marshal encodes doc in format f.
func Marshal[V, E any](f Format, doc *Document[V, E]) ([]byte, error) {
	w := doc.wire()
	var (
		data []byte
		err  error
	)
	switch f {
	case JSON:
		data, err = json.Marshal(w)
	case MsgPack:
		data, err = msgpack.Marshal(w)
	case BSON:
		data, err = bson.Marshal(w)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return data, nil
}

// Unmarshal decodes a document written in format f. The state is not
// validated here; that happens when the container is rebuilt.
func Unmarshal[V, E any](f Format, data []byte) (*Document[V, E], error) {
	var (
		w   wireDocument[V, E]
		err error
	)
	switch f {
	case JSON:
		err = json.Unmarshal(data, &w)
	case MsgPack:
		err = msgpack.Unmarshal(data, &w)
	case BSON:
		err = bson.Unmarshal(data, &w)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return fromWire(w)
}

// Encode writes doc to w in format f.
func Encode[V, E any](w io.Writer, f Format, doc *Document[V, E]) error {
	data, err := Marshal(f, doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Decode reads a whole document from r.
func Decode[V, E any](r io.Reader, f Format) (*Document[V, E], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal[V, E](f, data)
}

// EncodeGraph writes g to w in format f.
func EncodeGraph[V, E any](w io.Writer, f Format, g *graph.Graph[V, E]) error {
	return Encode(w, f, GraphDocument(g))
}

// DecodeGraph reads an undirected graph from r.
func DecodeGraph[V, E any](r io.Reader, f Format) (*graph.Graph[V, E], error) {
	doc, err := Decode[V, E](r, f)
	if err != nil {
		return nil, err
	}
	return doc.Graph()
}

// EncodeDiGraph writes d to w in format f.
func EncodeDiGraph[V, E any](w io.Writer, f Format, d *graph.DiGraph[V, E]) error {
	return Encode(w, f, DiGraphDocument(d))
}

// DecodeDiGraph reads a directed graph from r.
func DecodeDiGraph[V, E any](r io.Reader, f Format) (*graph.DiGraph[V, E], error) {
	doc, err := Decode[V, E](r, f)
	if err != nil {
		return nil, err
	}
	return doc.DiGraph()
}
