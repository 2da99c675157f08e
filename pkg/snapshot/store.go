package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stablegraph/pkg/codec"
	"github.com/matzehuels/stablegraph/pkg/graph"
	"github.com/matzehuels/stablegraph/pkg/observability"
)

// Store saves and loads graphs with payload types V and E.
//
// The zero value is not usable - use NewStore.
type Store[V, E any] struct {
	backend Backend
	format  codec.Format
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	format codec.Format
}

// WithFormat selects the encoding for new snapshots. Defaults to msgpack.
func WithFormat(f codec.Format) StoreOption {
	return func(c *storeConfig) { c.format = f }
}

// NewStore creates a store on top of b.
func NewStore[V, E any](b Backend, opts ...StoreOption) *Store[V, E] {
	cfg := storeConfig{format: codec.MsgPack}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[V, E]{backend: b, format: cfg.format}
}

// Backend returns the underlying backend.
func (s *Store[V, E]) Backend() Backend { return s.backend }

// NewKey returns a fresh random key.
func (s *Store[V, E]) NewKey() string { return uuid.NewString() }

// Save encodes doc and stores it under key.
func (s *Store[V, E]) Save(ctx context.Context, key string, doc *codec.Document[V, E]) error {
	if key == "" {
		return ErrInvalidKey
	}

	start := time.Now()
	data, err := codec.Marshal(s.format, doc)
	observability.Codec().OnEncode(ctx, s.format.String(), len(data), time.Since(start), err)
	if err != nil {
		return err
	}

	blob := frame(s.format, data)
	start = time.Now()
	err = s.backend.Put(ctx, key, blob)
	observability.Snapshot().OnSave(ctx, s.backend.Name(), len(blob), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Load fetches and decodes the document stored under key. A missing key
// yields ErrNotFound.
func (s *Store[V, E]) Load(ctx context.Context, key string) (*codec.Document[V, E], error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	start := time.Now()
	blob, err := s.backend.Get(ctx, key)
	hit := err == nil
	reported := err
	if errors.Is(err, ErrNotFound) {
		reported = nil
	}
	observability.Snapshot().OnLoad(ctx, s.backend.Name(), hit, len(blob), time.Since(start), reported)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	f, data, err := unframe(blob)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	start = time.Now()
	doc, err := codec.Unmarshal[V, E](f, data)
	observability.Codec().OnDecode(ctx, f.String(), len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return doc, nil
}

// SaveGraph stores an undirected graph under key.
func (s *Store[V, E]) SaveGraph(ctx context.Context, key string, g *graph.Graph[V, E]) error {
	return s.Save(ctx, key, codec.GraphDocument(g))
}

// LoadGraph loads an undirected graph.
func (s *Store[V, E]) LoadGraph(ctx context.Context, key string) (*graph.Graph[V, E], error) {
	doc, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return doc.Graph()
}

// SaveDiGraph stores a directed graph under key.
func (s *Store[V, E]) SaveDiGraph(ctx context.Context, key string, d *graph.DiGraph[V, E]) error {
	return s.Save(ctx, key, codec.DiGraphDocument(d))
}

// LoadDiGraph loads a directed graph.
func (s *Store[V, E]) LoadDiGraph(ctx context.Context, key string) (*graph.DiGraph[V, E], error) {
	doc, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return doc.DiGraph()
}

// Delete removes the snapshot under key.
func (s *Store[V, E]) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	err := s.backend.Delete(ctx, key)
	observability.Snapshot().OnDelete(ctx, s.backend.Name(), err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// List returns the stored keys in ascending order.
func (s *Store[V, E]) List(ctx context.Context) ([]string, error) {
	return s.backend.List(ctx)
}

// Close closes the backend.
func (s *Store[V, E]) Close() error {
	return s.backend.Close()
}

// frame prefixes data with the format name and a NUL separator.
func frame(f codec.Format, data []byte) []byte {
	out := make([]byte, 0, len(f)+1+len(data))
	out = append(out, string(f)...)
	out = append(out, 0)
	return append(out, data...)
}

func unframe(blob []byte) (codec.Format, []byte, error) {
	i := bytes.IndexByte(blob, 0)
	if i < 0 {
		return "", nil, fmt.Errorf("%w: missing format header", codec.ErrMalformed)
	}
	f, err := codec.ParseFormat(string(blob[:i]))
	if err != nil {
		return "", nil, err
	}
	return f, blob[i+1:], nil
}
