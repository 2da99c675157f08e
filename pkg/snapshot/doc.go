// Package snapshot persists encoded graphs under string keys.
//
// # Overview
//
// A [Backend] stores opaque byte blobs. [Store] sits on top of a backend,
// encodes graphs with [codec] and reports every operation to the
// observability hooks:
//
//	b, err := snapshot.NewRedis(addr, "", 0, snapshot.WithPrefix("roads:"))
//	s := snapshot.NewStore[string, float64](b, snapshot.WithFormat(codec.MsgPack))
//	key := s.NewKey()
//	if err := s.SaveGraph(ctx, key, g); err != nil { ... }
//	g2, err := s.LoadGraph(ctx, key)
//
// Each blob starts with the name of the format it was written in, so a store
// configured for one format still loads snapshots written in another.
//
// # Backends
//
//   - [Memory]: process-local map, for tests and one-shot CLI runs
//   - [File]: one file per key under a directory, with optional TTL
//   - [Badger]: embedded BadgerDB, on disk or in memory
//   - [Redis]: value per key plus a sorted-set index for listing
//   - [Mongo]: one document per key in a collection
//
// All backends are safe for concurrent use.
package snapshot
