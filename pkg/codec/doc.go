// Package codec serializes graph containers to bytes and back.
//
// # Overview
//
// A [Document] wraps a [graph.State] together with the arguments needed to
// rebuild the container: direction, the multigraph flag, the graph-level
// attribute and capacity hints. Documents can be written in three formats:
//
//   - [JSON]: human-readable, the default for files ending in .json
//   - [MsgPack]: compact binary, for snapshots and caches
//   - [BSON]: for document stores such as MongoDB
//
// # Wire Layout
//
// All three formats share one layout. Nodes and edges are positional tuples
// and a removed edge slot is encoded as null, so handles survive a round
// trip exactly:
//
//	{
//	  "nodes": [[0, "a"], [2, "c"]],
//	  "edges": [null, [0, 2, 5]],
//	  "nodes_removed": true
//	}
//
// Payload types must be representable in the chosen format. Interface-typed
// payloads decode to the format's generic values (map[string]any, float64
// for JSON numbers, and so on).
//
// # Usage
//
//	var buf bytes.Buffer
//	if err := codec.EncodeGraph(&buf, codec.MsgPack, g); err != nil {
//	    return err
//	}
//	g2, err := codec.DecodeGraph[string, int](&buf, codec.MsgPack)
package codec
