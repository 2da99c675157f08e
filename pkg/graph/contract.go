package graph

import "fmt"

// CombineFunc merges the payloads of two edges that contraction would make
// parallel. The first argument is the payload already kept.
type CombineFunc[E any] func(kept, next E) (E, error)

// ContractNodes replaces nodes with a single new node carrying payload and
// returns its handle. Absent and repeated handles are ignored; an empty set
// behaves like AddNode.
//
// Every edge touching the set is re-routed to the new node. Edges between
// two members become self-loops. In a multigraph all re-routed edges are
// kept and combine is not used. Otherwise edges that end up joining the same
// pair are merged: with combine, payloads are folded in incidence order
// (members in the given order, each member's edges as IncidentEdges lists
// them); without it the first payload in that order is kept.
//
// A combine error aborts the operation. The members and their edges are
// already removed at that point.
func (g *Graph[V, E]) ContractNodes(nodes []NodeID, payload V, combine CombineFunc[E]) (NodeID, error) {
	members := make(map[NodeID]bool, len(nodes))
	var order []NodeID
	for _, n := range nodes {
		if g.HasNode(n) && !members[n] {
			members[n] = true
			order = append(order, n)
		}
	}

	type rerouted struct {
		source, target NodeID
		weight         E
	}
	seen := make(map[EdgeID]bool)
	var moved []rerouted
	for _, n := range order {
		for _, id := range g.incident(n) {
			if seen[id] {
				continue
			}
			seen[id] = true
			e, _ := g.edges.Get(int(id))
			moved = append(moved, rerouted{e.source, e.target, e.weight})
		}
	}

	merged := g.AddNode(payload)
	for _, n := range order {
		g.RemoveNode(n)
	}

	byPeer := make(map[NodeID]EdgeID)
	for _, m := range moved {
		src, dst := m.source, m.target
		if members[src] {
			src = merged
		}
		if members[dst] {
			dst = merged
		}
		if g.multigraph {
			g.addEdge(src, dst, m.weight)
			continue
		}
		peer := dst
		if dst == merged {
			peer = src
		}
		id, ok := byPeer[peer]
		if !ok {
			byPeer[peer] = g.addEdge(src, dst, m.weight)
			continue
		}
		if combine == nil {
			continue
		}
		p := g.edges.Ptr(int(id))
		w, err := combine(p.weight, m.weight)
		if err != nil {
			return merged, fmt.Errorf("contract: combine edge (%d, %d): %w", src, dst, err)
		}
		p.weight = w
	}
	return merged, nil
}
