package circuit

import (
	"fmt"
	"hash/maphash"

	"github.com/bits-and-blooms/bitset"
)

// RemoveUnusedNodes drops every node not reachable from an output via a
// reverse BFS over outgoing edges turned incoming, the Go port of
// in_place_remove_unused_nodes. It rebuilds the node list, remaps NodeIDs
// to stay dense, and discards the operation/node caches (their keys
// reference the old ids). Input/output registrations are preserved.
func (c *Circuit) RemoveUnusedNodes() error {
	keep := bitset.New(uint(len(c.nodes)))
	queue := make([]NodeID, 0, len(c.outputOrder)+len(c.inputOrder))
	for _, id := range c.outputOrder {
		if !keep.Test(uint(id)) {
			keep.Set(uint(id))
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, pred := range c.nodes[id].incoming {
			if !keep.Test(uint(pred)) {
				keep.Set(uint(pred))
				queue = append(queue, pred)
			}
		}
	}
	// Inputs are always kept even if dangling, so a later AddOutput can
	// still reference them by name without re-registering.
	for _, id := range c.inputOrder {
		keep.Set(uint(id))
	}

	remap := make(map[NodeID]NodeID, len(c.nodes))
	newNodes := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if !keep.Test(uint(n.id)) {
			continue
		}
		newID := NodeID(len(newNodes))
		remap[n.id] = newID
		newNodes = append(newNodes, n)
	}
	for _, n := range newNodes {
		n.id = remap[n.id]
		newIncoming := make([]NodeID, len(n.incoming))
		for i, id := range n.incoming {
			newIncoming[i] = remap[id]
		}
		n.incoming = newIncoming
		newOutgoing := n.outgoing[:0]
		for _, id := range n.outgoing {
			if mapped, ok := remap[id]; ok {
				newOutgoing = append(newOutgoing, mapped)
			}
		}
		n.outgoing = newOutgoing
	}

	removed := len(c.nodes) - len(newNodes)
	c.nodes = newNodes
	for name, id := range c.inputNames {
		c.inputNames[name] = remap[id]
	}
	for i, id := range c.inputOrder {
		c.inputOrder[i] = remap[id]
	}
	for i, id := range c.outputOrder {
		c.outputOrder[i] = remap[id]
	}
	c.opCache = make(map[opCacheKey]Params)
	c.nodeCache = make(map[string]NodeID)

	log.WithField("removed", removed).Debug("removed unused nodes")
	return nil
}

var dedupSeed1 = maphash.MakeSeed()
var dedupSeed2 = maphash.MakeSeed()

type dedupKey [16]byte

func computeDedupKey(key string) dedupKey {
	var h1, h2 maphash.Hash
	h1.SetSeed(dedupSeed1)
	h2.SetSeed(dedupSeed2)
	h1.WriteString(key)
	h2.WriteString(key)
	var out dedupKey
	v1, v2 := h1.Sum64(), h2.Sum64()
	for i := 0; i < 8; i++ {
		out[i] = byte(v1 >> (8 * i))
		out[8+i] = byte(v2 >> (8 * i))
	}
	return out
}

// RemoveDuplicateNodes scans the circuit in topological order and rewires
// any node that is structurally identical to an earlier one (same opcode,
// params, and remapped incoming ids) onto the earlier node, the Go port of
// in_place_remove_duplicate_nodes. Structural identity is tested on the
// exact (opcode, params, incoming) tuple; the 128-bit rolling key is only
// used to bucket candidates, and a genuine key collision between two
// non-identical nodes is reported as ErrHashCollision rather than silently
// merged.
func (c *Circuit) RemoveDuplicateNodes() error {
	remap := make(map[NodeID]NodeID, len(c.nodes))  // old id -> new id
	seen := make(map[dedupKey]NodeID)                // dedup key -> new id
	newNodes := make([]*Node, 0, len(c.nodes))

	for _, n := range c.nodes {
		oldID := n.id
		remappedIncoming := make([]NodeID, len(n.incoming))
		for i, id := range n.incoming {
			remappedIncoming[i] = remap[id]
		}
		key := nodeCacheKey(n.kind, n.params, remappedIncoming, SchemaOf(n.kind).Symmetric)
		dk := computeDedupKey(key)

		if existingNewID, ok := seen[dk]; ok {
			existing := newNodes[existingNewID]
			if !structurallyEqual(existing, n.kind, n.params, remappedIncoming) {
				return fmt.Errorf("%w: nodes %d and %d", ErrHashCollision, existing.id, oldID)
			}
			remap[oldID] = existingNewID
			continue
		}

		newID := NodeID(len(newNodes))
		n.id = newID
		n.incoming = remappedIncoming
		n.outgoing = nil
		newNodes = append(newNodes, n)
		remap[oldID] = newID
		seen[dk] = newID
	}

	for _, n := range newNodes {
		for _, id := range n.incoming {
			newNodes[id].addOutgoing(n.id)
		}
	}

	c.nodes = newNodes
	for name, id := range c.inputNames {
		c.inputNames[name] = remap[id]
	}
	for i, id := range c.inputOrder {
		c.inputOrder[i] = remap[id]
	}
	for i, id := range c.outputOrder {
		c.outputOrder[i] = remap[id]
	}
	c.opCache = make(map[opCacheKey]Params)
	c.nodeCache = make(map[string]NodeID)
	return nil
}

func structurallyEqual(n *Node, kind OpKind, params Params, incoming []NodeID) bool {
	if n == nil || n.kind != kind || len(n.incoming) != len(incoming) {
		return false
	}
	if n.params.key() != params.key() {
		return false
	}
	// Symmetric ops are keyed on sorted operands, so swapped operands match.
	if SchemaOf(kind).Symmetric && len(incoming) == 2 &&
		n.incoming[0] == incoming[1] && n.incoming[1] == incoming[0] {
		return true
	}
	for i := range incoming {
		if n.incoming[i] != incoming[i] {
			return false
		}
	}
	return true
}

// Renumerate compacts NodeIDs to [0,len(nodes)) in current order (a no-op
// unless earlier rewrites left gaps) and refreshes the outgoing edge lists.
func (c *Circuit) Renumerate() {
	remap := make(map[NodeID]NodeID, len(c.nodes))
	for i, n := range c.nodes {
		remap[n.id] = NodeID(i)
	}
	for i, n := range c.nodes {
		n.id = NodeID(i)
		for j, id := range n.incoming {
			n.incoming[j] = remap[id]
		}
		n.outgoing = n.outgoing[:0]
	}
	for _, n := range c.nodes {
		for _, id := range n.incoming {
			c.nodes[id].addOutgoing(n.id)
		}
	}
	for name, id := range c.inputNames {
		c.inputNames[name] = remap[id]
	}
	for i, id := range c.inputOrder {
		c.inputOrder[i] = remap[id]
	}
	for i, id := range c.outputOrder {
		c.outputOrder[i] = remap[id]
	}
	c.opCache = make(map[opCacheKey]Params)
	c.nodeCache = make(map[string]NodeID)
}

// ReorderInputs permutes the registered input order to match names. names
// must be a permutation of the circuit's existing input names: every name
// named exactly once, none repeated, none foreign, and none missing.
func (c *Circuit) ReorderInputs(names []string) error {
	if len(names) != len(c.inputOrder) {
		return fmt.Errorf("%w: expected %d input names, got %d", ErrParameter, len(c.inputOrder), len(names))
	}
	seen := make(map[string]bool, len(names))
	newOrder := make([]NodeID, len(names))
	for i, name := range names {
		id, ok := c.inputNames[name]
		if !ok {
			return fmt.Errorf("%w: unknown input %q", ErrParameter, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: input %q repeated, names must be a permutation", ErrParameter, name)
		}
		seen[name] = true
		newOrder[i] = id
	}
	c.inputOrder = newOrder
	return nil
}

// ReorderOutputs permutes the registered output order according to perm, a
// 0-based permutation of [0,len(outputs)).
func (c *Circuit) ReorderOutputs(perm []int) error {
	if len(perm) != len(c.outputOrder) {
		return fmt.Errorf("%w: expected a permutation of length %d, got %d", ErrParameter, len(c.outputOrder), len(perm))
	}
	newOrder := make([]NodeID, len(perm))
	for i, p := range perm {
		if p < 0 || p >= len(c.outputOrder) {
			return fmt.Errorf("%w: permutation index %d out of range", ErrIndex, p)
		}
		newOrder[i] = c.outputOrder[p]
	}
	c.outputOrder = newOrder
	return nil
}
