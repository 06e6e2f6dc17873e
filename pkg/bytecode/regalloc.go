package bytecode

import "github.com/circkit/circkit/pkg/circuit"

// allocator assigns RAM cells to node values with a free-list, the Go port
// of fkuehnel-golang-cfg's register-allocation idiom (pop-or-grow
// allocation, use-count-driven freeing) generalized from SSA virtual
// registers to circuit serialization cells. Output cells are never freed.
type allocator struct {
	free      []int
	next      int
	remaining map[circuit.NodeID]int
	cellOf    map[circuit.NodeID]int
	isOutput  map[circuit.NodeID]bool
}

func newAllocator() *allocator {
	return &allocator{
		remaining: make(map[circuit.NodeID]int),
		cellOf:    make(map[circuit.NodeID]int),
		isOutput:  make(map[circuit.NodeID]bool),
	}
}

func (a *allocator) alloc() int {
	if n := len(a.free); n > 0 {
		c := a.free[n-1]
		a.free = a.free[:n-1]
		return c
	}
	c := a.next
	a.next++
	return c
}

// assign records that node occupies cell, and remembers uses outstanding
// reads of it (its outgoing edge count at allocation time) so release can
// free the cell once every consumer has read it.
func (a *allocator) assign(node circuit.NodeID, cell int, uses int) {
	a.cellOf[node] = cell
	a.remaining[node] = uses
}

// release decrements node's outstanding-read counter and frees its cell
// once it reaches zero, unless node is a circuit output.
func (a *allocator) release(node circuit.NodeID) {
	a.remaining[node]--
	if a.remaining[node] > 0 || a.isOutput[node] {
		return
	}
	a.free = append(a.free, a.cellOf[node])
}

func (a *allocator) cell(node circuit.NodeID) int { return a.cellOf[node] }
