package bytecode

import (
	"fmt"

	"github.com/circkit/circkit/pkg/circuit"
)

// Build lowers c into a Program: every INPUT gets its own cell (recorded in
// InputCells, in input order), every node gets a cell allocated and freed by
// the free-list allocator once its last consumer has read it (outputs
// excepted), and every XOR/AND/OR/NOT/RND node emits one Instruction. CONST
// and GET are not representable on the wire; c must already be clear of them
// (true of a circuit straight out of transform.ISW, whose CONST visitor
// resolves constants into RND/XOR chains).
func Build(c *circuit.Circuit) (*Program, error) {
	if c.Flavor != circuit.Boolean && c.Flavor != circuit.Bitwise {
		return nil, fmt.Errorf("bytecode: only boolean/bitwise circuits are serializable, got %s", c.Flavor)
	}

	outputSet := make(map[circuit.NodeID]bool)
	for _, n := range c.Outputs() {
		outputSet[n.ID()] = true
	}

	a := newAllocator()
	for id := range outputSet {
		a.isOutput[id] = true
	}

	prog := &Program{}
	nodes := c.Nodes()

	for _, n := range nodes {
		switch n.Kind() {
		case circuit.CONST:
			return nil, fmt.Errorf("bytecode: CONST node %d cannot be serialized; fold or mask it away first", n.ID())
		case circuit.GET:
			parent := n.Incoming()[0]
			if n.Params().Int != 0 {
				return nil, fmt.Errorf("bytecode: multi-output GET on node %d is not representable on the wire", parent)
			}
			cell := a.cell(parent)
			a.assign(n.ID(), cell, len(n.Outgoing()))
			a.release(parent)
			continue
		}

		op, ok := opFor(n.Kind())
		if !ok {
			return nil, fmt.Errorf("bytecode: opcode %s is not in the wire instruction set", n.Kind())
		}

		var srcCells []int
		if n.Kind() != circuit.INPUT {
			srcCells = make([]int, len(n.Incoming()))
			for i, id := range n.Incoming() {
				srcCells[i] = a.cell(id)
			}
		}

		dest := a.alloc()
		a.assign(n.ID(), dest, len(n.Outgoing()))

		if n.Kind() == circuit.INPUT {
			continue
		}

		prog.Code = append(prog.Code, Instruction{Op: op, Dest: dest, Src: srcCells})
		for _, id := range n.Incoming() {
			a.release(id)
		}
	}

	prog.InputCells = make([]int, len(c.Inputs()))
	for i, n := range c.Inputs() {
		prog.InputCells[i] = a.cell(n.ID())
	}
	prog.OutputCells = make([]int, len(c.Outputs()))
	for i, n := range c.Outputs() {
		prog.OutputCells[i] = a.cell(n.ID())
	}

	prog.NInputs = len(prog.InputCells)
	prog.NOutputs = len(prog.OutputCells)
	prog.NOpcodes = len(prog.Code)
	prog.RAMSize = a.next
	return prog, nil
}

// Marshal packs prog into the wire format: a 5xuint64 header in cfg's byte
// order
// (n_inputs, n_outputs, n_opcodes, code_byte_length, ram_size), the input
// cell list, the output cell list, and the instruction stream, each cell
// address and opcode field packed per cfg.
func Marshal(prog *Program, cfg Config) ([]byte, error) {
	code, err := marshalCode(prog.Code, cfg)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 0, 40)
	order := cfg.order()
	putHeaderU64 := func(v uint64) {
		var b [8]byte
		order.PutUint64(b[:], v)
		header = append(header, b[:]...)
	}
	putHeaderU64(uint64(prog.NInputs))
	putHeaderU64(uint64(prog.NOutputs))
	putHeaderU64(uint64(prog.NOpcodes))
	putHeaderU64(uint64(len(code)))
	putHeaderU64(uint64(prog.RAMSize))

	out := header
	for _, c := range prog.InputCells {
		out = cfg.putUint(out, cfg.BytesAddr, uint64(c))
	}
	for _, c := range prog.OutputCells {
		out = cfg.putUint(out, cfg.BytesAddr, uint64(c))
	}
	out = append(out, code...)
	return out, nil
}

func marshalCode(instrs []Instruction, cfg Config) ([]byte, error) {
	var out []byte
	for _, in := range instrs {
		out = cfg.putUint(out, cfg.BytesOp, uint64(in.Op))
		out = cfg.putUint(out, cfg.BytesAddr, uint64(in.Dest))
		for _, s := range in.Src {
			out = cfg.putUint(out, cfg.BytesAddr, uint64(s))
		}
	}
	return out, nil
}

// Serialize is the common-case entry point: Build then Marshal with cfg.
func Serialize(c *circuit.Circuit, cfg Config) ([]byte, error) {
	prog, err := Build(c)
	if err != nil {
		return nil, err
	}
	return Marshal(prog, cfg)
}
