package bytecode

import (
	"fmt"
	"io"
)

// Exec runs prog against inputs (one bool per InputCells entry, in order),
// drawing a fresh random bit from rnd for every RND instruction, and returns
// one bool per OutputCells entry. It is a reference interpreter for the wire
// format, used to cross-check Marshal/Unmarshal against circuit.Evaluate.
func Exec(prog *Program, inputs []bool, rnd io.Reader) ([]bool, error) {
	if len(inputs) != prog.NInputs {
		return nil, fmt.Errorf("bytecode: expected %d inputs, got %d", prog.NInputs, len(inputs))
	}
	ram := make([]bool, prog.RAMSize)
	for i, cell := range prog.InputCells {
		ram[cell] = inputs[i]
	}

	randBit := func() (bool, error) {
		var b [1]byte
		if _, err := io.ReadFull(rnd, b[:]); err != nil {
			return false, err
		}
		return b[0]&1 == 1, nil
	}

	for _, in := range prog.Code {
		var v bool
		switch in.Op {
		case OpXOR:
			v = ram[in.Src[0]] != ram[in.Src[1]]
		case OpAND:
			v = ram[in.Src[0]] && ram[in.Src[1]]
		case OpOR:
			v = ram[in.Src[0]] || ram[in.Src[1]]
		case OpNOT:
			v = !ram[in.Src[0]]
		case OpRND:
			bit, err := randBit()
			if err != nil {
				return nil, fmt.Errorf("bytecode: drawing RND: %w", err)
			}
			v = bit
		default:
			return nil, fmt.Errorf("bytecode: unknown opcode %d", in.Op)
		}
		ram[in.Dest] = v
	}

	out := make([]bool, prog.NOutputs)
	for i, cell := range prog.OutputCells {
		out[i] = ram[cell]
	}
	return out, nil
}
