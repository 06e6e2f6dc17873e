package bytecode

import (
	"encoding/binary"
	"fmt"
)

var srcArity = map[Op]int{OpXOR: 2, OpAND: 2, OpOR: 2, OpNOT: 1, OpRND: 0}

// getUint reads width bytes from buf at a fixed offset in cfg's byte order.
func (cfg Config) getUint(buf []byte, width int) (uint64, error) {
	if len(buf) < width {
		return 0, fmt.Errorf("bytecode: truncated field, need %d bytes, have %d", width, len(buf))
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(cfg.order().Uint16(buf)), nil
	case 4:
		return uint64(cfg.order().Uint32(buf)), nil
	case 8:
		return cfg.order().Uint64(buf), nil
	default:
		return 0, fmt.Errorf("bytecode: unsupported field width %d", width)
	}
}

// Unmarshal parses a Marshal-produced image back into a Program.
func Unmarshal(data []byte, cfg Config) (*Program, error) {
	if len(data) < 40 {
		return nil, fmt.Errorf("bytecode: image too short for a header (%d bytes)", len(data))
	}
	order := binary.LittleEndian
	if !cfg.LittleEndian {
		order = binary.BigEndian
	}
	nInputs := int(order.Uint64(data[0:8]))
	nOutputs := int(order.Uint64(data[8:16]))
	nOpcodes := int(order.Uint64(data[16:24]))
	codeLen := int(order.Uint64(data[24:32]))
	ramSize := int(order.Uint64(data[32:40]))

	off := 40
	prog := &Program{NInputs: nInputs, NOutputs: nOutputs, NOpcodes: nOpcodes, RAMSize: ramSize}

	readAddr := func() (int, error) {
		v, err := cfg.getUint(data[off:], cfg.BytesAddr)
		if err != nil {
			return 0, err
		}
		off += cfg.BytesAddr
		return int(v), nil
	}

	for i := 0; i < nInputs; i++ {
		c, err := readAddr()
		if err != nil {
			return nil, fmt.Errorf("bytecode: input cell %d: %w", i, err)
		}
		prog.InputCells = append(prog.InputCells, c)
	}
	for i := 0; i < nOutputs; i++ {
		c, err := readAddr()
		if err != nil {
			return nil, fmt.Errorf("bytecode: output cell %d: %w", i, err)
		}
		prog.OutputCells = append(prog.OutputCells, c)
	}

	codeStart := off
	for i := 0; i < nOpcodes; i++ {
		opVal, err := cfg.getUint(data[off:], cfg.BytesOp)
		if err != nil {
			return nil, fmt.Errorf("bytecode: instruction %d opcode: %w", i, err)
		}
		off += cfg.BytesOp
		op := Op(opVal)
		arity, ok := srcArity[op]
		if !ok {
			return nil, fmt.Errorf("bytecode: instruction %d: unknown opcode %d", i, opVal)
		}
		dest, err := readAddr()
		if err != nil {
			return nil, fmt.Errorf("bytecode: instruction %d dest: %w", i, err)
		}
		srcs := make([]int, arity)
		for j := 0; j < arity; j++ {
			s, err := readAddr()
			if err != nil {
				return nil, fmt.Errorf("bytecode: instruction %d src %d: %w", i, j, err)
			}
			srcs[j] = s
		}
		prog.Code = append(prog.Code, Instruction{Op: op, Dest: dest, Src: srcs})
	}
	if off-codeStart != codeLen {
		return nil, fmt.Errorf("bytecode: code stream length mismatch: header says %d bytes, decoded %d", codeLen, off-codeStart)
	}
	return prog, nil
}
