// Package bytecode serializes a boolean circuit into the compact register-
// machine wire format the source's wboxkit/serialize.py emits: a fixed
// header, input/output address cells, and a flat instruction stream of
// (opcode, dest, sources) triples over an opcode set limited to
// {XOR,AND,OR,NOT,RND}.
package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/circkit/circkit/pkg/circuit"
)

// Op is the wire opcode for one serialized instruction, distinct from
// circuit.OpKind: the target machine only ever executes these five.
type Op uint8

const (
	OpXOR Op = 1
	OpAND Op = 2
	OpOR  Op = 3
	OpNOT Op = 4
	OpRND Op = 5
)

var opNames = map[Op]string{OpXOR: "XOR", OpAND: "AND", OpOR: "OR", OpNOT: "NOT", OpRND: "RND"}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// opFor maps a circuit opcode to its wire Op, or reports it as unsupported.
func opFor(kind circuit.OpKind) (Op, bool) {
	switch kind {
	case circuit.XOR:
		return OpXOR, true
	case circuit.AND:
		return OpAND, true
	case circuit.OR:
		return OpOR, true
	case circuit.NOT:
		return OpNOT, true
	case circuit.RND:
		return OpRND, true
	default:
		return 0, false
	}
}

// Config controls the byte widths and endianness used to pack a Program's
// header fields and instruction stream. Defaults match wboxkit's target.
type Config struct {
	BytesOp      int // width of each instruction's opcode field
	BytesAddr    int // width of each cell address (dest, src, input/output cell)
	LittleEndian bool
}

// DefaultConfig is bytes_op=1, bytes_addr=2, little-endian, matching the
// source's default serialize() parameters.
func DefaultConfig() Config {
	return Config{BytesOp: 1, BytesAddr: 2, LittleEndian: true}
}

func (cfg Config) order() binary.ByteOrder {
	if cfg.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// putUint writes v into buf's low cfg width bytes in cfg's byte order and
// returns the extended buffer.
func (cfg Config) putUint(buf []byte, width int, v uint64) []byte {
	start := len(buf)
	buf = append(buf, make([]byte, width)...)
	switch width {
	case 1:
		buf[start] = byte(v)
	case 2:
		cfg.order().PutUint16(buf[start:], uint16(v))
	case 4:
		cfg.order().PutUint32(buf[start:], uint32(v))
	case 8:
		cfg.order().PutUint64(buf[start:], v)
	default:
		panic(fmt.Sprintf("bytecode: unsupported field width %d", width))
	}
	return buf
}

// Program is the parsed form of a serialized bytecode image: a header plus
// the three wire sections (input cells, output cells, code stream).
type Program struct {
	NInputs  int
	NOutputs int
	NOpcodes int
	RAMSize  int

	InputCells  []int
	OutputCells []int
	Code        []Instruction
}

// Instruction is one decoded (opcode, dest, sources) triple.
type Instruction struct {
	Op   Op
	Dest int
	Src  []int
}
