package circuit

import (
	"fmt"
	"math/big"

	"github.com/circkit/circkit/pkg/ring"
)

// ParseOpKind looks up an OpKind by its string name (case-sensitive, as
// rendered by OpKind.String), for the JSON circuit IR the CLI reads.
func ParseOpKind(name string) (OpKind, bool) {
	for k := OpKind(0); k < opKindCount; k++ {
		if opNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// RingSpec selects a base ring for an arithmetic or bitwise Document, the
// JSON counterpart of picking a ring.Mod/ring.BN254Scalar/ring.Word
// constructor call.
type RingSpec struct {
	Type    string `json:"type"`              // "mod", "bn254", "word"
	Modulus string `json:"modulus,omitempty"` // decimal string, "mod" only
	Width   uint   `json:"width,omitempty"`   // bit width, "word" only
}

// NodeSpec is one entry in a Document's node list: an opcode plus whatever
// Params fields and operand references it needs. Args indexes earlier
// entries in the same Document (0-based, in list order); a node may only
// reference nodes that precede it.
type NodeSpec struct {
	Op    string `json:"op"`
	Name  string `json:"name,omitempty"`  // INPUT
	Value any    `json:"value,omitempty"` // CONST
	Int   int    `json:"int,omitempty"`   // EXP power, SHL/SHR/ROL/ROR amount, GET index
	Table []any  `json:"table,omitempty"` // LUT
	Args  []int  `json:"args,omitempty"`
}

// Document is the small JSON circuit IR `circkit build`/`eval`/`mask`/
// `serialize` read: a flavor, an optional ring, a flat node list, and an
// output index list.
type Document struct {
	Flavor  string     `json:"flavor"`
	Ring    *RingSpec  `json:"ring,omitempty"`
	Opts    Options    `json:"opts,omitempty"`
	Nodes   []NodeSpec `json:"nodes"`
	Outputs []int      `json:"outputs"`
}

// Build constructs a Circuit from doc, resolving Args as indices into the
// nodes built so far.
func Build(doc Document) (*Circuit, error) {
	var c *Circuit
	switch doc.Flavor {
	case "boolean":
		c = NewBoolean(doc.Opts)
	case "arithmetic":
		r, err := buildArithmeticRing(doc.Ring)
		if err != nil {
			return nil, err
		}
		c = NewArithmetic(r, doc.Opts)
	case "bitwise":
		w, err := buildWordRing(doc.Ring)
		if err != nil {
			return nil, err
		}
		c = NewBitwise(w, doc.Opts)
	default:
		return nil, fmt.Errorf("%w: unknown flavor %q", ErrParameter, doc.Flavor)
	}

	built := make([]*Node, len(doc.Nodes))
	for i, spec := range doc.Nodes {
		kind, ok := ParseOpKind(spec.Op)
		if !ok {
			return nil, fmt.Errorf("%w: node %d: unknown opcode %q", ErrParameter, i, spec.Op)
		}

		var args []any
		for _, ref := range spec.Args {
			if ref < 0 || ref >= i || built[ref] == nil {
				return nil, fmt.Errorf("%w: node %d references node %d, which is not yet built", ErrIndex, i, ref)
			}
			args = append(args, built[ref])
		}

		var node *Node
		var err error
		switch kind {
		case INPUT:
			node, err = c.AddInput(spec.Name)
		case CONST:
			node, err = c.AddConst(spec.Value)
		default:
			params := Params{Int: spec.Int, Str: spec.Name, Table: spec.Table}
			node, err = c.NewNode(kind, params, args...)
		}
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, spec.Op, err)
		}
		built[i] = node
	}

	for _, ref := range doc.Outputs {
		if ref < 0 || ref >= len(built) {
			return nil, fmt.Errorf("%w: output references node %d, out of range", ErrIndex, ref)
		}
		if err := c.AddOutput(built[ref]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func buildArithmeticRing(spec *RingSpec) (ring.Ring, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: an arithmetic document requires a ring", ErrParameter)
	}
	switch spec.Type {
	case "mod":
		m, ok := new(big.Int).SetString(spec.Modulus, 10)
		if !ok {
			return nil, fmt.Errorf("%w: invalid modulus %q", ErrParameter, spec.Modulus)
		}
		return ring.NewMod(m)
	case "bn254":
		return ring.BN254, nil
	default:
		return nil, fmt.Errorf("%w: arithmetic ring type must be \"mod\" or \"bn254\", got %q", ErrParameter, spec.Type)
	}
}

func buildWordRing(spec *RingSpec) (*ring.Word, error) {
	if spec == nil || spec.Type != "word" {
		return nil, fmt.Errorf("%w: a bitwise document requires a \"word\" ring", ErrParameter)
	}
	return ring.NewWord(spec.Width)
}
