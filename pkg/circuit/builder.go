package circuit

import "github.com/circkit/circkit/pkg/ring"

// Builder methods are the Go rendering of the source's Node operator
// overloads (arithmetic.py/boolean.py/bitwise/circuit.py __add__ etc).
// Each accepts either a *Node or a literal (auto-wrapped via AddConst).
// When Circuit.Opts.Simplify is set, identity/annihilator peephole
// rewrites are applied before falling through to NewNode, mirroring the
// source's Opt{Arithmetic,Boolean}Circuit subclasses.

func isConstInt(n *Node, v int64) bool {
	if n.kind != CONST {
		return false
	}
	ir, ok := n.params.Const.(ring.IntegerRepresentable)
	if !ok {
		return false
	}
	return ir.IntegerRepresentation().Int64() == v
}

// Add builds a+b (arithmetic) or a^b (boolean/bitwise, ADD aliases XOR).
func (n *Node) Add(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	if c.Flavor != Arithmetic {
		return n.Xor(b)
	}
	if c.Opts.Simplify {
		if isConstInt(b, 0) {
			return n, nil
		}
		if isConstInt(n, 0) {
			return b, nil
		}
	}
	return c.NewNode(ADD, Params{}, n, b)
}

// Sub builds a-b (arithmetic) or a^b (boolean/bitwise, SUB aliases XOR).
func (n *Node) Sub(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	if c.Flavor != Arithmetic {
		return n.Xor(b)
	}
	if c.Opts.Simplify {
		if isConstInt(b, 0) {
			return n, nil
		}
		if isConstInt(n, 0) {
			return b.Neg()
		}
	}
	return c.NewNode(SUB, Params{}, n, b)
}

// Mul builds a*b (arithmetic) or a&b (boolean/bitwise, MUL aliases AND).
func (n *Node) Mul(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	if c.Flavor != Arithmetic {
		return n.And(b)
	}
	if c.Opts.Simplify {
		if isConstInt(b, 0) || isConstInt(n, 0) {
			return c.AddConst(0)
		}
		if isConstInt(b, 1) {
			return n, nil
		}
		if isConstInt(n, 1) {
			return b, nil
		}
		// Deliberately NOT simplifying a*-1 -> -a: disabled upstream, no
		// test pins the expected node shape.
	}
	return c.NewNode(MUL, Params{}, n, b)
}

// Div builds a/b. DIV is a black-box operation: never touched by peephole
// simplification even when b is a known constant.
func (n *Node) Div(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	return c.NewNode(DIV, Params{}, n, b)
}

// Neg builds -a (arithmetic/bitwise) or a (boolean, GF(2) negation is the
// identity).
func (n *Node) Neg() (*Node, error) {
	if n.circuit.Flavor == Boolean {
		return n, nil
	}
	return n.circuit.NewNode(NEG, Params{}, n)
}

// Exp builds a^power. Integer powers only, by design (see spec design
// notes); no fractional-power support is implemented.
func (n *Node) Exp(power int) (*Node, error) {
	return n.circuit.NewNode(EXP, Params{Int: power}, n)
}

// Inv builds the multiplicative inverse of a.
func (n *Node) Inv() (*Node, error) {
	return n.circuit.NewNode(INV, Params{}, n)
}

// And builds a&b, simplified when Simplify is set: a&0 -> 0, a&1 -> a. The
// 1-operand identity only holds for single-bit boolean (a multi-bit Word
// ANDed with the integer 1 masks to the low bit, it does not return a
// unchanged), so it is gated to the Boolean flavor exactly like the
// source, which has no OptBitwiseCircuit.
func (n *Node) And(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	if c.Opts.Simplify && c.Flavor == Boolean {
		if isConstInt(b, 0) || isConstInt(n, 0) {
			return c.AddConst(0)
		}
		if isConstInt(b, 1) {
			return n, nil
		}
		if isConstInt(n, 1) {
			return b, nil
		}
	}
	return c.NewNode(AND, Params{}, n, b)
}

// Or builds a|b, simplified when Simplify is set: a|0 -> a, a|1 -> 1. The
// 1-operand identity only holds for single-bit boolean (ORing a multi-bit
// Word with the integer 1 does not saturate every bit), so it is gated to
// the Boolean flavor exactly like the source, which has no
// OptBitwiseCircuit.
func (n *Node) Or(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	if c.Opts.Simplify && c.Flavor == Boolean {
		if isConstInt(b, 1) || isConstInt(n, 1) {
			return c.AddConst(1)
		}
		if isConstInt(b, 0) {
			return n, nil
		}
		if isConstInt(n, 0) {
			return b, nil
		}
	}
	return c.NewNode(OR, Params{}, n, b)
}

// Xor builds a^b, simplified when Simplify is set: a^0 -> a, a^1 -> NOT a.
// The 1-operand identity only holds for single-bit boolean (XORing a
// multi-bit Word with the integer 1 flips only the low bit, it is not a
// full NOT), so it is gated to the Boolean flavor exactly like the source,
// which has no OptBitwiseCircuit.
func (n *Node) Xor(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	if c.Opts.Simplify && c.Flavor == Boolean {
		if isConstInt(b, 0) {
			return n, nil
		}
		if isConstInt(n, 0) {
			return b, nil
		}
		if isConstInt(b, 1) {
			return n.Not()
		}
		if isConstInt(n, 1) {
			return b.Not()
		}
	}
	return c.NewNode(XOR, Params{}, n, b)
}

// Not builds NOT a, collapsing NOT(NOT a) -> a when Simplify is set.
func (n *Node) Not() (*Node, error) {
	c := n.circuit
	if c.Opts.Simplify && n.kind == NOT {
		return c.Node(n.incoming[0]), nil
	}
	return c.NewNode(NOT, Params{}, n)
}

// Shl builds a left-shifted by amount.
func (n *Node) Shl(amount int) (*Node, error) { return n.circuit.NewNode(SHL, Params{Int: amount}, n) }

// Shr builds a right-shifted by amount.
func (n *Node) Shr(amount int) (*Node, error) { return n.circuit.NewNode(SHR, Params{Int: amount}, n) }

// Rol builds a rotated left by amount (mod word size).
func (n *Node) Rol(amount int) (*Node, error) { return n.circuit.NewNode(ROL, Params{Int: amount}, n) }

// Ror builds a rotated right by amount (mod word size).
func (n *Node) Ror(amount int) (*Node, error) { return n.circuit.NewNode(ROR, Params{Int: amount}, n) }

// Mod builds a%b (bitwise flavor only).
func (n *Node) Mod(other any) (*Node, error) {
	c := n.circuit
	b, err := c.toNode(other)
	if err != nil {
		return nil, err
	}
	return c.NewNode(MOD, Params{}, n, b)
}

// Get builds the index'th result of a multi-output node.
func (n *Node) Get(index int) (*Node, error) {
	return n.circuit.NewNode(GET, Params{Int: index}, n)
}

// Lut builds a table lookup indexed by args (a single integer-valued index
// for arithmetic/bitwise, or the bit-packed tuple of args for boolean).
func (c *Circuit) Lut(table []any, args ...any) (*Node, error) {
	anyIncoming := make([]any, len(args))
	copy(anyIncoming, args)
	return c.NewNode(LUT, Params{Table: table}, anyIncoming...)
}

// Rnd builds a fresh random node, drawing from the ring's RandomElement at
// evaluation time.
func (c *Circuit) Rnd() (*Node, error) {
	return c.NewNode(RND, Params{})
}
