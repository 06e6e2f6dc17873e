package circuit

import (
	"fmt"

	"github.com/circkit/circkit/pkg/ring"
)

// evalOp computes the result of a single precomputable/evaluable operation
// given its already-evaluated operands, the Go rendering of the source's
// per-Operation-class eval() method collapsed into one switch per flavor
// (the teacher's cpu.Exec dispatch idiom, applied at operator granularity
// instead of per-whole-instruction).
func evalOp(flavor Flavor, kind OpKind, params Params, args []ring.Element) (ring.Element, error) {
	switch kind {
	case ADD:
		if flavor == Boolean || flavor == Bitwise {
			return bw(args[0]).Xor(args[1]), nil
		}
		return args[0].Add(args[1]), nil
	case SUB:
		if flavor == Boolean || flavor == Bitwise {
			return bw(args[0]).Xor(args[1]), nil
		}
		return args[0].Sub(args[1]), nil
	case MUL:
		if flavor == Boolean || flavor == Bitwise {
			return bw(args[0]).And(args[1]), nil
		}
		return args[0].Mul(args[1]), nil
	case DIV:
		return safeApply(func() ring.Element { return args[0].Div(args[1]) })
	case NEG:
		if flavor == Boolean {
			return args[0], nil // GF(2): -a == a
		}
		return args[0].Neg(), nil
	case EXP:
		return safeApply(func() ring.Element { return intPow(args[0], params.Int) })
	case INV:
		return safeApply(func() ring.Element { return args[0].Inv() })
	case AND:
		return bw(args[0]).And(args[1]), nil
	case OR:
		return bw(args[0]).Or(args[1]), nil
	case XOR:
		return bw(args[0]).Xor(args[1]), nil
	case NOT:
		return bw(args[0]).Not(), nil
	case SHL:
		return bw(args[0]).Shl(uint(params.Int)), nil
	case SHR:
		return bw(args[0]).Shr(uint(params.Int)), nil
	case ROL:
		return bw(args[0]).Rol(uint(params.Int)), nil
	case ROR:
		return bw(args[0]).Ror(uint(params.Int)), nil
	case MOD:
		return safeApply(func() ring.Element { return bw(args[0]).Mod(args[1]) })
	case LUT:
		return evalLUT(flavor, params, args)
	default:
		return nil, fmt.Errorf("circuit: opcode %s is not a precomputable scalar operation", kind)
	}
}

func bw(e ring.Element) ring.BitwiseElement {
	b, ok := e.(ring.BitwiseElement)
	if !ok {
		panic(fmt.Sprintf("circuit: element %v does not support bitwise/boolean operations", e))
	}
	return b
}

func intPow(base ring.Element, power int) ring.Element {
	if power < 0 {
		panic(fmt.Errorf("%w: EXP power must be a non-negative integer, got %d", ErrParameter, power))
	}
	result := base
	acc := result
	if power == 0 {
		// identity: base^0 — derive 1 by dividing base by itself if
		// nonzero, otherwise fall back to repeated multiplication from
		// a caller-supplied one element is not available here, so EXP(0)
		// on a zero base is left to the ring to reject via Div.
		return base.Div(base)
	}
	acc = result
	for i := 1; i < power; i++ {
		acc = acc.Mul(result)
	}
	return acc
}

func evalLUT(flavor Flavor, params Params, args []ring.Element) (ring.Element, error) {
	idx := 0
	if flavor == Boolean {
		for i, a := range args {
			bit := a.(ring.IntegerRepresentable).IntegerRepresentation().Int64()
			idx |= int(bit) << uint(i)
		}
	} else {
		if len(args) != 1 {
			return nil, fmt.Errorf("circuit: arithmetic/bitwise LUT takes exactly one index input")
		}
		idx = int(args[0].(ring.IntegerRepresentable).IntegerRepresentation().Int64())
	}
	if idx < 0 || idx >= len(params.Table) {
		return nil, fmt.Errorf("%w: LUT index %d out of range [0,%d)", ErrIndex, idx, len(params.Table))
	}
	return params.Table[idx].(ring.Element), nil
}

// safeApply recovers a panic raised by a ring element operation (division
// by zero, inverse of zero) and turns it into an error, matching the
// source's behavior of letting a Python exception propagate out of
// evaluate() while still giving Go callers an error return instead of a
// crash.
func safeApply(f func() ring.Element) (result ring.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("circuit: operation failed: %v", r)
		}
	}()
	result = f()
	return result, nil
}
