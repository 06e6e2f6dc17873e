package circuit

import (
	"fmt"
	"math"
	"math/big"

	"github.com/circkit/circkit/pkg/ring"
)

// ConstManager converts a raw Go value (e.g. int, *big.Int, ring.Element)
// into a ring.Element suitable for a CONST node's Params.Const field, and
// converts an evaluated element back to a
// caller-facing Go value. It is the Go port of const_manager.py's
// ConstManager hierarchy. No Create accepts a *Node; an already-constructed
// CONST node is handled by Circuit.AddConst, which returns it unchanged.
type ConstManager interface {
	// Create validates and canonicalizes value, returning the ring.Element
	// to store on the CONST node.
	Create(value any) (ring.Element, error)
	// Output converts an evaluated element back to a plain Go value for
	// Evaluate's return slice (e.g. *big.Int, bool, uint64).
	Output(ring.Element) any
}

// IdentityConstManager performs no conversion; it requires the caller to
// already pass ring.Element values. Used when a circuit has no declared
// ring and constants are opaque tokens.
type IdentityConstManager struct{}

func (IdentityConstManager) Create(value any) (ring.Element, error) {
	if e, ok := value.(ring.Element); ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %v is not a ring.Element", ErrInvalidConstant, value)
}

func (IdentityConstManager) Output(e ring.Element) any { return e }

// ArithmeticConstManager canonicalizes values through a ring, accepting
// int/int64 literals, *big.Int, or an already-ring-typed element.
type ArithmeticConstManager struct {
	Ring ring.Ring
}

func (m ArithmeticConstManager) Create(value any) (ring.Element, error) {
	switch v := value.(type) {
	case ring.Element:
		return v, nil
	case int:
		return m.Ring.Create(int64(v)), nil
	case int64:
		return m.Ring.Create(v), nil
	case float64:
		// JSON numbers decode to float64 through an any-typed field
		// (see circuit.NodeSpec.Value); only exact integers are valid here.
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidConstant, v)
		}
		return m.Ring.Create(int64(v)), nil
	case *big.Int:
		return m.Ring.FromBigInt(v), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %v (%T) into %s", ErrInvalidConstant, value, value, m.Ring.Name())
	}
}

func (m ArithmeticConstManager) Output(e ring.Element) any {
	if ir, ok := e.(ring.IntegerRepresentable); ok {
		return ir.IntegerRepresentation()
	}
	return e
}

// BooleanConstManager only accepts {0,1}/false,true, matching the source's
// strict boolean constant validation.
type BooleanConstManager struct{}

func (BooleanConstManager) Create(value any) (ring.Element, error) {
	switch v := value.(type) {
	case ring.Element:
		return v, nil
	case bool:
		return ring.GF2.Create(boolToInt(v)), nil
	case int:
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: boolean constant must be 0 or 1, got %d", ErrInvalidConstant, v)
		}
		return ring.GF2.Create(int64(v)), nil
	case float64:
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("%w: boolean constant must be 0 or 1, got %v", ErrInvalidConstant, v)
		}
		return ring.GF2.Create(int64(v)), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %v (%T) into a boolean constant", ErrInvalidConstant, value, value)
	}
}

func (BooleanConstManager) Output(e ring.Element) any {
	return e.(ring.IntegerRepresentable).IntegerRepresentation().Int64() != 0
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// BitwiseConstManager canonicalizes values through a fixed-width Word ring.
type BitwiseConstManager struct {
	Ring *ring.Word
}

func (m BitwiseConstManager) Create(value any) (ring.Element, error) {
	switch v := value.(type) {
	case ring.Element:
		return v, nil
	case int:
		return m.Ring.Create(int64(v)), nil
	case int64:
		return m.Ring.Create(v), nil
	case uint64:
		return m.Ring.Create(int64(v)), nil
	case float64:
		return m.Ring.Create(int64(v)), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %v (%T) into %s", ErrInvalidConstant, value, value, m.Ring.Name())
	}
}

func (m BitwiseConstManager) Output(e ring.Element) any {
	return e.(ring.IntegerRepresentable).IntegerRepresentation().Uint64()
}
