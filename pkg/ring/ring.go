// Package ring supplies the algebraic backends a circuit can be built over:
// an arbitrary-modulus integer ring, a real prime field, and fixed-width
// bitwise words.
package ring

import (
	"fmt"
	"io"
	"math/big"
)

// Element is a single value belonging to a Ring. Every arithmetic method
// returns a new Element; none mutate the receiver.
type Element interface {
	Add(Element) Element
	Sub(Element) Element
	Mul(Element) Element
	Div(Element) Element
	Neg() Element
	Inv() Element
	Equal(Element) bool
	String() string
}

// IntegerRepresentable is implemented by elements that have a canonical
// integer reading, used by LUT index lookups and constant folding output.
type IntegerRepresentable interface {
	IntegerRepresentation() *big.Int
}

// BitwiseElement is implemented by Element values of a fixed-width word
// ring, and is the extra surface the Bitwise circuit flavor dispatches to.
type BitwiseElement interface {
	Element
	And(Element) Element
	Or(Element) Element
	Xor(Element) Element
	Not() Element
	Shl(n uint) Element
	Shr(n uint) Element
	Rol(n uint) Element
	Ror(n uint) Element
	Mod(Element) Element
	WordSize() uint
}

// Ring creates and validates elements and knows its own order.
type Ring interface {
	Create(v int64) Element
	FromBigInt(v *big.Int) Element
	Order() *big.Int
	RandomElement(r io.Reader) (Element, error)
	Name() string
}

// ErrDivisionByZero is the value Bit, BN254Scalar and Word elements panic
// with when Div, Inv or Mod meets a zero divisor; Mod elements panic with
// their own message instead.
var ErrDivisionByZero = fmt.Errorf("ring: division by zero")
