package ring

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Bit is the trivial GF(2) ring, usable as the optional explicit base ring
// for a boolean circuit (boolean circuits normally run ringless through
// BooleanConstManager; a ringless boolean circuit's RND nodes, e.g. the
// fresh random shares ISW draws, are still evaluated through GF2).
type Bit struct{}

var GF2 = Bit{}

func (Bit) Name() string    { return "GF2" }
func (Bit) Order() *big.Int { return big.NewInt(2) }

func (Bit) Create(v int64) Element {
	return bitElement(v&1 != 0)
}

func (Bit) FromBigInt(v *big.Int) Element {
	return bitElement(v.Bit(0) != 0)
}

func (Bit) RandomElement(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, err
	}
	return bitElement(b[0]&1 != 0), nil
}

type bitElement bool

func (e bitElement) IntegerRepresentation() *big.Int {
	if e {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

func (e bitElement) String() string {
	if e {
		return "1"
	}
	return "0"
}

func (e bitElement) other(x Element) bitElement {
	o, ok := x.(bitElement)
	if !ok {
		panic("ring: element is not a GF2 element")
	}
	return o
}

func (e bitElement) Add(x Element) Element { return bitElement(bool(e) != bool(e.other(x))) }
func (e bitElement) Sub(x Element) Element { return bitElement(bool(e) != bool(e.other(x))) }
func (e bitElement) Mul(x Element) Element { return bitElement(bool(e) && bool(e.other(x))) }
func (e bitElement) Div(x Element) Element {
	o := e.other(x)
	if !o {
		panic(ErrDivisionByZero)
	}
	return e
}
func (e bitElement) Neg() Element { return e }
func (e bitElement) Inv() Element {
	if !e {
		panic(ErrDivisionByZero)
	}
	return e
}
func (e bitElement) Equal(x Element) bool { return e == e.other(x) }
