package ring

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BN254Scalar is the scalar field of the BN254 pairing-friendly curve, the
// same field github.com/consensys/go-corset builds its constraint system
// over via gnark-crypto. It gives the arithmetic circuit flavor a
// production-grade, cryptographically sized prime field instead of a toy
// modulus.
type BN254Scalar struct{}

// BN254 is the singleton BN254 scalar field ring.
var BN254 = BN254Scalar{}

func (BN254Scalar) Name() string { return "BN254Fr" }

func (BN254Scalar) Order() *big.Int {
	return fr.Modulus()
}

func (BN254Scalar) Create(v int64) Element {
	var e fr.Element
	e.SetInt64(v)
	return bn254Element{e}
}

func (BN254Scalar) FromBigInt(v *big.Int) Element {
	var e fr.Element
	e.SetBigInt(v)
	return bn254Element{e}
}

func (BN254Scalar) RandomElement(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, fr.Modulus())
	if err != nil {
		return nil, err
	}
	var e fr.Element
	e.SetBigInt(v)
	return bn254Element{e}, nil
}

type bn254Element struct {
	v fr.Element
}

func (e bn254Element) IntegerRepresentation() *big.Int {
	var out big.Int
	e.v.BigInt(&out)
	return &out
}

func (e bn254Element) String() string { return e.v.String() }

func (e bn254Element) other(x Element) fr.Element {
	o, ok := x.(bn254Element)
	if !ok {
		panic(fmt.Sprintf("ring: element %v is not a BN254Fr element", x))
	}
	return o.v
}

func (e bn254Element) Add(x Element) Element {
	var out fr.Element
	o := e.other(x)
	out.Add(&e.v, &o)
	return bn254Element{out}
}

func (e bn254Element) Sub(x Element) Element {
	var out fr.Element
	o := e.other(x)
	out.Sub(&e.v, &o)
	return bn254Element{out}
}

func (e bn254Element) Mul(x Element) Element {
	var out fr.Element
	o := e.other(x)
	out.Mul(&e.v, &o)
	return bn254Element{out}
}

func (e bn254Element) Div(x Element) Element {
	o := e.other(x)
	if o.IsZero() {
		panic(ErrDivisionByZero)
	}
	var inv, out fr.Element
	inv.Inverse(&o)
	out.Mul(&e.v, &inv)
	return bn254Element{out}
}

func (e bn254Element) Neg() Element {
	var out fr.Element
	out.Neg(&e.v)
	return bn254Element{out}
}

func (e bn254Element) Inv() Element {
	if e.v.IsZero() {
		panic(ErrDivisionByZero)
	}
	var out fr.Element
	out.Inverse(&e.v)
	return bn254Element{out}
}

func (e bn254Element) Equal(x Element) bool {
	o := e.other(x)
	return e.v.Equal(&o)
}
