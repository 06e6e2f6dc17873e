package ring

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Mod is an arbitrary-modulus integer ring Z/nZ, backed by math/big. It is
// the direct port of the generic ring contract the source circuit module
// expects (create/validate/order), used when no particular field structure
// is required.
type Mod struct {
	modulus *big.Int
}

// NewMod builds the ring Z/nZ for n > 0.
func NewMod(n *big.Int) (*Mod, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("ring: modulus must be positive, got %s", n)
	}
	return &Mod{modulus: new(big.Int).Set(n)}, nil
}

// MustNewMod is NewMod with an int64 modulus, panicking on a non-positive
// value. Convenient for tests and CLI flag defaults.
func MustNewMod(n int64) *Mod {
	m, err := NewMod(big.NewInt(n))
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mod) Name() string      { return fmt.Sprintf("Z/%sZ", m.modulus) }
func (m *Mod) Order() *big.Int   { return new(big.Int).Set(m.modulus) }
func (m *Mod) Create(v int64) Element {
	return m.FromBigInt(big.NewInt(v))
}

func (m *Mod) FromBigInt(v *big.Int) Element {
	r := new(big.Int).Mod(v, m.modulus)
	if r.Sign() < 0 {
		r.Add(r, m.modulus)
	}
	return &modElement{ring: m, v: r}
}

func (m *Mod) RandomElement(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, m.modulus)
	if err != nil {
		return nil, err
	}
	return &modElement{ring: m, v: v}, nil
}

type modElement struct {
	ring *Mod
	v    *big.Int
}

func (e *modElement) IntegerRepresentation() *big.Int { return new(big.Int).Set(e.v) }
func (e *modElement) String() string                  { return e.v.String() }

func (e *modElement) other(x Element) *modElement {
	o, ok := x.(*modElement)
	if !ok || o.ring.modulus.Cmp(e.ring.modulus) != 0 {
		panic(fmt.Sprintf("ring: element %v does not belong to %s", x, e.ring.Name()))
	}
	return o
}

func (e *modElement) Add(x Element) Element {
	return e.ring.FromBigInt(new(big.Int).Add(e.v, e.other(x).v))
}

func (e *modElement) Sub(x Element) Element {
	return e.ring.FromBigInt(new(big.Int).Sub(e.v, e.other(x).v))
}

func (e *modElement) Mul(x Element) Element {
	return e.ring.FromBigInt(new(big.Int).Mul(e.v, e.other(x).v))
}

func (e *modElement) Div(x Element) Element {
	o := e.other(x)
	inv := new(big.Int).ModInverse(o.v, e.ring.modulus)
	if inv == nil {
		panic(fmt.Sprintf("ring: %s has no inverse mod %s", o.v, e.ring.modulus))
	}
	return e.ring.FromBigInt(new(big.Int).Mul(e.v, inv))
}

func (e *modElement) Neg() Element {
	return e.ring.FromBigInt(new(big.Int).Neg(e.v))
}

func (e *modElement) Inv() Element {
	inv := new(big.Int).ModInverse(e.v, e.ring.modulus)
	if inv == nil {
		panic(fmt.Sprintf("ring: %s has no inverse mod %s", e.v, e.ring.modulus))
	}
	return e.ring.FromBigInt(inv)
}

func (e *modElement) Equal(x Element) bool {
	o := e.other(x)
	return e.v.Cmp(o.v) == 0
}
