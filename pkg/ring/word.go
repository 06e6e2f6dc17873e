package ring

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Word is the ring of unsigned w-bit words under arithmetic mod 2^w, the
// Go port of the source's BitwiseRing/Word pair. It additionally satisfies
// BitwiseElement, so the bitwise circuit flavor can dispatch AND/OR/XOR/NOT
// /SHL/SHR/ROL/ROR straight through the ring element.
type Word struct {
	size uint64
	mask uint64
}

// NewWord builds the ring of unsigned words of the given bit width (1-64).
func NewWord(size uint) (*Word, error) {
	if size == 0 || size > 64 {
		return nil, fmt.Errorf("ring: word size must be in [1,64], got %d", size)
	}
	var mask uint64
	if size == 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << size) - 1
	}
	return &Word{size: uint64(size), mask: mask}, nil
}

func (w *Word) Name() string    { return fmt.Sprintf("Word%d", w.size) }
func (w *Word) Order() *big.Int { return new(big.Int).Lsh(big.NewInt(1), uint(w.size)) }

func (w *Word) Create(v int64) Element {
	return wordElement{ring: w, v: uint64(v) & w.mask}
}

func (w *Word) FromBigInt(v *big.Int) Element {
	var m big.Int
	m.Mod(v, w.Order())
	return wordElement{ring: w, v: m.Uint64() & w.mask}
}

func (w *Word) RandomElement(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(buf[i])
	}
	return wordElement{ring: w, v: v & w.mask}, nil
}

type wordElement struct {
	ring *Word
	v    uint64
}

func (e wordElement) IntegerRepresentation() *big.Int { return new(big.Int).SetUint64(e.v) }
func (e wordElement) String() string                  { return fmt.Sprintf("0x%x", e.v) }
func (e wordElement) WordSize() uint                  { return uint(e.ring.size) }

func (e wordElement) other(x Element) wordElement {
	o, ok := x.(wordElement)
	if !ok || o.ring.size != e.ring.size {
		panic(fmt.Sprintf("ring: element %v is not a Word%d element", x, e.ring.size))
	}
	return o
}

func (e wordElement) Add(x Element) Element {
	o := e.other(x)
	return wordElement{ring: e.ring, v: (e.v + o.v) & e.ring.mask}
}

func (e wordElement) Sub(x Element) Element {
	o := e.other(x)
	return wordElement{ring: e.ring, v: (e.v - o.v) & e.ring.mask}
}

func (e wordElement) Mul(x Element) Element {
	o := e.other(x)
	return wordElement{ring: e.ring, v: (e.v * o.v) & e.ring.mask}
}

// Div is unsigned integer division, matching the source's treatment of
// bitwise DIV as a plain word division rather than a modular inverse.
func (e wordElement) Div(x Element) Element {
	o := e.other(x)
	if o.v == 0 {
		panic(ErrDivisionByZero)
	}
	return wordElement{ring: e.ring, v: (e.v / o.v) & e.ring.mask}
}

func (e wordElement) Mod(x Element) Element {
	o := e.other(x)
	if o.v == 0 {
		panic(ErrDivisionByZero)
	}
	return wordElement{ring: e.ring, v: (e.v % o.v) & e.ring.mask}
}

func (e wordElement) Neg() Element {
	return wordElement{ring: e.ring, v: (-e.v) & e.ring.mask}
}

// Inv has no general meaning over Z/2^wZ for even words; callers should not
// rely on it outside the rare odd-word invertible case.
func (e wordElement) Inv() Element {
	inv := new(big.Int).ModInverse(big.NewInt(int64(e.v)), e.ring.Order())
	if inv == nil {
		panic(fmt.Sprintf("ring: %d has no inverse mod 2^%d", e.v, e.ring.size))
	}
	return e.ring.FromBigInt(inv)
}

func (e wordElement) Equal(x Element) bool {
	o := e.other(x)
	return e.v == o.v
}

func (e wordElement) And(x Element) Element {
	o := e.other(x)
	return wordElement{ring: e.ring, v: e.v & o.v}
}

func (e wordElement) Or(x Element) Element {
	o := e.other(x)
	return wordElement{ring: e.ring, v: e.v | o.v}
}

func (e wordElement) Xor(x Element) Element {
	o := e.other(x)
	return wordElement{ring: e.ring, v: e.v ^ o.v}
}

func (e wordElement) Not() Element {
	return wordElement{ring: e.ring, v: (^e.v) & e.ring.mask}
}

func (e wordElement) Shl(n uint) Element {
	if n >= uint(e.ring.size) {
		return wordElement{ring: e.ring, v: 0}
	}
	return wordElement{ring: e.ring, v: (e.v << n) & e.ring.mask}
}

func (e wordElement) Shr(n uint) Element {
	if n >= uint(e.ring.size) {
		return wordElement{ring: e.ring, v: 0}
	}
	return wordElement{ring: e.ring, v: (e.v >> n) & e.ring.mask}
}

// Rol rotates left by n mod the word size, as in the source.
func (e wordElement) Rol(n uint) Element {
	size := uint(e.ring.size)
	n %= size
	if n == 0 {
		return e
	}
	v := ((e.v << n) | (e.v >> (size - n))) & e.ring.mask
	return wordElement{ring: e.ring, v: v}
}

// Ror rotates right by n mod the word size, as in the source.
func (e wordElement) Ror(n uint) Element {
	size := uint(e.ring.size)
	n %= size
	if n == 0 {
		return e
	}
	v := ((e.v >> n) | (e.v << (size - n))) & e.ring.mask
	return wordElement{ring: e.ring, v: v}
}
