package circuit

import (
	"math/big"
	"testing"

	"github.com/circkit/circkit/pkg/ring"
)

func TestArithmeticAddMulSimplify(t *testing.T) {
	m := ring.MustNewMod(13)
	c := NewArithmetic(m, Optimized())
	x, err := c.AddInput("x")
	if err != nil {
		t.Fatal(err)
	}

	zero, err := x.Add(0)
	if err != nil {
		t.Fatal(err)
	}
	if zero != x {
		t.Fatalf("x+0 should fold to x itself, got a new node")
	}

	one, err := x.Mul(1)
	if err != nil {
		t.Fatal(err)
	}
	if one != x {
		t.Fatalf("x*1 should fold to x itself")
	}

	z, err := x.Mul(0)
	if err != nil {
		t.Fatal(err)
	}
	if z.Kind() != CONST {
		t.Fatalf("x*0 should fold to a CONST node, got %s", z.Kind())
	}

	if err := c.AddOutput(z); err != nil {
		t.Fatal(err)
	}
	out, err := c.Evaluate([]any{int64(5)})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(*big.Int).Int64() != 0 {
		t.Fatalf("x*0 = %v, want 0", out[0])
	}
}

func TestBooleanXorNotSimplify(t *testing.T) {
	c := NewBoolean(Optimized())
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}

	notA, err := a.Not()
	if err != nil {
		t.Fatal(err)
	}
	back, err := notA.Not()
	if err != nil {
		t.Fatal(err)
	}
	if back != a {
		t.Fatalf("NOT(NOT a) should fold back to a")
	}

	xored, err := a.Xor(true)
	if err != nil {
		t.Fatal(err)
	}
	if xored.Kind() != NOT {
		t.Fatalf("a^1 should fold to NOT a, got %s", xored.Kind())
	}

	if err := c.AddOutput(xored); err != nil {
		t.Fatal(err)
	}
	out, err := c.Evaluate([]any{false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != true {
		t.Fatalf("false^1 = %v, want true", out[0])
	}
}

func TestNewNodeRejectsWrongArity(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.NewNode(AND, Params{}, a); err == nil {
		t.Fatal("expected an arity error for AND with one operand")
	}
}

func TestNewNodeRejectsIllegalOpcodeForFlavor(t *testing.T) {
	c := NewBoolean(Options{})
	if _, err := c.NewNode(EXP, Params{Int: 2}); err == nil {
		t.Fatal("expected EXP to be illegal on a boolean circuit")
	}
}

func TestGetIndexBoundsChecked(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.NewNode(GET, Params{Int: 1}, a); err == nil {
		t.Fatal("expected GET index 1 on a single-output node to be out of range")
	}
}

func TestDuplicateInputNameRejected(t *testing.T) {
	c := NewBoolean(Options{})
	if _, err := c.AddInput("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddInput("a"); err == nil {
		t.Fatal("expected duplicate input name to be rejected")
	}
}
