package transform

import (
	"testing"

	"github.com/circkit/circkit/pkg/circuit"
	"github.com/circkit/circkit/pkg/verify"
)

func andCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewBoolean(circuit.Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.AddInput("b")
	if err != nil {
		t.Fatal(err)
	}
	x, err := a.And(b)
	if err != nil {
		t.Fatal(err)
	}
	y, err := x.Xor(a)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(y); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestISWOrderOneSoundness(t *testing.T) {
	src := andCircuit(t)
	dst := circuit.NewBoolean(circuit.Options{})
	if _, err := ISW(src, dst, 1); err != nil {
		t.Fatal(err)
	}
	if len(dst.Inputs()) != len(src.Inputs())*2 {
		t.Fatalf("expected %d masked inputs, got %d", len(src.Inputs())*2, len(dst.Inputs()))
	}
	if len(dst.Outputs()) != len(src.Outputs())*2 {
		t.Fatalf("expected %d masked outputs, got %d", len(src.Outputs())*2, len(dst.Outputs()))
	}
	ok, err := verify.CheckISW(src, dst, 1, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("order-1 masked AND/XOR circuit failed soundness check")
	}
}

func TestISWOrderTwoSoundness(t *testing.T) {
	src := andCircuit(t)
	dst := circuit.NewBoolean(circuit.Options{})
	if _, err := ISW(src, dst, 2); err != nil {
		t.Fatal(err)
	}
	ok, err := verify.CheckISW(src, dst, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("order-2 masked circuit failed soundness check")
	}
}

func TestISWRejectsNegativeOrder(t *testing.T) {
	src := andCircuit(t)
	dst := circuit.NewBoolean(circuit.Options{})
	if _, err := ISW(src, dst, -1); err == nil {
		t.Fatal("expected an error for a negative masking order")
	}
}
