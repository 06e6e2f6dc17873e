package circuit

import (
	"math/big"
	"testing"
)

func TestParseOpKindRoundTrips(t *testing.T) {
	for k := OpKind(0); k < opKindCount; k++ {
		name := k.String()
		if name == "UNKNOWN" {
			continue
		}
		got, ok := ParseOpKind(name)
		if !ok || got != k {
			t.Errorf("ParseOpKind(%q) = (%v, %v), want (%v, true)", name, got, ok, k)
		}
	}
	if _, ok := ParseOpKind("NOPE"); ok {
		t.Error("ParseOpKind should reject an unknown name")
	}
}

func TestBuildBooleanXorDocument(t *testing.T) {
	doc := Document{
		Flavor: "boolean",
		Nodes: []NodeSpec{
			{Op: "INPUT", Name: "a"},
			{Op: "INPUT", Name: "b"},
			{Op: "XOR", Args: []int{0, 1}},
		},
		Outputs: []int{2},
	}
	c, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Evaluate([]any{true, false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != true {
		t.Fatalf("true xor false = %v, want true", out[0])
	}
}

func TestBuildArithmeticDocumentWithModRing(t *testing.T) {
	doc := Document{
		Flavor: "arithmetic",
		Ring:   &RingSpec{Type: "mod", Modulus: "13"},
		Nodes: []NodeSpec{
			{Op: "INPUT", Name: "x"},
			{Op: "CONST", Value: float64(3)},
			{Op: "ADD", Args: []int{0, 1}},
		},
		Outputs: []int{2},
	}
	c, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Evaluate([]any{int64(10)})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(*big.Int).Int64() != 0 {
		t.Fatalf("10+3 mod 13 = %v, want 0", out[0])
	}
}

func TestBuildRejectsForwardReference(t *testing.T) {
	doc := Document{
		Flavor: "boolean",
		Nodes: []NodeSpec{
			{Op: "NOT", Args: []int{1}},
			{Op: "INPUT", Name: "a"},
		},
		Outputs: []int{0},
	}
	if _, err := Build(doc); err == nil {
		t.Fatal("expected a forward-reference error")
	}
}

func TestBuildBitwiseDocument(t *testing.T) {
	doc := Document{
		Flavor: "bitwise",
		Ring:   &RingSpec{Type: "word", Width: 8},
		Nodes: []NodeSpec{
			{Op: "INPUT", Name: "a"},
			{Op: "CONST", Value: float64(0xFF)},
			{Op: "AND", Args: []int{0, 1}},
		},
		Outputs: []int{2},
	}
	c, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.Evaluate([]any{int64(0x0F)})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(uint64) != 0x0F {
		t.Fatalf("0x0F & 0xFF = %v, want 0x0F", out[0])
	}
}
