package bytecode

import (
	"testing"

	"github.com/circkit/circkit/pkg/circuit"
)

func xorAndCircuit(t *testing.T) *circuit.Circuit {
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
	x, err := a.Xor(b)
	if err != nil {
		t.Fatal(err)
	}
	y, err := x.And(a)
	if err != nil {
		t.Fatal(err)
	}
	notY, err := y.Not()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(notY); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSerializeThenExecMatchesEvaluate(t *testing.T) {
	c := xorAndCircuit(t)
	prog, err := Build(c)
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			want, err := c.Evaluate([]any{a, b})
			if err != nil {
				t.Fatal(err)
			}
			got, err := Exec(prog, []bool{a, b}, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got[0] != want[0].(bool) {
				t.Errorf("a=%v b=%v: Exec=%v, circuit.Evaluate=%v", a, b, got[0], want[0])
			}
		}
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	c := xorAndCircuit(t)
	cfg := DefaultConfig()
	data, err := Serialize(c, cfg)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Unmarshal(data, cfg)
	if err != nil {
		t.Fatal(err)
	}

	want, err := Build(c)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.NInputs != want.NInputs || decoded.NOutputs != want.NOutputs || decoded.NOpcodes != want.NOpcodes {
		t.Fatalf("header mismatch: got %+v, want %+v", decoded, want)
	}
	if len(decoded.Code) != len(want.Code) {
		t.Fatalf("decoded %d instructions, want %d", len(decoded.Code), len(want.Code))
	}
	for i := range decoded.Code {
		got, exp := decoded.Code[i], want.Code[i]
		if got.Op != exp.Op || got.Dest != exp.Dest || len(got.Src) != len(exp.Src) {
			t.Fatalf("instruction %d mismatch: got %+v, want %+v", i, got, exp)
		}
		for j := range got.Src {
			if got.Src[j] != exp.Src[j] {
				t.Errorf("instruction %d src %d mismatch: got %d, want %d", i, j, got.Src[j], exp.Src[j])
			}
		}
	}

	out, err := Exec(decoded, []bool{true, false}, nil)
	if err != nil {
		t.Fatal(err)
	}
	evalOut, err := c.Evaluate([]any{true, false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != evalOut[0].(bool) {
		t.Errorf("decoded program disagrees with circuit.Evaluate: %v != %v", out[0], evalOut[0])
	}
}

func TestBuildRejectsConstNode(t *testing.T) {
	c := circuit.NewBoolean(circuit.Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	k, err := c.AddConst(true)
	if err != nil {
		t.Fatal(err)
	}
	x, err := a.Xor(k)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(x); err != nil {
		t.Fatal(err)
	}
	if _, err := Build(c); err == nil {
		t.Fatal("expected Build to reject a circuit containing a CONST node")
	}
}

func TestBuildRejectsArithmeticFlavor(t *testing.T) {
	c := circuit.NewArithmetic(nil, circuit.Options{})
	if _, err := Build(c); err == nil {
		t.Fatal("expected Build to reject an arithmetic circuit")
	}
}
