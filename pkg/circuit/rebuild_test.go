package circuit

import "testing"

func notCircuit(t *testing.T) *Circuit {
	t.Helper()
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	n, err := a.Not()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(n); err != nil {
		t.Fatal(err)
	}
	return c
}

func xorCircuit(t *testing.T) *Circuit {
	t.Helper()
	c := NewBoolean(Options{})
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
	if err := c.AddOutput(x); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestComposeChainsCircuits(t *testing.T) {
	// NOT(NOT(a)) == a
	composed, err := Compose(notCircuit(t), notCircuit(t))
	if err != nil {
		t.Fatal(err)
	}
	out, err := composed.Evaluate([]any{true})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != true {
		t.Fatalf("NOT(NOT(true)) = %v, want true", out[0])
	}
	out, err = composed.Evaluate([]any{false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != false {
		t.Fatalf("NOT(NOT(false)) = %v, want false", out[0])
	}
}

func TestComposeRejectsArityMismatch(t *testing.T) {
	if _, err := Compose(notCircuit(t), xorCircuit(t)); err == nil {
		t.Fatal("expected arity mismatch error composing a 1-output circuit into a 2-input one")
	}
}

func TestConcatOnSameInputsSharesInputs(t *testing.T) {
	cat, err := ConcatOnSameInputs(xorCircuit(t), xorCircuit(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Inputs()) != 2 {
		t.Fatalf("expected 2 shared inputs, got %d", len(cat.Inputs()))
	}
	if len(cat.Outputs()) != 2 {
		t.Fatalf("expected 2 concatenated outputs, got %d", len(cat.Outputs()))
	}
	out, err := cat.Evaluate([]any{true, false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != true || out[1].(bool) != true {
		t.Fatalf("out = %v, want [true true]", out)
	}
}

func TestConcatParallelKeepsInputsIndependent(t *testing.T) {
	cat, err := ConcatParallel(notCircuit(t), notCircuit(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Inputs()) != 2 {
		t.Fatalf("expected 2 independent inputs, got %d", len(cat.Inputs()))
	}
	out, err := cat.Evaluate([]any{true, false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != false || out[1].(bool) != true {
		t.Fatalf("out = %v, want [false true]", out)
	}
}

func TestReapplySeedsExistingMapping(t *testing.T) {
	src := xorCircuit(t)
	dst := NewBoolean(Options{})
	preA, err := dst.AddInput("preexisting")
	if err != nil {
		t.Fatal(err)
	}
	seed := map[NodeID]*Node{src.Inputs()[0].ID(): preA}
	mapped, err := Reapply(src, dst, seed)
	if err != nil {
		t.Fatal(err)
	}
	if mapped[src.Inputs()[0].ID()] != preA {
		t.Fatalf("seeded mapping should be preserved, not rebuilt")
	}
	if len(dst.Inputs()) != 2 {
		t.Fatalf("expected one fresh input added for src's second input, got %d total", len(dst.Inputs()))
	}
}
