package circuit

import "testing"

func TestRemoveUnusedNodesDropsDeadCode(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.AddInput("b")
	if err != nil {
		t.Fatal(err)
	}
	// dead: never reaches an output
	if _, err := a.And(b); err != nil {
		t.Fatal(err)
	}
	live, err := a.Xor(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(live); err != nil {
		t.Fatal(err)
	}

	before := len(c.Nodes())
	if err := c.RemoveUnusedNodes(); err != nil {
		t.Fatal(err)
	}
	after := len(c.Nodes())
	if after >= before {
		t.Fatalf("expected dead AND node to be removed: before=%d after=%d", before, after)
	}

	out, err := c.Evaluate([]any{true, false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != true {
		t.Fatalf("true xor false = %v, want true", out[0])
	}
}

func TestRemoveUnusedNodesKeepsDanglingInputs(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	unused, err := c.AddInput("unused")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(a); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveUnusedNodes(); err != nil {
		t.Fatal(err)
	}
	if len(c.Inputs()) != 2 {
		t.Fatalf("expected both inputs kept, got %d", len(c.Inputs()))
	}
	_ = unused
}

func TestRemoveDuplicateNodesMergesStructurallyIdentical(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.AddInput("b")
	if err != nil {
		t.Fatal(err)
	}
	x1, err := c.NewNode(XOR, Params{}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	x2, err := c.NewNode(XOR, Params{}, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(x1); err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(x2); err != nil {
		t.Fatal(err)
	}

	before := len(c.Nodes())
	if err := c.RemoveDuplicateNodes(); err != nil {
		t.Fatal(err)
	}
	after := len(c.Nodes())
	if after != before-1 {
		t.Fatalf("expected exactly one duplicate XOR removed: before=%d after=%d", before, after)
	}

	out, err := c.Evaluate([]any{true, false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].(bool) != out[1].(bool) {
		t.Fatalf("deduped outputs should match: %v != %v", out[0], out[1])
	}
}

func TestRenumerateCompactsIDs(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddInput("dead"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(a); err != nil {
		t.Fatal(err)
	}
	if err := c.RemoveUnusedNodes(); err != nil {
		t.Fatal(err)
	}
	c.Renumerate()
	for i, n := range c.Nodes() {
		if int(n.ID()) != i {
			t.Fatalf("node at slot %d has id %d after Renumerate", i, n.ID())
		}
	}
}

func TestReorderInputsAndOutputs(t *testing.T) {
	c := NewBoolean(Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.AddInput("b")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(a); err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(b); err != nil {
		t.Fatal(err)
	}

	if err := c.ReorderInputs([]string{"b", "a"}); err != nil {
		t.Fatal(err)
	}
	if err := c.ReorderOutputs([]int{1, 0}); err != nil {
		t.Fatal(err)
	}

	out, err := c.Evaluate([]any{false, true}) // now: input0=b=false, input1=a=true
	if err != nil {
		t.Fatal(err)
	}
	// outputs were [a, b], reordered to [b, a] == [false, true]
	if out[0].(bool) != false || out[1].(bool) != true {
		t.Fatalf("out = %v, want [false true]", out)
	}
}
