package circuit

import "fmt"

// Reapply walks src's nodes in topological order and rebuilds each one
// against dst, using mapping as both the seed (nodes already present in
// mapping are not rebuilt) and the accumulator (every node gets an entry
// by the time Reapply returns). It is the sole primitive Compose,
// ConcatOnSameInputs and ConcatParallel are built from, exactly as in the
// source.
func Reapply(src *Circuit, dst *Circuit, mapping map[NodeID]*Node) (map[NodeID]*Node, error) {
	return ReapplyRenaming(src, dst, mapping, nil)
}

// ReapplyRenaming is Reapply with an optional input-name transform,
// applied to inputs that Reapply would otherwise freshly create (not used
// for inputs already present in mapping). ConcatParallel uses this to
// namespace each sub-circuit's default input names so they don't collide.
func ReapplyRenaming(src *Circuit, dst *Circuit, mapping map[NodeID]*Node, renameInput func(string) string) (map[NodeID]*Node, error) {
	out := make(map[NodeID]*Node, len(src.nodes))
	for k, v := range mapping {
		out[k] = v
	}

	for _, n := range src.nodes {
		if _, ok := out[n.id]; ok {
			continue
		}
		switch n.kind {
		case INPUT:
			name := n.params.Str
			if renameInput != nil {
				name = renameInput(name)
			}
			node, err := dst.AddInput(name)
			if err != nil {
				return nil, fmt.Errorf("reapply INPUT %q: %w", name, err)
			}
			out[n.id] = node
		case CONST:
			node, err := dst.NewNode(CONST, n.params)
			if err != nil {
				return nil, fmt.Errorf("reapply CONST: %w", err)
			}
			out[n.id] = node
		case RND:
			node, err := dst.NewNode(RND, Params{})
			if err != nil {
				return nil, fmt.Errorf("reapply RND: %w", err)
			}
			out[n.id] = node
		default:
			incoming := make([]any, len(n.incoming))
			for i, id := range n.incoming {
				mapped, ok := out[id]
				if !ok {
					return nil, fmt.Errorf("reapply %s: operand %d not yet rebuilt", n.kind, id)
				}
				incoming[i] = mapped
			}
			node, err := dst.NewNode(n.kind, n.params, incoming...)
			if err != nil {
				return nil, fmt.Errorf("reapply %s: %w", n.kind, err)
			}
			out[n.id] = node
		}
	}
	CopyNodeInfo(src, dst, wrapSingle(out))
	return out, nil
}

// wrapSingle adapts a src-NodeID -> single-dst-Node mapping (Reapply's
// shape) into the src-NodeID -> dst-Nodes shape CopyNodeInfo expects,
// shared with CircuitTransformer.Run's fan-out mapping.
func wrapSingle(m map[NodeID]*Node) map[NodeID][]*Node {
	out := make(map[NodeID][]*Node, len(m))
	for id, n := range m {
		out[id] = []*Node{n}
	}
	return out
}

// Compose builds a new circuit running circuits[0], feeding its outputs as
// the inputs of circuits[1], whose outputs feed circuits[2], and so on,
// the Go port of circuit.py's compose. All circuits must share the same
// flavor; circuits[i+1] must declare exactly as many inputs as
// circuits[i] declares outputs.
func Compose(circuits ...*Circuit) (*Circuit, error) {
	if len(circuits) == 0 {
		return nil, fmt.Errorf("%w: compose requires at least one circuit", ErrParameter)
	}
	first := circuits[0]
	dst := New(first.Flavor, first.Ring, first.ConstMgr, first.Opts)

	mapping := make(map[NodeID]*Node)
	mapped, err := Reapply(first, dst, mapping)
	if err != nil {
		return nil, err
	}
	prevOutputs := first.Outputs()
	dstPrevOutputs := make([]*Node, len(prevOutputs))
	for i, n := range prevOutputs {
		dstPrevOutputs[i] = mapped[n.id]
	}

	for stage := 1; stage < len(circuits); stage++ {
		cur := circuits[stage]
		if len(cur.inputOrder) != len(dstPrevOutputs) {
			return nil, fmt.Errorf("%w: stage %d expects %d inputs, previous stage produced %d outputs",
				ErrArity, stage, len(cur.inputOrder), len(dstPrevOutputs))
		}
		seed := make(map[NodeID]*Node, len(cur.inputOrder))
		for i, id := range cur.inputOrder {
			seed[id] = dstPrevOutputs[i]
		}
		mapped, err = Reapply(cur, dst, seed)
		if err != nil {
			return nil, err
		}
		outs := cur.Outputs()
		dstPrevOutputs = make([]*Node, len(outs))
		for i, n := range outs {
			dstPrevOutputs[i] = mapped[n.id]
		}
	}

	for _, n := range dstPrevOutputs {
		if err := dst.AddOutput(n); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// ConcatOnSameInputs builds a new circuit sharing one set of inputs across
// all of circuits, concatenating their outputs in order. Every circuit
// must declare the same input names (matched positionally).
func ConcatOnSameInputs(circuits ...*Circuit) (*Circuit, error) {
	if len(circuits) == 0 {
		return nil, fmt.Errorf("%w: concat requires at least one circuit", ErrParameter)
	}
	first := circuits[0]
	dst := New(first.Flavor, first.Ring, first.ConstMgr, first.Opts)

	var sharedInputs []*Node
	for idx, c := range circuits {
		var seed map[NodeID]*Node
		if idx == 0 {
			seed = make(map[NodeID]*Node)
		} else {
			if len(c.inputOrder) != len(sharedInputs) {
				return nil, fmt.Errorf("%w: circuit %d declares %d inputs, expected %d", ErrArity, idx, len(c.inputOrder), len(sharedInputs))
			}
			seed = make(map[NodeID]*Node, len(c.inputOrder))
			for i, id := range c.inputOrder {
				seed[id] = sharedInputs[i]
			}
		}
		mapped, err := Reapply(c, dst, seed)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			sharedInputs = dst.Inputs()
		}
		for _, out := range c.Outputs() {
			if err := dst.AddOutput(mapped[out.id]); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

// ConcatParallel builds a new circuit running circuits side by side, each
// over its own fresh inputs, concatenating both their input lists and
// their output lists in order.
func ConcatParallel(circuits ...*Circuit) (*Circuit, error) {
	if len(circuits) == 0 {
		return nil, fmt.Errorf("%w: concat requires at least one circuit", ErrParameter)
	}
	first := circuits[0]
	dst := New(first.Flavor, first.Ring, first.ConstMgr, first.Opts)

	for idx, c := range circuits {
		prefix := fmt.Sprintf("c%d_", idx)
		mapped, err := ReapplyRenaming(c, dst, make(map[NodeID]*Node), func(name string) string {
			return prefix + name
		})
		if err != nil {
			return nil, err
		}
		for _, out := range c.Outputs() {
			if err := dst.AddOutput(mapped[out.id]); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}
