package circuit

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/circkit/circkit/pkg/ring"
)

// EvalOption configures a single Evaluate/Trace call.
type EvalOption func(*evalConfig)

type evalConfig struct {
	rand io.Reader
}

// WithRandSource overrides the source RND draws from (default
// crypto/rand.Reader). Tests inject a seeded source for determinism.
func WithRandSource(r io.Reader) EvalOption {
	return func(c *evalConfig) { c.rand = r }
}

func newEvalConfig(opts []EvalOption) evalConfig {
	cfg := evalConfig{rand: rand.Reader}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// slot is what a node's single pass through Trace/Evaluate produces: a
// scalar element for ordinary nodes, or a per-output slice for a
// multi-output node indexed by its GET children.
type slot struct {
	scalar ring.Element
	multi  []ring.Element
}

// Evaluate runs the circuit forward on inputs (one per registered input,
// in registration order; each may be a raw Go value or a ring.Element) and
// returns one converted Go value per registered output.
func (c *Circuit) Evaluate(inputs []any, opts ...EvalOption) ([]any, error) {
	memo, err := c.run(inputs, opts)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(c.outputOrder))
	for i, id := range c.outputOrder {
		out[i] = c.ConstMgr.Output(memo[id].scalar)
	}
	return out, nil
}

// Trace runs the circuit forward exactly like Evaluate but returns the
// full node -> value memory map (keyed by NodeID), the Go port of the
// source's trace().
func (c *Circuit) Trace(inputs []any, opts ...EvalOption) (map[NodeID]any, error) {
	memo, err := c.run(inputs, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[NodeID]any, len(memo))
	for id, s := range memo {
		if s.multi != nil {
			vals := make([]any, len(s.multi))
			for i, e := range s.multi {
				vals[i] = c.ConstMgr.Output(e)
			}
			out[id] = vals
			continue
		}
		out[id] = c.ConstMgr.Output(s.scalar)
	}
	return out, nil
}

func (c *Circuit) run(inputs []any, opts []EvalOption) (map[NodeID]slot, error) {
	if len(inputs) != len(c.inputOrder) {
		return nil, fmt.Errorf("%w: circuit has %d inputs, got %d", ErrInputArity, len(c.inputOrder), len(inputs))
	}
	cfg := newEvalConfig(opts)

	inputValues := make(map[NodeID]ring.Element, len(inputs))
	for i, id := range c.inputOrder {
		elem, err := c.ConstMgr.Create(inputs[i])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		inputValues[id] = elem
	}

	memo := make(map[NodeID]slot, len(c.nodes))
	for _, node := range c.nodes {
		s, err := c.evalNode(node, memo, inputValues, &cfg)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", node.id, node.kind, err)
		}
		memo[node.id] = s
	}
	return memo, nil
}

func (c *Circuit) evalNode(node *Node, memo map[NodeID]slot, inputValues map[NodeID]ring.Element, cfg *evalConfig) (slot, error) {
	switch node.kind {
	case INPUT:
		return slot{scalar: inputValues[node.id]}, nil
	case CONST:
		return slot{scalar: node.params.Const.(ring.Element)}, nil
	case RND:
		r := c.Ring
		if r == nil && c.Flavor == Boolean {
			// A ringless boolean circuit draws its random bits from GF(2).
			r = ring.GF2
		}
		if r == nil {
			return slot{}, fmt.Errorf("circuit: RND requires a base ring")
		}
		e, err := r.RandomElement(cfg.rand)
		if err != nil {
			return slot{}, err
		}
		return slot{scalar: e}, nil
	case GET:
		parent := memo[node.incoming[0]]
		idx := node.params.Int
		if parent.multi == nil || idx < 0 || idx >= len(parent.multi) {
			return slot{}, fmt.Errorf("%w: GET index %d", ErrIndex, idx)
		}
		return slot{scalar: parent.multi[idx]}, nil
	default:
		args := make([]ring.Element, len(node.incoming))
		for i, id := range node.incoming {
			args[i] = memo[id].scalar
		}
		e, err := evalOp(c.Flavor, node.kind, node.params, args)
		if err != nil {
			return slot{}, err
		}
		return slot{scalar: e}, nil
	}
}

// ToMatrix extracts the affine map (rows, shift) such that, for every
// input vector x, Evaluate(x)[j] == shift[j] + sum_i rows[i][j]*x[i]. It
// does NOT verify that the circuit is actually affine in its inputs: it
// simply samples at the zero vector and each unit vector and reports
// whatever comes out, exactly as the source's to_matrix. The n+1 samples
// are independent evaluations of an already-built circuit, so they run
// concurrently via EvaluateBatch.
func (c *Circuit) ToMatrix() (rows [][]any, shift []any, err error) {
	if c.Ring == nil {
		return nil, nil, fmt.Errorf("circuit: ToMatrix requires a base ring")
	}
	n := len(c.inputOrder)
	zero := c.Ring.Create(0)
	one := c.Ring.Create(1)

	samples := make([][]any, n+1)
	samples[0] = make([]any, n)
	for i := range samples[0] {
		samples[0][i] = zero
	}
	for row := 0; row < n; row++ {
		vec := make([]any, n)
		for i := range vec {
			vec[i] = zero
		}
		vec[row] = one
		samples[row+1] = vec
	}

	results, err := c.EvaluateBatch(samples)
	if err != nil {
		return nil, nil, err
	}

	rawShift := results[0]
	shift = make([]any, len(rawShift))
	for j, v := range rawShift {
		shift[j] = toBigInt(v)
	}

	rows = make([][]any, n)
	for row := 0; row < n; row++ {
		vec := results[row+1]
		diff := make([]any, len(vec))
		for j := range vec {
			a := toBigInt(vec[j])
			b := shift[j].(*big.Int)
			elem := c.Ring.FromBigInt(new(big.Int).Sub(a, b))
			diff[j] = elem.(ring.IntegerRepresentable).IntegerRepresentation()
		}
		rows[row] = diff
	}
	return rows, shift, nil
}

// toBigInt normalizes one of ConstManager.Output's possible return shapes
// (*big.Int for arithmetic rings, uint64 for bitwise words) into a
// *big.Int for the row/shift subtraction above.
func toBigInt(v any) *big.Int {
	switch x := v.(type) {
	case *big.Int:
		return x
	case uint64:
		return new(big.Int).SetUint64(x)
	default:
		panic(fmt.Sprintf("circuit: ToMatrix: unsupported output type %T", v))
	}
}
