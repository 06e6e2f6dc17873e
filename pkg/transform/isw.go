package transform

import (
	"fmt"

	"github.com/circkit/circkit/pkg/circuit"
)

// ISW applies the Ishai-Sahai-Wagner masking gadget at the given order:
// every wire carries n = order+1 shares that sum (XOR, for boolean/bitwise;
// ring subtraction, for arithmetic) to the original unmasked value. This is
// a direct Go port of transformers/isw.py's visit_INPUT/ADD/MUL/CONST.
//
// dst must already be configured with the same Flavor as src (and, for
// Arithmetic, the same Ring); dst is otherwise built fresh by this call.
func ISW(src *circuit.Circuit, dst *circuit.Circuit, order int) (*CircuitTransformer, error) {
	if order < 0 {
		return nil, fmt.Errorf("transform: ISW order must be >= 0, got %d", order)
	}
	n := order + 1

	t := New(src, dst, nil)

	t.Register(circuit.INPUT, func(t *CircuitTransformer, node *circuit.Node) ([]*circuit.Node, error) {
		shares := make([]*circuit.Node, n)
		base := node.Params().Str
		for i := 0; i < n; i++ {
			in, err := dst.AddInput(fmt.Sprintf("%s__share%d", base, i))
			if err != nil {
				return nil, err
			}
			shares[i] = in
		}
		return shares, nil
	})

	t.Register(circuit.CONST, func(t *CircuitTransformer, node *circuit.Node) ([]*circuit.Node, error) {
		shares := make([]*circuit.Node, n)
		for i := 0; i < n-1; i++ {
			r, err := dst.Rnd()
			if err != nil {
				return nil, err
			}
			shares[i] = r
		}
		c, err := dst.NewNode(circuit.CONST, node.Params())
		if err != nil {
			return nil, err
		}
		last := c
		var sumErr error
		for i := 0; i < n-1; i++ {
			last, sumErr = addShare(dst, last, shares[i])
			if sumErr != nil {
				return nil, sumErr
			}
		}
		shares[n-1] = last
		return shares, nil
	})

	t.Register(circuit.RND, func(t *CircuitTransformer, node *circuit.Node) ([]*circuit.Node, error) {
		shares := make([]*circuit.Node, n)
		for i := 0; i < n; i++ {
			r, err := dst.Rnd()
			if err != nil {
				return nil, err
			}
			shares[i] = r
		}
		return shares, nil
	})

	addVisitor := func(t *CircuitTransformer, node *circuit.Node) ([]*circuit.Node, error) {
		a := t.Mapped[node.Incoming()[0]]
		b := t.Mapped[node.Incoming()[1]]
		if len(a) != n || len(b) != n {
			return nil, fmt.Errorf("transform: ISW ADD/XOR operand has %d/%d shares, want %d", len(a), len(b), n)
		}
		out := make([]*circuit.Node, n)
		for i := 0; i < n; i++ {
			sum, err := addShare(dst, a[i], b[i])
			if err != nil {
				return nil, err
			}
			out[i] = sum
		}
		return out, nil
	}
	t.Register(circuit.ADD, addVisitor)
	t.Register(circuit.XOR, addVisitor)

	mulVisitor := func(t *CircuitTransformer, node *circuit.Node) ([]*circuit.Node, error) {
		x := t.Mapped[node.Incoming()[0]]
		y := t.Mapped[node.Incoming()[1]]
		if len(x) != n || len(y) != n {
			return nil, fmt.Errorf("transform: ISW MUL/AND operand has %d/%d shares, want %d", len(x), len(y), n)
		}
		return iswMul(dst, x, y, n)
	}
	t.Register(circuit.MUL, mulVisitor)
	t.Register(circuit.AND, mulVisitor)

	if _, err := t.Run(); err != nil {
		return nil, err
	}
	for _, out := range src.Outputs() {
		if err := t.MakeOutput(out); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// iswMul implements the core ISW multiplication gadget: for every pair
// i<j, draw r_ij fresh and set r_ji = r_ij + x_i*y_j + x_j*y_i (XOR for
// boolean/bitwise), then z_i = x_i*y_i - sum_{j != i} r_ij.
func iswMul(dst *circuit.Circuit, x, y []*circuit.Node, n int) ([]*circuit.Node, error) {
	r := make([][]*circuit.Node, n)
	for i := range r {
		r[i] = make([]*circuit.Node, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rij, err := dst.Rnd()
			if err != nil {
				return nil, err
			}
			xiyj, err := mulShare(dst, x[i], y[j])
			if err != nil {
				return nil, err
			}
			xjyi, err := mulShare(dst, x[j], y[i])
			if err != nil {
				return nil, err
			}
			rji, err := addShare(dst, rij, xiyj)
			if err != nil {
				return nil, err
			}
			rji, err = addShare(dst, rji, xjyi)
			if err != nil {
				return nil, err
			}
			r[i][j] = rij
			r[j][i] = rji
		}
	}

	out := make([]*circuit.Node, n)
	for i := 0; i < n; i++ {
		zi, err := mulShare(dst, x[i], y[i])
		if err != nil {
			return nil, err
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			zi, err = subtractShare(dst, zi, r[i][j])
			if err != nil {
				return nil, err
			}
		}
		out[i] = zi
	}
	return out, nil
}

func addShare(dst *circuit.Circuit, a, b *circuit.Node) (*circuit.Node, error) {
	if dst.Flavor == circuit.Arithmetic {
		return a.Add(b)
	}
	return a.Xor(b)
}

// subtractShare is ring subtraction for arithmetic (a-b) and XOR (its own
// inverse) for boolean/bitwise, matching the source's use of "-" in the
// gadget for both flavors (XOR is subtraction in GF(2)).
func subtractShare(dst *circuit.Circuit, a, b *circuit.Node) (*circuit.Node, error) {
	if dst.Flavor == circuit.Arithmetic {
		return a.Sub(b)
	}
	return a.Xor(b)
}

func mulShare(dst *circuit.Circuit, a, b *circuit.Node) (*circuit.Node, error) {
	if dst.Flavor == circuit.Arithmetic {
		return a.Mul(b)
	}
	return a.And(b)
}
