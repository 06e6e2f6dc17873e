package verify

import (
	"fmt"
	"math/rand"

	"github.com/circkit/circkit/pkg/circuit"
)

// CheckISW verifies the masking soundness property: unmasking masked's
// outputs (XOR-folding each original output's n = order+1 shares) recovers
// exactly what orig computes on the same inputs, for a battery of input
// vectors and independently random share/gate draws per trial. This is the
// functional-correctness property transform.ISW is built to preserve; it
// has no analogue in the teacher (which verifies CPU instruction
// equivalence, not masking soundness) and is instead grounded directly on
// the ISW construction itself (pkg/transform/isw.go) and on the relation
// transformers/isw.py's own round-trip tests check.
func CheckISW(orig, masked *circuit.Circuit, order int, trials int) (bool, error) {
	n := order + 1
	nIn := len(orig.Inputs())
	nOut := len(orig.Outputs())
	if len(masked.Inputs()) != nIn*n {
		return false, fmt.Errorf("verify: masked circuit has %d inputs, want %d (%d original inputs * %d shares)",
			len(masked.Inputs()), nIn*n, nIn, n)
	}
	if len(masked.Outputs()) != nOut*n {
		return false, fmt.Errorf("verify: masked circuit has %d outputs, want %d (%d original outputs * %d shares)",
			len(masked.Outputs()), nOut*n, nOut, n)
	}

	vectors := GenerateVectors(nIn)
	for t := 0; t < trials; t++ {
		vectors = append(vectors, randomBoolVector(nIn, int64(1000+t)))
	}

	for trial, vec := range vectors {
		r := rand.New(rand.NewSource(int64(trial)*7919 + 17))

		origOut, err := orig.Evaluate(toAny(vec), circuit.WithRandSource(r))
		if err != nil {
			return false, fmt.Errorf("verify: evaluating original circuit: %w", err)
		}

		maskedIn := make([]bool, nIn*n)
		for i, v := range vec {
			shares := splitShares(v, n, r)
			copy(maskedIn[i*n:(i+1)*n], shares)
		}
		maskedOut, err := masked.Evaluate(toAny(maskedIn), circuit.WithRandSource(r))
		if err != nil {
			return false, fmt.Errorf("verify: evaluating masked circuit: %w", err)
		}

		for j := 0; j < nOut; j++ {
			var unmasked bool
			for s := 0; s < n; s++ {
				unmasked = unmasked != asBool(maskedOut[j*n+s])
			}
			if unmasked != asBool(origOut[j]) {
				return false, nil
			}
		}
	}
	return true, nil
}

// splitShares draws n-1 random bits and appends an adjustment share so the
// n shares XOR back to v.
func splitShares(v bool, n int, r *rand.Rand) []bool {
	shares := make([]bool, n)
	acc := v
	for i := 0; i < n-1; i++ {
		b := r.Intn(2) == 1
		shares[i] = b
		acc = acc != b
	}
	shares[n-1] = acc
	return shares
}

func randomBoolVector(n int, seed int64) []bool {
	r := rand.New(rand.NewSource(seed))
	v := make([]bool, n)
	for i := range v {
		v[i] = r.Intn(2) == 1
	}
	return v
}
