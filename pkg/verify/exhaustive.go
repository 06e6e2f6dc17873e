package verify

import (
	"fmt"

	"github.com/circkit/circkit/pkg/circuit"
)

// MaxExhaustiveInputs bounds ExhaustiveCheck's 2^n enumeration; the
// teacher's exhaustiveAll sweeps at most a handful of 8-bit registers for
// the same reason (full enumeration of the input space is only tractable up
// to a point).
const MaxExhaustiveInputs = 20

// ExhaustiveCheck verifies a and b produce identical outputs for every one
// of the 2^n possible boolean input vectors, the Go port of the teacher's
// ExhaustiveCheck generalized from register-sweep enumeration to full
// bit-vector enumeration. Returns an error if n exceeds MaxExhaustiveInputs.
func ExhaustiveCheck(a, b *circuit.Circuit) (bool, error) {
	if err := sameShape(a, b); err != nil {
		return false, err
	}
	n := len(a.Inputs())
	if n > MaxExhaustiveInputs {
		return false, fmt.Errorf("verify: %d inputs exceeds ExhaustiveCheck's limit of %d, use QuickCheck", n, MaxExhaustiveInputs)
	}
	vec := make([]bool, n)
	total := uint64(1) << uint(n)
	for mask := uint64(0); mask < total; mask++ {
		for i := 0; i < n; i++ {
			vec[i] = mask&(1<<uint(i)) != 0
		}
		equal, err := compareOnce(a, b, vec)
		if err != nil {
			return false, err
		}
		if !equal {
			return false, nil
		}
	}
	return true, nil
}
