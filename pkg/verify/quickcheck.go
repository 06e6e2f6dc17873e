package verify

import (
	"fmt"
	"math/rand"

	"github.com/circkit/circkit/pkg/circuit"
)

// quickCheckSeed seeds the deterministic randomness QuickCheck feeds both
// circuits' RND draws; a shared seed keeps the comparison meaningful for
// circuits containing RND nodes (e.g. output of transform.ISW) instead of
// comparing two independently-masked runs that can never agree.
const quickCheckSeed = 0xC1CC17

// QuickCheck evaluates a and b against GenerateVectors(n) and reports
// whether every vector produces identical outputs, the Go port of the
// teacher's QuickCheck: a cheap test that rejects the overwhelming majority
// of non-equivalent pairs before anything resorts to ExhaustiveCheck. Both
// circuits must be boolean, declare the same input and output counts, and
// draw RND from independent-but-identically-seeded sources so a masked
// circuit's internal randomness doesn't make the comparison meaningless.
func QuickCheck(a, b *circuit.Circuit) (bool, error) {
	if err := sameShape(a, b); err != nil {
		return false, err
	}
	n := len(a.Inputs())
	for _, vec := range GenerateVectors(n) {
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

func sameShape(a, b *circuit.Circuit) error {
	if a.Flavor != circuit.Boolean || b.Flavor != circuit.Boolean {
		return fmt.Errorf("verify: QuickCheck/ExhaustiveCheck only support boolean circuits, got %s/%s", a.Flavor, b.Flavor)
	}
	if len(a.Inputs()) != len(b.Inputs()) {
		return fmt.Errorf("verify: input count mismatch: %d vs %d", len(a.Inputs()), len(b.Inputs()))
	}
	if len(a.Outputs()) != len(b.Outputs()) {
		return fmt.Errorf("verify: output count mismatch: %d vs %d", len(a.Outputs()), len(b.Outputs()))
	}
	return nil
}

func compareOnce(a, b *circuit.Circuit, vec []bool) (bool, error) {
	outA, err := a.Evaluate(toAny(vec), circuit.WithRandSource(rand.New(rand.NewSource(quickCheckSeed))))
	if err != nil {
		return false, fmt.Errorf("verify: evaluating first circuit: %w", err)
	}
	outB, err := b.Evaluate(toAny(vec), circuit.WithRandSource(rand.New(rand.NewSource(quickCheckSeed))))
	if err != nil {
		return false, fmt.Errorf("verify: evaluating second circuit: %w", err)
	}
	for i := range outA {
		if asBool(outA[i]) != asBool(outB[i]) {
			return false, nil
		}
	}
	return true, nil
}
