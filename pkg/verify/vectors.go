// Package verify checks circuit equivalence, the Go port of the teacher's
// pkg/search/verifier.go two-phase design (QuickCheck against a handful of
// fixed vectors, then ExhaustiveCheck over the full input space) adapted
// from CPU register states to boolean circuit input vectors, plus a
// masking-specific check for ISW-transformed circuits.
package verify

import "math/rand"

// fixedSeeds are the deterministic seeds used to fill out the pseudo-random
// half of GenerateVectors, the same "a handful of fixed patterns plus a few
// seeded randoms" shape as the teacher's TestVectors table.
var fixedSeeds = [...]int64{1, 2, 3, 4}

// GenerateVectors returns a small, fixed battery of boolean input vectors of
// width n: all-zero, all-one, two alternating-bit patterns, and four
// deterministically seeded pseudo-random vectors — eight total, mirroring
// the teacher's eight fixed TestVectors entries. Used by QuickCheck to
// reject the overwhelming majority of non-equivalent circuit pairs cheaply
// before anything resorts to ExhaustiveCheck.
func GenerateVectors(n int) [][]bool {
	vectors := make([][]bool, 0, 4+len(fixedSeeds))

	zero := make([]bool, n)
	vectors = append(vectors, zero)

	ones := make([]bool, n)
	for i := range ones {
		ones[i] = true
	}
	vectors = append(vectors, ones)

	alt1 := make([]bool, n)
	alt2 := make([]bool, n)
	for i := range alt1 {
		alt1[i] = i%2 == 0
		alt2[i] = i%2 == 1
	}
	vectors = append(vectors, alt1, alt2)

	for _, seed := range fixedSeeds {
		r := rand.New(rand.NewSource(seed))
		v := make([]bool, n)
		for i := range v {
			v[i] = r.Intn(2) == 1
		}
		vectors = append(vectors, v)
	}
	return vectors
}

func toAny(v []bool) []any {
	out := make([]any, len(v))
	for i, b := range v {
		out[i] = b
	}
	return out
}

func asBool(v any) bool {
	return v.(bool)
}
