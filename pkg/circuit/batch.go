package circuit

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// EvaluateBatch runs Evaluate independently for each row of inputs and
// returns the corresponding output rows, fanning the work out across a
// small worker pool. This is the generalization of the teacher's
// search.WorkerPool to "evaluate an already-built, read-only circuit on
// many independent input vectors" instead of "search many independent
// instruction sequences" — construction-time mutation stays
// single-goroutine (see the Circuit type doc), but evaluation of a finished circuit
// has no shared mutable state to race on.
func (c *Circuit) EvaluateBatch(inputs [][]any, opts ...EvalOption) ([][]any, error) {
	n := len(inputs)
	results := make([][]any, n)
	errs := make([]error, n)

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				row, err := c.Evaluate(inputs[i], opts...)
				results[i] = row
				errs[i] = err
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
