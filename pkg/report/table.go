// Package report collects circuit construction/transform statistics, the
// Go port of the teacher's pkg/result package repurposed from "optimization
// rules discovered during search" to "node-count snapshots recorded across
// a build/transform pipeline".
package report

import (
	"sort"
	"sync"

	"github.com/circkit/circkit/pkg/circuit"
)

// Stat is one recorded circuit snapshot: a label (e.g. "pre-ISW",
// "post-dedupe") plus its shape, the Go port of the teacher's Rule.
type Stat struct {
	Label      string
	NodeCounts map[string]int
	TotalNodes int
	Inputs     int
	Outputs    int
}

// StatOf builds a Stat from c's current shape.
func StatOf(label string, c *circuit.Circuit) Stat {
	counts := c.NodeCounts()
	total := 0
	for _, n := range counts {
		total += n
	}
	return Stat{
		Label:      label,
		NodeCounts: counts,
		TotalNodes: total,
		Inputs:     len(c.Inputs()),
		Outputs:    len(c.Outputs()),
	}
}

// Table stores recorded Stats, the Go port of the teacher's Table.
type Table struct {
	mu    sync.Mutex
	stats []Stat
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a stat into the table.
func (t *Table) Add(s Stat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = append(t.stats, s)
}

// AddCircuit records c's current shape under label.
func (t *Table) AddCircuit(label string, c *circuit.Circuit) {
	t.Add(StatOf(label, c))
}

// Stats returns a copy of all recorded stats, sorted by total node count
// (descending).
func (t *Table) Stats() []Stat {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Stat, len(t.stats))
	copy(out, t.stats)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalNodes != out[j].TotalNodes {
			return out[i].TotalNodes > out[j].TotalNodes
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Len returns the number of recorded stats.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stats)
}
