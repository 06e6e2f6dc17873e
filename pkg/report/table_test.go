package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/circkit/circkit/pkg/circuit"
)

func TestStatOfCountsNodes(t *testing.T) {
	c := circuit.NewBoolean(circuit.Options{})
	a, err := c.AddInput("a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.AddInput("b")
	if err != nil {
		t.Fatal(err)
	}
	x, err := a.Xor(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddOutput(x); err != nil {
		t.Fatal(err)
	}

	s := StatOf("test", c)
	if s.Inputs != 2 || s.Outputs != 1 {
		t.Fatalf("got inputs=%d outputs=%d, want 2/1", s.Inputs, s.Outputs)
	}
	if s.NodeCounts["XOR"] != 1 || s.NodeCounts["INPUT"] != 2 {
		t.Fatalf("unexpected node counts: %+v", s.NodeCounts)
	}
	if s.TotalNodes != 3 {
		t.Fatalf("TotalNodes = %d, want 3", s.TotalNodes)
	}
}

func TestTableStatsSortedByTotalNodesDescending(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Stat{Label: "small", TotalNodes: 2})
	tbl.Add(Stat{Label: "big", TotalNodes: 10})
	tbl.Add(Stat{Label: "medium", TotalNodes: 5})

	stats := tbl.Stats()
	if len(stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(stats))
	}
	if stats[0].Label != "big" || stats[1].Label != "medium" || stats[2].Label != "small" {
		t.Fatalf("unexpected order: %v, %v, %v", stats[0].Label, stats[1].Label, stats[2].Label)
	}
}

func TestTableStatsBreaksTiesByLabel(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Stat{Label: "zebra", TotalNodes: 5})
	tbl.Add(Stat{Label: "apple", TotalNodes: 5})

	stats := tbl.Stats()
	if stats[0].Label != "apple" || stats[1].Label != "zebra" {
		t.Fatalf("expected alphabetical tie-break, got %v, %v", stats[0].Label, stats[1].Label)
	}
}

func TestWriteJSONReadJSONRoundTrip(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Stat{Label: "a", NodeCounts: map[string]int{"XOR": 1}, TotalNodes: 1, Inputs: 2, Outputs: 1})
	tbl.Add(Stat{Label: "b", NodeCounts: map[string]int{"AND": 3}, TotalNodes: 3, Inputs: 2, Outputs: 1})

	var buf bytes.Buffer
	if err := tbl.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d stats, want 2", loaded.Len())
	}
	stats := loaded.Stats()
	if stats[0].Label != "b" || stats[0].NodeCounts["AND"] != 3 {
		t.Fatalf("round trip lost data: %+v", stats[0])
	}
}

func TestSaveLoadSnapshotRoundTrip(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Stat{Label: "snap", TotalNodes: 7, Inputs: 1, Outputs: 1})

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := SaveSnapshot(path, tbl); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 || loaded.Stats()[0].Label != "snap" {
		t.Fatalf("unexpected loaded table: %+v", loaded.Stats())
	}
}
