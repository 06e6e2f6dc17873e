package report

import (
	"encoding/json"
	"io"
	"os"
)

// WriteJSON writes t's recorded stats to w as a JSON array, sorted the same
// way Stats() sorts them.
func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Stats())
}

// ReadJSON reads a Stat array from r into a fresh Table, the JSON-backed
// analogue of the teacher's gob-encoded Checkpoint save/load pair.
func ReadJSON(r io.Reader) (*Table, error) {
	var stats []Stat
	if err := json.NewDecoder(r).Decode(&stats); err != nil {
		return nil, err
	}
	t := NewTable()
	for _, s := range stats {
		t.Add(s)
	}
	return t, nil
}

// SaveSnapshot writes t's recorded stats to path as JSON.
func SaveSnapshot(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteJSON(f)
}

// LoadSnapshot reads a previously saved JSON snapshot from path into a
// fresh Table.
func LoadSnapshot(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
