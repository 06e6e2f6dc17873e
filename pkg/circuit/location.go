package circuit

import "strings"

// Location is a hierarchical tag attached to nodes as they are created,
// the Go port of the source's Location tuple (a stack of names joined by
// "/" when printed, e.g. pushed/popped around a sub-circuit builder call).
type Location []string

func (l Location) String() string {
	return strings.Join(l, "/")
}

// Push returns a new Location with name appended; Location values are
// treated as immutable once attached to a node.
func (l Location) Push(name string) Location {
	out := make(Location, len(l)+1)
	copy(out, l)
	out[len(l)] = name
	return out
}
