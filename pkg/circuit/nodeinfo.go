package circuit

// InheritanceInfo controls how a per-node metadata key propagates across a
// rebuild (Reapply/transforms), the Go port of node_info.py's
// InheritanceInfo: whether the key only propagates from registered circuit
// outputs, and how values from multiple parents merge onto a shared child.
type InheritanceInfo struct {
	OnlyOutput   bool // key propagates only from nodes registered as circuit outputs
	MergeFlatten bool // flatten nested MergeTuple values instead of nesting
	MergeUnique  bool // de-duplicate equal values when merging
}

// MergeTuple is the value type produced when two or more parents both
// contribute a value for the same key on the same child node, mirroring
// node_info.py's MergeTuple.
type MergeTuple []any

func mergeValues(existing, incoming any, info InheritanceInfo) any {
	if existing == nil {
		return incoming
	}
	flat := flattenMerge(existing, info)
	flat = append(flat, flattenMerge(incoming, info)...)
	if info.MergeUnique {
		flat = dedupMerge(flat)
	}
	return MergeTuple(flat)
}

func flattenMerge(v any, info InheritanceInfo) []any {
	if mt, ok := v.(MergeTuple); ok && info.MergeFlatten {
		return []any(mt)
	}
	return []any{v}
}

func dedupMerge(vs []any) []any {
	out := make([]any, 0, len(vs))
	for _, v := range vs {
		dup := false
		for _, seen := range out {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// NodeInfoStore is a sparse key -> {node -> value} column store, the Go
// port of node_info.py's NodeInfoStorage. Keys are declared with an
// InheritanceInfo up front (or default to the zero value on first use).
type NodeInfoStore struct {
	columns map[string]map[NodeID]any
	policy  map[string]InheritanceInfo
}

// NewNodeInfoStore creates an empty store.
func NewNodeInfoStore() *NodeInfoStore {
	return &NodeInfoStore{
		columns: make(map[string]map[NodeID]any),
		policy:  make(map[string]InheritanceInfo),
	}
}

// Declare registers (or overwrites) the inheritance policy for key.
func (s *NodeInfoStore) Declare(key string, info InheritanceInfo) {
	s.policy[key] = info
}

// Set assigns value for key on node, unconditionally overwriting any
// previous value.
func (s *NodeInfoStore) Set(key string, node NodeID, value any) {
	col, ok := s.columns[key]
	if !ok {
		col = make(map[NodeID]any)
		s.columns[key] = col
	}
	col[node] = value
}

// Get returns the value for key on node, if any.
func (s *NodeInfoStore) Get(key string, node NodeID) (any, bool) {
	col, ok := s.columns[key]
	if !ok {
		return nil, false
	}
	v, ok := col[node]
	return v, ok
}

// Inherit propagates key's value from each of parents onto child according
// to key's declared InheritanceInfo, merging when more than one parent
// contributes a value. Reapply and CircuitTransformer do not call it; they
// carry metadata across a rebuild with CopyNodeInfo.
func (s *NodeInfoStore) Inherit(key string, child NodeID, parents ...NodeID) {
	info := s.policy[key]
	var acc any
	for _, p := range parents {
		v, ok := s.Get(key, p)
		if !ok {
			continue
		}
		acc = mergeValues(acc, v, info)
	}
	if acc != nil {
		s.Set(key, child, acc)
	}
}

// Delete removes node's value for key, if any. RemoveUnusedNodes does not
// call it.
func (s *NodeInfoStore) Delete(key string, node NodeID) {
	if col, ok := s.columns[key]; ok {
		delete(col, node)
	}
}

// CopyNodeInfo carries src's per-node metadata across a rebuild into dst,
// the Go port of node_info.py's storage-copying half of reapply/compose.
// mapping is the same src-NodeID -> dst-Node(s) table Reapply and
// CircuitTransformer.Run build: a GET-expanding visitor or a fan-out
// transform can map one source node onto several destination nodes, each
// of which inherits the value independently.
//
// A key declared OnlyOutput only propagates from a src node that was
// itself a registered circuit output at copy time (src.IsOutput), mirroring
// the source's "this metadata only makes sense on a circuit's own outputs,
// not on a GET child or an intermediate wire" rule. Ungated keys propagate
// from every src node present in mapping.
func CopyNodeInfo(src, dst *Circuit, mapping map[NodeID][]*Node) {
	for key, col := range src.Info.columns {
		info := src.Info.policy[key]
		dst.Info.Declare(key, info)
		for srcID, value := range col {
			if info.OnlyOutput && !src.IsOutput(srcID) {
				continue
			}
			for _, dn := range mapping[srcID] {
				existing, _ := dst.Info.Get(key, dn.id)
				dst.Info.Set(key, dn.id, mergeValues(existing, value, info))
			}
		}
	}
}
