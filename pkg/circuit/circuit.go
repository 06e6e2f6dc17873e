package circuit

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/circkit/circkit/pkg/ring"
)

var log = logrus.WithField("pkg", "circuit")

// Options toggle the optional construction-time behaviors described in
// spec section 4.D: operation/node caching, constant folding and peephole
// simplification. The source models these as Opt{Arithmetic,Boolean}Circuit
// subclasses; Go has no subclassing, so a Circuit built with Optimized()
// simply turns all four on, Simplify routing builder methods through the
// simplifying path.
type Options struct {
	CacheOperations     bool
	CacheNodes          bool
	PrecomputeConstants bool
	Simplify            bool // peephole algebraic identities, e.g. a+0 -> a
}

// Optimized is the option set equivalent to the source's Opt* circuit
// subclasses.
func Optimized() Options {
	return Options{CacheOperations: true, CacheNodes: true, PrecomputeConstants: true, Simplify: true}
}

// Circuit is a DAG of typed operation nodes over an optional base ring.
// Mutation (NewNode, AddOutput, the in-place rewrites) is single-goroutine
// only; see pkg/circuit's EvaluateBatch for the one sanctioned read-only
// concurrent path.
type Circuit struct {
	Flavor   Flavor
	Ring     ring.Ring // nil for a ringless boolean circuit
	ConstMgr ConstManager
	Opts     Options

	nodes       []*Node
	inputNames  map[string]NodeID
	inputOrder  []NodeID
	outputOrder []NodeID

	opCache   map[opCacheKey]Params // (opcode, params key) -> canonical bound params
	nodeCache map[string]NodeID

	locStack Location

	// Info is the circuit's sparse per-node metadata column store (§3/§4.H).
	// Reapply and the transform package's CircuitTransformer both read and
	// write it via CopyNodeInfo to carry provenance across a rebuild.
	Info *NodeInfoStore
}

// opCacheKey identifies an operation instance: an opcode plus its bound
// parameter key. It is the Go analogue of the source's
// (opname, frozen_set(param_name -> descriptor.key(value))) cache_key.
type opCacheKey struct {
	kind OpKind
	key  any
}

// New creates an empty circuit of the given flavor, ring (nil for ringless
// boolean) and constant manager.
func New(flavor Flavor, r ring.Ring, cm ConstManager, opts Options) *Circuit {
	return &Circuit{
		Flavor:     flavor,
		Ring:       r,
		ConstMgr:   cm,
		Opts:       opts,
		inputNames: make(map[string]NodeID),
		opCache:    make(map[opCacheKey]Params),
		nodeCache:  make(map[string]NodeID),
		Info:       NewNodeInfoStore(),
	}
}

// NewArithmetic creates an arithmetic circuit over r.
func NewArithmetic(r ring.Ring, opts Options) *Circuit {
	return New(Arithmetic, r, ArithmeticConstManager{Ring: r}, opts)
}

// NewBoolean creates a ringless boolean circuit.
func NewBoolean(opts Options) *Circuit {
	return New(Boolean, nil, BooleanConstManager{}, opts)
}

// NewBitwise creates a bitwise circuit over fixed-width words.
func NewBitwise(w *ring.Word, opts Options) *Circuit {
	return New(Bitwise, w, BitwiseConstManager{Ring: w}, opts)
}

// Nodes returns the circuit's node list in topological (insertion) order.
// The returned slice must not be mutated.
func (c *Circuit) Nodes() []*Node { return c.nodes }

// Node looks up a node by id.
func (c *Circuit) Node(id NodeID) *Node { return c.nodes[id] }

// Inputs returns the registered input nodes in registration order.
func (c *Circuit) Inputs() []*Node {
	out := make([]*Node, len(c.inputOrder))
	for i, id := range c.inputOrder {
		out[i] = c.nodes[id]
	}
	return out
}

// Outputs returns the registered output nodes in registration order
// (multiplicity preserved: the same node may appear more than once).
func (c *Circuit) Outputs() []*Node {
	out := make([]*Node, len(c.outputOrder))
	for i, id := range c.outputOrder {
		out[i] = c.nodes[id]
	}
	return out
}

// IsOutput reports whether id is registered as one of the circuit's
// outputs (at any position, any multiplicity).
func (c *Circuit) IsOutput(id NodeID) bool {
	for _, o := range c.outputOrder {
		if o == id {
			return true
		}
	}
	return false
}

// PushLocation extends the current location stack for the duration of a
// sub-builder call; pair with PopLocation (or use WithLocation).
func (c *Circuit) PushLocation(name string) { c.locStack = c.locStack.Push(name) }

// PopLocation removes the most recently pushed location component.
func (c *Circuit) PopLocation() {
	if len(c.locStack) > 0 {
		c.locStack = c.locStack[:len(c.locStack)-1]
	}
}

// WithLocation runs f with name pushed onto the location stack.
func (c *Circuit) WithLocation(name string, f func()) {
	c.PushLocation(name)
	defer c.PopLocation()
	f()
}

// AddInput registers a new named input node.
func (c *Circuit) AddInput(name string) (*Node, error) {
	if _, exists := c.inputNames[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateInput, name)
	}
	n, err := c.NewNode(INPUT, Params{Str: name})
	if err != nil {
		return nil, err
	}
	c.inputNames[name] = n.id
	c.inputOrder = append(c.inputOrder, n.id)
	return n, nil
}

// AddInputs registers n unnamed inputs following pattern (default "x%d"),
// skipping any name already registered.
func (c *Circuit) AddInputs(n int, pattern string) ([]*Node, error) {
	if pattern == "" {
		pattern = "x%d"
	}
	out := make([]*Node, 0, n)
	i := 0
	for len(out) < n {
		name := fmt.Sprintf(pattern, i)
		i++
		if _, exists := c.inputNames[name]; exists {
			continue
		}
		node, err := c.AddInput(name)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// AddConst wraps a raw value as a CONST node via the circuit's constant
// manager. If value is already a *Node, it is returned unchanged (the
// recursive canonicalization the source performs for an already-wrapped
// constant).
func (c *Circuit) AddConst(value any) (*Node, error) {
	if n, ok := value.(*Node); ok {
		return n, nil
	}
	elem, err := c.ConstMgr.Create(value)
	if err != nil {
		return nil, err
	}
	return c.NewNode(CONST, Params{Const: elem})
}

// AddOutput registers value as a new circuit output. value may be a *Node,
// a slice of such (including a multi-output node's full result set, which
// is expanded to its GET children), or a bare literal auto-wrapped via
// AddConst.
func (c *Circuit) AddOutput(value any) error {
	switch v := value.(type) {
	case *Node:
		if v.nOutputs > 1 {
			for i := 0; i < v.nOutputs; i++ {
				get, err := c.NewNode(GET, Params{Int: i}, v)
				if err != nil {
					return err
				}
				c.outputOrder = append(c.outputOrder, get.id)
			}
			return nil
		}
		c.outputOrder = append(c.outputOrder, v.id)
		return nil
	case []*Node:
		for _, item := range v {
			if err := c.AddOutput(item); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range v {
			if err := c.AddOutput(item); err != nil {
				return err
			}
		}
		return nil
	default:
		n, err := c.AddConst(value)
		if err != nil {
			return err
		}
		return c.AddOutput(n)
	}
}

// toNode converts a builder-call operand (a *Node or a raw literal) into a
// *Node belonging to this circuit, auto-wrapping literals through
// AddConst, matching the source's implicit CONST promotion.
func (c *Circuit) toNode(v any) (*Node, error) {
	switch x := v.(type) {
	case *Node:
		if x.circuit != c {
			return nil, fmt.Errorf("%w", ErrForeignNode)
		}
		return x, nil
	default:
		return c.AddConst(x)
	}
}

// NewNode runs the full instantiation pipeline described in spec section
// 4.D: flavor legality check, operation-cache probe, operand normalization,
// arity check, constant folding, node-cache probe, opcode-specific
// validation (GET bounds), creation, and cache insertion.
func (c *Circuit) NewNode(kind OpKind, params Params, rawIncoming ...any) (*Node, error) {
	if !c.Flavor.Legal(kind) {
		return nil, fmt.Errorf("%w: opcode %s is not legal on a %s circuit", ErrParameter, kind, c.Flavor)
	}
	schema := SchemaOf(kind)

	// Step 2: operation-cache probe. An earlier call that bound the exact
	// same (opcode, params) pair already canonicalized one Params value;
	// reuse it instead of letting an equivalent-but-distinct copy (e.g. a
	// different backing slice for a LUT table) flow into node creation.
	if c.Opts.CacheOperations {
		opKey := opCacheKey{kind, params.key()}
		if canon, ok := c.opCache[opKey]; ok {
			params = canon
		} else {
			c.opCache[opKey] = params
		}
	}

	incoming := make([]*Node, len(rawIncoming))
	for i, raw := range rawIncoming {
		n, err := c.toNode(raw)
		if err != nil {
			return nil, err
		}
		incoming[i] = n
	}

	if schema.Arity >= 0 && len(incoming) != schema.Arity {
		return nil, fmt.Errorf("%w: %s expects %d operands, got %d", ErrArity, kind, schema.Arity, len(incoming))
	}

	if kind == GET {
		idx := params.Int
		parent := incoming[0]
		if idx < 0 || idx >= parent.nOutputs {
			return nil, fmt.Errorf("%w: GET index %d out of range [0,%d)", ErrIndex, idx, parent.nOutputs)
		}
	}

	incomingIDs := make([]NodeID, len(incoming))
	for i, n := range incoming {
		incomingIDs[i] = n.id
	}

	if c.Opts.PrecomputeConstants && schema.Precomputable && allConst(incoming) {
		args := make([]ring.Element, len(incoming))
		for i, n := range incoming {
			args[i] = n.params.Const.(ring.Element)
		}
		val, err := evalOp(c.Flavor, kind, params, args)
		if err != nil {
			return nil, err
		}
		return c.NewNode(CONST, Params{Const: val})
	}

	var cacheKey string
	if c.Opts.CacheNodes && schema.Cacheable {
		cacheKey = nodeCacheKey(kind, params, incomingIDs, schema.Symmetric)
		if id, ok := c.nodeCache[cacheKey]; ok {
			return c.nodes[id], nil
		}
	}

	nOutputs := 1
	if schema.NOutputs >= 0 {
		nOutputs = schema.NOutputs
	}

	node := &Node{
		id:       NodeID(len(c.nodes)),
		circuit:  c,
		kind:     kind,
		params:   params,
		incoming: incomingIDs,
		nOutputs: nOutputs,
		loc:      c.locStack,
	}
	c.nodes = append(c.nodes, node)
	for _, n := range incoming {
		n.addOutgoing(node.id)
	}

	if cacheKey != "" {
		c.nodeCache[cacheKey] = node.id
	}
	return node, nil
}

func allConst(nodes []*Node) bool {
	for _, n := range nodes {
		if n.kind != CONST {
			return false
		}
	}
	return true
}

// nodeCacheKey builds a cache key from an operation's opcode, parameters,
// and incoming node ids. Symmetric ops sort the incoming ids first so that
// ADD(a,b) and ADD(b,a) share a cache entry, exactly as the source does.
func nodeCacheKey(kind OpKind, params Params, incoming []NodeID, symmetric bool) string {
	ids := make([]NodeID, len(incoming))
	copy(ids, incoming)
	if symmetric {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return fmt.Sprintf("%d|%v|%v", kind, params.key(), ids)
}

// NodeCounts returns the number of nodes per opcode, the Go port of
// circuit.py's node_counts/print_stats helper, consumed by pkg/report.
func (c *Circuit) NodeCounts() map[string]int {
	counts := make(map[string]int)
	for _, n := range c.nodes {
		counts[n.kind.String()]++
	}
	return counts
}
