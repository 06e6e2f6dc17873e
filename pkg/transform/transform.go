// Package transform implements the visitor-pattern rewrite framework
// circuit passes (ISW masking and friends) are built on, the Go port of
// the source's transformers/core.py.
package transform

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/circkit/circkit/pkg/circuit"
)

var log = logrus.WithField("pkg", "transform")

// VisitFunc rewrites one source node against t's destination circuit,
// returning the node(s) it maps to (more than one for fan-out transforms
// like ISW masking, where a single source node becomes one node per
// share). Operands are already available via t.Mapped.
type VisitFunc func(t *CircuitTransformer, n *circuit.Node) ([]*circuit.Node, error)

// CircuitTransformer walks Src in topological order, dispatching each node
// to a registered VisitFunc by opcode (falling back to VisitGeneric, a
// Reapply-based passthrough, when none is registered) and accumulating the
// result in Dst. GET is special-cased exactly like the source: it indexes
// directly into its parent's already-computed share list instead of being
// dispatchable.
type CircuitTransformer struct {
	Src *circuit.Circuit
	Dst *circuit.Circuit

	Mapped map[circuit.NodeID][]*circuit.Node

	visitors map[circuit.OpKind]VisitFunc
	generic  VisitFunc
}

// New builds a transformer from src into dst. generic is used for any
// opcode without a registered visitor; pass nil to use VisitGeneric
// (rebuild the node unchanged via Reapply semantics, fanned out 1:1).
func New(src, dst *circuit.Circuit, generic VisitFunc) *CircuitTransformer {
	t := &CircuitTransformer{
		Src:      src,
		Dst:      dst,
		Mapped:   make(map[circuit.NodeID][]*circuit.Node),
		visitors: make(map[circuit.OpKind]VisitFunc),
	}
	if generic == nil {
		generic = VisitGeneric
	}
	t.generic = generic
	return t
}

// Register installs fn as the visitor for kind, overriding the generic
// fallback.
func (t *CircuitTransformer) Register(kind circuit.OpKind, fn VisitFunc) {
	t.visitors[kind] = fn
}

// VisitGeneric rebuilds n unchanged in Dst by reapplying its operation
// against already-mapped single-share operands; it is an error to reach
// this for a node whose operands were mapped to more than one share.
func VisitGeneric(t *CircuitTransformer, n *circuit.Node) ([]*circuit.Node, error) {
	switch n.Kind() {
	case circuit.INPUT:
		node, err := t.Dst.AddInput(n.Params().Str)
		return []*circuit.Node{node}, err
	case circuit.CONST:
		node, err := t.Dst.NewNode(circuit.CONST, n.Params())
		return []*circuit.Node{node}, err
	case circuit.RND:
		node, err := t.Dst.NewNode(circuit.RND, circuit.Params{})
		return []*circuit.Node{node}, err
	default:
		incoming := make([]any, len(n.Incoming()))
		for i, id := range n.Incoming() {
			shares := t.Mapped[id]
			if len(shares) != 1 {
				return nil, fmt.Errorf("transform: %s has %d shares, VisitGeneric only handles single-share operands", n.Kind(), len(shares))
			}
			incoming[i] = shares[0]
		}
		node, err := t.Dst.NewNode(n.Kind(), n.Params(), incoming...)
		return []*circuit.Node{node}, err
	}
}

// Run walks Src's nodes in topological order, populating Mapped, and
// returns it.
func (t *CircuitTransformer) Run() (map[circuit.NodeID][]*circuit.Node, error) {
	for _, n := range t.Src.Nodes() {
		if n.Kind() == circuit.GET {
			parentShares := t.Mapped[n.Incoming()[0]]
			idx := n.Params().Int
			if idx < 0 || idx >= len(parentShares) {
				return nil, fmt.Errorf("transform: GET index %d out of range for %d mapped shares", idx, len(parentShares))
			}
			t.Mapped[n.ID()] = []*circuit.Node{parentShares[idx]}
			continue
		}
		fn, ok := t.visitors[n.Kind()]
		if !ok {
			fn = t.generic
		}
		out, err := fn(t, n)
		if err != nil {
			log.WithError(err).WithField("opcode", n.Kind().String()).Error("visit failed")
			return nil, fmt.Errorf("transform: visiting node %d (%s): %w", n.ID(), n.Kind(), err)
		}
		t.Mapped[n.ID()] = out
	}
	circuit.CopyNodeInfo(t.Src, t.Dst, t.Mapped)
	return t.Mapped, nil
}

// MakeOutput registers src's mapped share(s) as new outputs on Dst, in
// share order. Used once Run has completed.
func (t *CircuitTransformer) MakeOutput(src *circuit.Node) error {
	shares, ok := t.Mapped[src.ID()]
	if !ok {
		return fmt.Errorf("transform: node %d was never visited", src.ID())
	}
	for _, s := range shares {
		if err := t.Dst.AddOutput(s); err != nil {
			return err
		}
	}
	return nil
}
