// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"log/slog"
	"slices"

	"github.com/pkg/errors"
)

// Registry owns the nodes of a circuit and every link between them.
//
// Nodes are tracked in three ordered subsets (inputs, gates and outputs) in
// registration order. Gates are evaluated in that order during propagation.
//
// A Registry is not safe for concurrent use.
//
type Registry struct {
	nodes   map[Handle]Node
	next    Handle
	inputs  []*InputSource
	gates   []*Gate
	outputs []*OutputSink

	log   *slog.Logger
	hooks Hooks
}

// New returns a new, empty Registry.
//
func New(opts ...Option) *Registry {
	r := &Registry{
		nodes: make(map[Handle]Node),
		log:   nopLogger(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Add registers n and returns its handle. Adding a node that is already
// registered with r is a no-op that returns the existing handle.
//
// Add fails if n is nil or registered with a different Registry.
//
func (r *Registry) Add(n Node) (Handle, error) {
	if isNil(n) {
		return 0, ErrNilNode
	}
	b := baseOf(n)
	switch b.reg {
	case r:
		return b.id, nil
	case nil:
	default:
		return 0, errors.Wrap(ErrForeignNode, n.Name())
	}

	r.next++
	b.id, b.reg = r.next, r
	r.nodes[b.id] = n
	switch n := n.(type) {
	case *InputSource:
		r.inputs = append(r.inputs, n)
	case *Gate:
		r.gates = append(r.gates, n)
	case *OutputSink:
		r.outputs = append(r.outputs, n)
	}
	r.log.Debug("node added", "node", n.Name(), "kind", n.Kind(), "id", b.id)
	return b.id, nil
}

// Remove unregisters n and tears down all its links, on both ends. Removing
// a node that is not registered with r is a no-op. Remove does not
// propagate: the former listeners of n keep their cached values until the
// next propagation.
//
// Once removed, n can be added again, to r or to another Registry. It gets
// a new handle and no links.
//
func (r *Registry) Remove(n Node) {
	if !r.Contains(n) {
		return
	}
	switch n := n.(type) {
	case *InputSource:
		for _, l := range n.listeners {
			detachSource(l, n)
		}
		n.listeners = nil
		r.inputs = remove(r.inputs, n)
	case *Gate:
		for i, s := range n.slots {
			if s != nil {
				removeListener(s, n)
				n.slots[i] = nil
			}
		}
		for _, l := range n.listeners {
			detachSource(l, n)
		}
		n.listeners = nil
		r.gates = remove(r.gates, n)
	case *OutputSink:
		if n.src != nil {
			removeListener(n.src, n)
			n.src = nil
		}
		r.outputs = remove(r.outputs, n)
	}

	b := baseOf(n)
	delete(r.nodes, b.id)
	r.log.Debug("node removed", "node", n.Name(), "kind", n.Kind(), "id", b.id)
	b.id, b.reg = 0, nil
}

// Contains returns true if n is registered with r.
//
func (r *Registry) Contains(n Node) bool {
	if isNil(n) {
		return false
	}
	b := baseOf(n)
	return b.reg == r && r.nodes[b.id] == n
}

// Node returns the node with handle h, or nil.
//
func (r *Registry) Node(h Handle) Node { return r.nodes[h] }

// Len returns the number of registered nodes.
//
func (r *Registry) Len() int { return len(r.nodes) }

// Inputs returns the registered input sources in registration order.
//
func (r *Registry) Inputs() []*InputSource { return slices.Clone(r.inputs) }

// Gates returns the registered gates in registration order.
//
func (r *Registry) Gates() []*Gate { return slices.Clone(r.gates) }

// Outputs returns the registered output sinks in registration order.
//
func (r *Registry) Outputs() []*OutputSink { return slices.Clone(r.outputs) }

// Set sets the value of a registered input and propagates the change.
//
func (r *Registry) Set(in *InputSource, s Signal) error {
	if !r.Contains(in) {
		return r.reject("set", errors.Wrap(ErrNotRegistered, nameOf(in)))
	}
	if err := in.SetValue(s); err != nil {
		return r.reject("set", errors.Wrapf(err, "%s = %s", in.name, s))
	}
	r.Propagate()
	return nil
}

// Toggle inverts the value of a registered input and propagates the change.
//
func (r *Registry) Toggle(in *InputSource) error {
	if !r.Contains(in) {
		return r.reject("toggle", errors.Wrap(ErrNotRegistered, nameOf(in)))
	}
	in.Toggle()
	r.Propagate()
	return nil
}

func (r *Registry) reject(op string, err error) error {
	r.log.Debug(op+" rejected", "error", err)
	if r.hooks.OnReject != nil {
		r.hooks.OnReject(op, err)
	}
	return err
}

func nameOf(n Node) string {
	if isNil(n) {
		return "<nil>"
	}
	return n.Name()
}

func remove[T comparable](s []T, v T) []T {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}
