// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A Handle identifies a node within a Registry. It is assigned by
// Registry.Add and is never reused by the same Registry. The zero Handle
// denotes an unregistered node.
//
type Handle uint32

// Kind is the variant of a Node.
//
type Kind uint8

// Node kinds.
//
const (
	KindInput Kind = iota + 1
	KindGate
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindGate:
		return "gate"
	case KindOutput:
		return "output"
	}
	return "unknown"
}

// Node is any participant in a circuit: *InputSource, *Gate or *OutputSink.
// The set of implementations is closed.
//
// Names are for display only. They need not be unique and are never used
// for identity by the Registry.
//
type Node interface {
	// Name returns the node's display name.
	Name() string
	// Value returns the signal currently produced (or, for an OutputSink,
	// mirrored) by the node. It never triggers a re-evaluation.
	Value() Signal
	// Kind returns the node variant.
	Kind() Kind
	// Handle returns the handle assigned at registration, or 0.
	Handle() Handle

	node()
}

type base struct {
	name string
	id   Handle
	reg  *Registry
}

func (b *base) Name() string   { return b.name }
func (b *base) Handle() Handle { return b.id }
func (b *base) node()          {}

// InputSource is a node whose value is set from outside the circuit.
//
//	Inputs: none
//	Outputs: any number of listeners
//	Function: out = value
//
type InputSource struct {
	base
	value     Signal
	listeners []Node
}

// NewInput returns a new input source with the given initial value. An
// invalid initial value is replaced with Low.
//
func NewInput(name string, init Signal) *InputSource {
	if !init.Valid() {
		init = Low
	}
	return &InputSource{base: base{name: name}, value: init}
}

// Kind returns KindInput.
//
func (in *InputSource) Kind() Kind { return KindInput }

// Value returns the current value of the input.
//
func (in *InputSource) Value() Signal { return in.value }

// SetValue sets the value of the input. It does not propagate the change;
// use Registry.Set for that. Invalid signals are rejected and leave the
// current value unchanged.
//
func (in *InputSource) SetValue(s Signal) error {
	if !s.Valid() {
		return ErrInvalidSignal
	}
	in.value = s
	return nil
}

// Toggle inverts the value of the input. It does not propagate the change.
//
func (in *InputSource) Toggle() { in.value = in.value.Not() }

// Listeners returns a copy of the nodes fed by this input, in connection
// order.
//
func (in *InputSource) Listeners() []Node { return copyNodes(in.listeners) }

// OutputSink is a probe mirroring the value of at most one source.
//
//	Inputs: one source
//	Outputs: none
//	Function: value = source
//
type OutputSink struct {
	base
	src   Node
	value Signal
}

// NewOutput returns a new, unconnected output sink.
//
func NewOutput(name string) *OutputSink {
	return &OutputSink{base: base{name: name}}
}

// Kind returns KindOutput.
//
func (o *OutputSink) Kind() Kind { return KindOutput }

// Value returns the value cached during the last propagation.
//
func (o *OutputSink) Value() Signal { return o.value }

// Source returns the node driving o, or nil.
//
func (o *OutputSink) Source() Node { return o.src }

func (o *OutputSink) refresh() { o.value = signalOf(o.src) }

// signalOf returns the signal produced by n. Absent sources read as Low.
//
func signalOf(n Node) Signal {
	switch n := n.(type) {
	case *InputSource:
		if n != nil {
			return n.value
		}
	case *Gate:
		if n != nil {
			return n.out
		}
	}
	return Low
}

func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *InputSource:
		return n == nil
	case *Gate:
		return n == nil
	case *OutputSink:
		return n == nil
	}
	return false
}

func baseOf(n Node) *base {
	switch n := n.(type) {
	case *InputSource:
		return &n.base
	case *Gate:
		return &n.base
	case *OutputSink:
		return &n.base
	}
	return nil
}

func copyNodes(ns []Node) []Node {
	if len(ns) == 0 {
		return nil
	}
	out := make([]Node, len(ns))
	copy(out, ns)
	return out
}
