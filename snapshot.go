// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Unconnected is the source name reported in snapshots for empty gate slots.
//
const Unconnected = "-"

// InputState is the state of an InputSource in a Snapshot.
//
type InputState struct {
	ID    Handle `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value Signal `json:"value" yaml:"value"`
}

// GateState is the state of a Gate in a Snapshot.
//
type GateState struct {
	ID     Handle   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Type   GateKind `json:"type" yaml:"type"`
	Output Signal   `json:"output" yaml:"output"`
	// Inputs lists the names of the gate's sources, slot by slot.
	// Empty slots are reported as Unconnected.
	Inputs []string `json:"inputs" yaml:"inputs"`
}

// OutputState is the state of an OutputSink in a Snapshot.
//
type OutputState struct {
	ID    Handle `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value Signal `json:"value" yaml:"value"`
}

// Edge is a link between two nodes.
//
type Edge struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	FromID Handle `json:"from_id" yaml:"from_id"`
	ToID   Handle `json:"to_id" yaml:"to_id"`
}

// Snapshot is a point in time copy of the state of a circuit. It shares no
// memory with the Registry it was taken from.
//
type Snapshot struct {
	Inputs  []InputState  `json:"inputs" yaml:"inputs"`
	Gates   []GateState   `json:"gates" yaml:"gates"`
	Outputs []OutputState `json:"outputs" yaml:"outputs"`
	Edges   []Edge        `json:"edges" yaml:"edges"`
}

// Snapshot returns the current state of the circuit. Values are the cached
// ones: Snapshot does not propagate.
//
// Edges are listed from the listener sets of inputs then gates, in
// registration and connection order, followed by any OutputSink link not
// already listed. Each link appears once.
//
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Inputs:  make([]InputState, 0, len(r.inputs)),
		Gates:   make([]GateState, 0, len(r.gates)),
		Outputs: make([]OutputState, 0, len(r.outputs)),
	}
	type key struct{ from, to Handle }
	seen := make(map[key]bool)
	edge := func(from, to Node) {
		k := key{from.Handle(), to.Handle()}
		if seen[k] {
			return
		}
		seen[k] = true
		s.Edges = append(s.Edges, Edge{From: from.Name(), To: to.Name(), FromID: k.from, ToID: k.to})
	}

	for _, in := range r.inputs {
		s.Inputs = append(s.Inputs, InputState{ID: in.id, Name: in.name, Value: in.value})
		for _, l := range in.listeners {
			edge(in, l)
		}
	}
	for _, g := range r.gates {
		gs := GateState{ID: g.id, Name: g.name, Type: g.kind, Output: g.out, Inputs: make([]string, len(g.slots))}
		for i, src := range g.slots {
			if src == nil {
				gs.Inputs[i] = Unconnected
			} else {
				gs.Inputs[i] = src.Name()
			}
		}
		s.Gates = append(s.Gates, gs)
		for _, l := range g.listeners {
			edge(g, l)
		}
	}
	for _, o := range r.outputs {
		s.Outputs = append(s.Outputs, OutputState{ID: o.id, Name: o.name, Value: o.value})
		if o.src != nil {
			edge(o.src, o)
		}
	}
	return s
}

// Input returns the state of the first input named name.
//
func (s *Snapshot) Input(name string) (InputState, bool) {
	for _, in := range s.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return InputState{}, false
}

// Gate returns the state of the first gate named name.
//
func (s *Snapshot) Gate(name string) (GateState, bool) {
	for _, g := range s.Gates {
		if g.Name == name {
			return g, true
		}
	}
	return GateState{}, false
}

// Output returns the state of the first output named name.
//
func (s *Snapshot) Output(name string) (OutputState, bool) {
	for _, o := range s.Outputs {
		if o.Name == name {
			return o, true
		}
	}
	return OutputState{}, false
}
