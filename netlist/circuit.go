// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"sort"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Errors returned by name lookups.
//
var (
	ErrUnknownNode = errors.New("unknown node")
	ErrNotInput    = errors.New("not an input")
)

// Circuit is a named Registry with name based lookups.
//
type Circuit struct {
	Name string
	*logicsim.Registry
}

// Lookup returns the first node named name, searching inputs, gates then
// outputs.
//
func (c *Circuit) Lookup(name string) (logicsim.Node, error) {
	for _, in := range c.Inputs() {
		if in.Name() == name {
			return in, nil
		}
	}
	for _, g := range c.Gates() {
		if g.Name() == name {
			return g, nil
		}
	}
	for _, o := range c.Outputs() {
		if o.Name() == name {
			return o, nil
		}
	}
	return nil, errors.Wrap(ErrUnknownNode, name)
}

// Input returns the first input source named name.
//
func (c *Circuit) Input(name string) (*logicsim.InputSource, error) {
	n, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	in, ok := n.(*logicsim.InputSource)
	if !ok {
		return nil, errors.Wrapf(ErrNotInput, "%s is a %s", name, n.Kind())
	}
	return in, nil
}

// Apply sets several inputs at once, then propagates. Nothing is changed if
// a name or a level is invalid.
//
func (c *Circuit) Apply(levels map[string]logicsim.Signal) (logicsim.Stats, error) {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)

	ins := make([]*logicsim.InputSource, len(names))
	for i, name := range names {
		in, err := c.Input(name)
		if err != nil {
			return logicsim.Stats{}, err
		}
		if !levels[name].Valid() {
			return logicsim.Stats{}, errors.Wrapf(logicsim.ErrInvalidSignal, "%s = %v", name, levels[name])
		}
		ins[i] = in
	}
	for i, in := range ins {
		if err := in.SetValue(levels[names[i]]); err != nil {
			panic(err)
		}
	}
	return c.Propagate(), nil
}

// Levels returns the current value of every input, by name.
//
func (c *Circuit) Levels() map[string]logicsim.Signal {
	ins := c.Inputs()
	m := make(map[string]logicsim.Signal, len(ins))
	for _, in := range ins {
		m[in.Name()] = in.Value()
	}
	return m
}

// Dump returns a description of the current circuit. Inputs carry their
// current values.
//
func (c *Circuit) Dump() *File {
	s := c.Snapshot()
	f := &File{Name: c.Name}
	for _, in := range s.Inputs {
		f.Inputs = append(f.Inputs, InputSpec{Name: in.Name, Value: in.Value})
	}
	for _, g := range s.Gates {
		gs := GateSpec{Name: g.Name, Type: gateType(g.Type)}
		if g.Type == logicsim.AndN {
			gs.Inputs = len(g.Inputs)
		}
		f.Gates = append(f.Gates, gs)
	}
	for _, o := range s.Outputs {
		f.Outputs = append(f.Outputs, OutputSpec{Name: o.Name})
	}
	for _, e := range s.Edges {
		f.Wires = append(f.Wires, e.From+" -> "+e.To)
	}
	return f
}

func gateType(k logicsim.GateKind) string {
	b, err := k.MarshalText()
	if err != nil {
		panic(err)
	}
	return string(b)
}
