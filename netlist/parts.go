// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/parts"
	"github.com/pkg/errors"
)

// PartSpec describes a part from package parts. Inputs name the source nodes,
// in the order of the part's inputs. The part's outputs are named
// "<name>.<pin>".
//
//	parts:
//	  - name: ha
//	    type: halfadder
//	    inputs: [a, b]
//	wires:
//	  - ha.s -> sum, ha.c -> carry
//
type PartSpec struct {
	Name   string   `yaml:"name" json:"name"`
	Type   string   `yaml:"type" json:"type"`
	Inputs []string `yaml:"inputs" json:"inputs"`
}

type partFn func(r *logicsim.Registry, name string, in []logicsim.Node) error

var partTypes = map[string]struct {
	inputs int
	build  partFn
}{
	"mux": {3, func(r *logicsim.Registry, name string, in []logicsim.Node) error {
		_, err := parts.Mux(r, name, in[0], in[1], in[2])
		return err
	}},
	"dmux": {2, func(r *logicsim.Registry, name string, in []logicsim.Node) error {
		_, _, err := parts.DMux(r, name, in[0], in[1])
		return err
	}},
	"halfadder": {2, func(r *logicsim.Registry, name string, in []logicsim.Node) error {
		_, _, err := parts.HalfAdder(r, name, in[0], in[1])
		return err
	}},
	"fulladder": {3, func(r *logicsim.Registry, name string, in []logicsim.Node) error {
		_, _, err := parts.FullAdder(r, name, in[0], in[1], in[2])
		return err
	}},
}

// buildPart adds the gates of p to r and records them in nodes.
//
func buildPart(r *logicsim.Registry, p PartSpec, nodes map[string]logicsim.Node) error {
	if p.Name == "" {
		return errors.New("part with no name")
	}
	pt, ok := partTypes[p.Type]
	if !ok {
		return errors.Errorf("part %s: unknown type %q", p.Name, p.Type)
	}
	if len(p.Inputs) != pt.inputs {
		return errors.Errorf("part %s: %s needs %d inputs, got %d", p.Name, p.Type, pt.inputs, len(p.Inputs))
	}
	in := make([]logicsim.Node, len(p.Inputs))
	for i, name := range p.Inputs {
		if in[i] = nodes[name]; in[i] == nil {
			return errors.Wrapf(ErrUnknownNode, "part %s: %s", p.Name, name)
		}
	}

	n := len(r.Gates())
	if err := pt.build(r, p.Name, in); err != nil {
		return err
	}
	for _, g := range r.Gates()[n:] {
		if nodes[g.Name()] != nil {
			return errors.Errorf("part %s: duplicate node name %q", p.Name, g.Name())
		}
		nodes[g.Name()] = g
	}
	return nil
}
