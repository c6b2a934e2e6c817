// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist loads circuit descriptions and builds them into a
// logicsim.Registry.
//
// A circuit description lists inputs, gates and outputs by name, and the
// wires connecting them:
//
//	name: not-and
//	inputs:
//	  - name: a
//	    value: low
//	  - name: b
//	gates:
//	  - name: n
//	    type: not
//	  - name: g
//	    type: and
//	outputs:
//	  - name: x
//	wires:
//	  - a -> n, n -> g
//	  - b -> g
//	  - g -> x
//
// Gate types are and, not, andn, or, nand, nor and xor. An andn gate takes
// its input count from the inputs field. Parts (mux, dmux, halfadder and
// fulladder) expand to several gates, see PartSpec. Descriptions are YAML,
// or JSON when the file name ends in .json.
//
// Unlike logicsim.Registry, which treats names as labels, a description
// requires node names to be unique.
//
package netlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/hdl"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a circuit description.
//
type Format string

// Supported formats.
//
const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatOf returns the format matching the extension of path.
//
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// File is a circuit description.
//
type File struct {
	Name    string       `yaml:"name" json:"name"`
	Inputs  []InputSpec  `yaml:"inputs" json:"inputs"`
	Gates   []GateSpec   `yaml:"gates" json:"gates"`
	Outputs []OutputSpec `yaml:"outputs" json:"outputs"`
	Parts   []PartSpec   `yaml:"parts,omitempty" json:"parts,omitempty"`
	// Wires are wire expressions: "a -> b, c -> d".
	Wires []string `yaml:"wires" json:"wires"`
}

// InputSpec describes an input source and its initial value.
//
type InputSpec struct {
	Name  string          `yaml:"name" json:"name"`
	Value logicsim.Signal `yaml:"value" json:"value"`
}

// GateSpec describes a gate. Inputs is only used by andn gates.
//
type GateSpec struct {
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	Inputs int    `yaml:"inputs,omitempty" json:"inputs,omitempty"`
}

// OutputSpec describes an output sink.
//
type OutputSpec struct {
	Name string `yaml:"name" json:"name"`
}

// Load reads a circuit description from a file.
//
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read circuit")
	}
	f, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse decodes a circuit description.
//
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse circuit")
		}
	case YAML, "":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse circuit")
		}
	default:
		return nil, errors.Errorf("unsupported format %q", format)
	}
	return &f, nil
}

// Marshal encodes f.
//
func (f *File) Marshal(format Format) ([]byte, error) {
	switch format {
	case JSON:
		return json.MarshalIndent(f, "", "  ")
	case YAML, "":
		return yaml.Marshal(f)
	}
	return nil, errors.Errorf("unsupported format %q", format)
}

// Save writes f to path, in the format matching its extension.
//
func (f *File) Save(path string) error {
	data, err := f.Marshal(FormatOf(path))
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "failed to write circuit")
}

// Build creates the nodes of f in a new Registry, in file order, then the
// parts, and connects the wires. The options are passed to logicsim.New.
//
func (f *File) Build(opts ...logicsim.Option) (*Circuit, error) {
	r := logicsim.New(opts...)
	nodes := make(map[string]logicsim.Node)
	add := func(n logicsim.Node) error {
		switch name := n.Name(); {
		case name == "":
			return errors.Errorf("%s with no name", n.Kind())
		case nodes[name] != nil:
			return errors.Errorf("duplicate node name %q", name)
		}
		nodes[n.Name()] = n
		_, err := r.Add(n)
		return err
	}

	for _, in := range f.Inputs {
		if !in.Value.Valid() {
			return nil, errors.Wrapf(logicsim.ErrInvalidSignal, "input %s", in.Name)
		}
		if err := add(logicsim.NewInput(in.Name, in.Value)); err != nil {
			return nil, err
		}
	}
	for _, gs := range f.Gates {
		if gs.Type == "" {
			return nil, errors.Errorf("gate %s: missing type", gs.Name)
		}
		kind, err := logicsim.ParseGateKind(gs.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %s", gs.Name)
		}
		g, err := logicsim.NewGate(gs.Name, kind, gs.Inputs)
		if err != nil {
			return nil, err
		}
		if err = add(g); err != nil {
			return nil, err
		}
	}
	for _, o := range f.Outputs {
		if err := add(logicsim.NewOutput(o.Name)); err != nil {
			return nil, err
		}
	}

	for _, p := range f.Parts {
		if err := buildPart(r, p, nodes); err != nil {
			return nil, err
		}
	}

	for _, expr := range f.Wires {
		ws, err := hdl.Parse(expr)
		if err != nil {
			return nil, err
		}
		for _, w := range ws {
			from, to := nodes[w.From], nodes[w.To]
			switch {
			case from == nil:
				return nil, errors.Wrapf(ErrUnknownNode, "wire %s -> %s: %s", w.From, w.To, w.From)
			case to == nil:
				return nil, errors.Wrapf(ErrUnknownNode, "wire %s -> %s: %s", w.From, w.To, w.To)
			}
			if err = r.Connect(from, to); err != nil {
				return nil, errors.Wrap(err, "wire")
			}
		}
	}

	name := f.Name
	if name == "" {
		name = "circuit"
	}
	return &Circuit{Name: name, Registry: r}, nil
}
