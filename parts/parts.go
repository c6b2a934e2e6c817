// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package parts builds common combinational circuits out of logicsim gates.
//
// Each function adds the gates of one part to a Registry, connects them to
// the given source nodes and returns the gates producing the part's
// outputs. Gate names are prefixed with the part name: the sum output of a
// half adder named "ha" is the XOR gate "ha.s".
//
// The source nodes must be registered with the Registry and must be
// distinct. When a part cannot be built, the gates already added for it are
// removed and the Registry is left as it was.
//
package parts

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// ErrDuplicateInput is returned when the same node is given twice as a part
// input.
//
var ErrDuplicateInput = errors.New("duplicate part input")

type builder struct {
	r      *logicsim.Registry
	prefix string
	err    error
	added  []*logicsim.Gate
}

func newBuilder(r *logicsim.Registry, name string, ins ...logicsim.Node) *builder {
	b := &builder{r: r, prefix: name + "."}
	for i, in := range ins {
		for _, prev := range ins[:i] {
			if in == prev {
				b.err = errors.Wrapf(ErrDuplicateInput, "%s: %s", name, in.Name())
				return b
			}
		}
	}
	return b
}

// gate adds a gate fed by srcs. Once an error occurs, gate is a no-op
// returning nil.
//
func (b *builder) gate(name string, kind logicsim.GateKind, srcs ...logicsim.Node) *logicsim.Gate {
	if b.err != nil {
		return nil
	}
	n := 0
	if kind == logicsim.AndN {
		n = len(srcs)
	}
	g, err := logicsim.NewGate(b.prefix+name, kind, n)
	if err != nil {
		b.fail(err)
		return nil
	}
	if _, err = b.r.Add(g); err != nil {
		b.fail(err)
		return nil
	}
	b.added = append(b.added, g)
	for _, src := range srcs {
		if err = b.r.Connect(src, g); err != nil {
			b.fail(errors.Wrap(err, b.prefix+name))
			return nil
		}
	}
	return g
}

// fail records err and removes every gate added so far.
//
func (b *builder) fail(err error) {
	b.err = err
	undo(b.r, b.added)
	b.added = nil
}

// undo removes gates from r, last added first.
//
func undo(r *logicsim.Registry, gates []*logicsim.Gate) {
	for i := len(gates) - 1; i >= 0; i-- {
		r.Remove(gates[i])
	}
}

// Mux adds a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(r *logicsim.Registry, name string, a, b, sel logicsim.Node) (out *logicsim.Gate, err error) {
	bd := newBuilder(r, name, a, b, sel)
	nsel := bd.gate("nsel", logicsim.Not, sel)
	ga := bd.gate("a", logicsim.And, a, nsel)
	gb := bd.gate("b", logicsim.And, b, sel)
	out = bd.gate("out", logicsim.Or, ga, gb)
	return out, bd.err
}

// DMux adds a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(r *logicsim.Registry, name string, in, sel logicsim.Node) (a, b *logicsim.Gate, err error) {
	bd := newBuilder(r, name, in, sel)
	nsel := bd.gate("nsel", logicsim.Not, sel)
	a = bd.gate("a", logicsim.And, in, nsel)
	b = bd.gate("b", logicsim.And, in, sel)
	return a, b, bd.err
}

// HalfAdder adds a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(r *logicsim.Registry, name string, a, b logicsim.Node) (s, c *logicsim.Gate, err error) {
	bd := newBuilder(r, name, a, b)
	s = bd.gate("s", logicsim.Xor, a, b)
	c = bd.gate("c", logicsim.And, a, b)
	return s, c, bd.err
}

// FullAdder adds a full adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(r *logicsim.Registry, name string, a, b, cin logicsim.Node) (s, cout *logicsim.Gate, err error) {
	bd := newBuilder(r, name, a, b, cin)
	s0 := bd.gate("s0", logicsim.Xor, a, b)
	c0 := bd.gate("c0", logicsim.And, a, b)
	s = bd.gate("s", logicsim.Xor, s0, cin)
	c1 := bd.gate("c1", logicsim.And, s0, cin)
	cout = bd.gate("cout", logicsim.Or, c0, c1)
	return s, cout, bd.err
}

// AdderN adds a ripple carry adder. a and b must have the same length; a[0]
// is the least significant bit.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//
func AdderN(r *logicsim.Registry, name string, a, b []logicsim.Node) (out []*logicsim.Gate, c *logicsim.Gate, err error) {
	if len(a) != len(b) || len(a) == 0 {
		return nil, nil, errors.Errorf("%s: bus width mismatch: %d, %d", name, len(a), len(b))
	}
	n := len(r.Gates())
	out = make([]*logicsim.Gate, len(a))
	out[0], c, err = HalfAdder(r, name+".0", a[0], b[0])
	for i := 1; i < len(a) && err == nil; i++ {
		out[i], c, err = FullAdder(r, name+"."+strconv.Itoa(i), a[i], b[i], c)
	}
	if err != nil {
		undo(r, r.Gates()[n:])
		return nil, nil, err
	}
	return out, c, nil
}

// MuxN adds a multiplexer over two buses of the same width.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//
func MuxN(r *logicsim.Registry, name string, a, b []logicsim.Node, sel logicsim.Node) ([]*logicsim.Gate, error) {
	if len(a) != len(b) || len(a) == 0 {
		return nil, errors.Errorf("%s: bus width mismatch: %d, %d", name, len(a), len(b))
	}
	n := len(r.Gates())
	out := make([]*logicsim.Gate, len(a))
	for i := range a {
		var err error
		if out[i], err = Mux(r, name+"."+strconv.Itoa(i), a[i], b[i], sel); err != nil {
			undo(r, r.Gates()[n:])
			return nil, err
		}
	}
	return out, nil
}
