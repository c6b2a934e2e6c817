// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
package simtest

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// exhaustive enumeration is used up to that many inputs. Above, inputs are
// randomized.
const maxExhaustive = 12

// Harness groups a circuit with the inputs and outputs under test.
//
type Harness struct {
	R       *logicsim.Registry
	Inputs  []*logicsim.InputSource
	Outputs []*logicsim.OutputSink
}

// NewHarness returns a Harness over all the inputs and outputs of r.
//
func NewHarness(r *logicsim.Registry) Harness {
	return Harness{R: r, Inputs: r.Inputs(), Outputs: r.Outputs()}
}

// Exhaust sets the inputs to every possible combination of levels,
// propagates after each one and calls f with the levels that were applied.
// The first input is the most significant: for two inputs, f sees LOW LOW,
// LOW HIGH, HIGH LOW, HIGH HIGH.
//
func Exhaust(r *logicsim.Registry, ins []*logicsim.InputSource, f func(levels []logicsim.Signal)) {
	levels := make([]logicsim.Signal, len(ins))
	tot := 1 << uint(len(ins))
	for i := 0; i < tot; i++ {
		for bit := range ins {
			lv := logicsim.Low
			if i&(1<<uint(bit)) != 0 {
				lv = logicsim.High
			}
			levels[len(ins)-bit-1] = lv
		}
		for n, in := range ins {
			in.SetValue(levels[n])
		}
		r.Propagate()
		f(slices.Clone(levels))
	}
}

// TruthTable checks that node out takes the values in want for every input
// combination, in the order produced by Exhaust.
//
func TruthTable(t testing.TB, r *logicsim.Registry, ins []*logicsim.InputSource, out logicsim.Node, want []logicsim.Signal) {
	t.Helper()
	if len(want) != 1<<uint(len(ins)) {
		t.Fatalf("truth table for %d inputs needs %d rows, got %d", len(ins), 1<<uint(len(ins)), len(want))
	}
	row := 0
	Exhaust(r, ins, func(levels []logicsim.Signal) {
		t.Helper()
		if got := out.Value(); got != want[row] {
			t.Errorf("%s(%s) = %v, expected %v", out.Name(), levelString(ins, levels), got, want[row])
		}
		row++
	})
}

// Compare feeds the same input levels to two circuits and checks that their
// outputs match. Both harnesses must have the same number of inputs and
// outputs. Circuits with up to 12 inputs are tested exhaustively; larger
// ones with all LOW, all HIGH and 4096 random combinations.
//
func Compare(t testing.TB, h1, h2 Harness) {
	t.Helper()
	if len(h1.Inputs) != len(h2.Inputs) {
		t.Fatalf("input count mismatch: %d != %d", len(h1.Inputs), len(h2.Inputs))
	}
	if len(h1.Outputs) != len(h2.Outputs) {
		t.Fatalf("output count mismatch: %d != %d", len(h1.Outputs), len(h2.Outputs))
	}

	check := func(levels []logicsim.Signal) {
		t.Helper()
		for i, lv := range levels {
			h2.Inputs[i].SetValue(lv)
		}
		h2.R.Propagate()
		for o := range h1.Outputs {
			if a, b := h1.Outputs[o].Value(), h2.Outputs[o].Value(); a != b {
				t.Fatalf("\nExpected %s => %s=%v\nGot %v", levelString(h1.Inputs, levels), h1.Outputs[o].Name(), a, b)
			}
		}
	}

	if len(h1.Inputs) <= maxExhaustive {
		Exhaust(h1.R, h1.Inputs, check)
		return
	}

	levels := make([]logicsim.Signal, len(h1.Inputs))
	apply := func() {
		for i, lv := range levels {
			h1.Inputs[i].SetValue(lv)
		}
		h1.R.Propagate()
		check(levels)
	}
	apply()
	for i := range levels {
		levels[i] = logicsim.High
	}
	apply()
	for i := 0; i < 1<<maxExhaustive; i++ {
		for n := range levels {
			levels[n] = logicsim.Signal(rand.Intn(2))
		}
		apply()
	}
}

// CheckLinks reports a test error for every link inconsistency in r.
//
func CheckLinks(t testing.TB, r *logicsim.Registry) {
	t.Helper()
	for _, err := range LinkErrors(r) {
		t.Error(err)
	}
}

// LinkErrors checks that every link in r is recorded on both ends and only
// involves registered nodes.
//
func LinkErrors(r *logicsim.Registry) []error {
	var errs []error
	report := func(format string, args ...interface{}) {
		errs = append(errs, errors.Errorf(format, args...))
	}
	listeners := func(n logicsim.Node) []logicsim.Node {
		switch n := n.(type) {
		case *logicsim.InputSource:
			return n.Listeners()
		case *logicsim.Gate:
			return n.Listeners()
		}
		return nil
	}
	checkListeners := func(src logicsim.Node) {
		for _, l := range listeners(src) {
			if !r.Contains(l) {
				report("%s: listener %s is not registered", src.Name(), l.Name())
			}
			switch l := l.(type) {
			case *logicsim.Gate:
				if !slices.Contains(l.Sources(), src) {
					report("%s: listener %s does not list it as a source", src.Name(), l.Name())
				}
			case *logicsim.OutputSink:
				if l.Source() != src {
					report("%s: listener %s does not list it as its source", src.Name(), l.Name())
				}
			default:
				report("%s: listener %s cannot receive", src.Name(), l.Name())
			}
		}
	}

	for _, in := range r.Inputs() {
		checkListeners(in)
	}
	for _, g := range r.Gates() {
		checkListeners(g)
		if g.Connected() > g.MaxInputs() {
			report("%s: %d sources for %d inputs", g.Name(), g.Connected(), g.MaxInputs())
		}
		for _, src := range g.Sources() {
			if src == nil {
				continue
			}
			if !r.Contains(src) {
				report("%s: source %s is not registered", g.Name(), src.Name())
			}
			if !slices.Contains(listeners(src), logicsim.Node(g)) {
				report("%s: source %s does not list it as a listener", g.Name(), src.Name())
			}
		}
	}
	for _, o := range r.Outputs() {
		src := o.Source()
		if src == nil {
			continue
		}
		if !r.Contains(src) {
			report("%s: source %s is not registered", o.Name(), src.Name())
		}
		if !slices.Contains(listeners(src), logicsim.Node(o)) {
			report("%s: source %s does not list it as a listener", o.Name(), src.Name())
		}
	}
	return errs
}

func levelString(ins []*logicsim.InputSource, levels []logicsim.Signal) string {
	var b strings.Builder
	for i, in := range ins {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", in.Name(), levels[i])
	}
	return b.String()
}
