// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GateKind selects the logic function of a Gate.
//
type GateKind uint8

// Gate kinds.
//
const (
	And GateKind = iota
	Not
	AndN
	Or
	Nand
	Nor
	Xor
)

type gateFn func(in []Signal) Signal

// arity is the number of inputs of fixed-width gates. A zero arity means the
// input count is chosen at construction.
var gateKinds = [...]struct {
	name  string
	arity int
	fn    gateFn
}{
	And:  {"AND", 2, allHigh},
	Not:  {"NOT", 1, func(in []Signal) Signal { return in[0].Not() }},
	AndN: {"ANDN", 0, allHigh},
	Or:   {"OR", 2, anyHigh},
	Nand: {"NAND", 2, func(in []Signal) Signal { return allHigh(in).Not() }},
	Nor:  {"NOR", 2, func(in []Signal) Signal { return anyHigh(in).Not() }},
	Xor: {"XOR", 2, func(in []Signal) Signal {
		if in[0] != in[1] {
			return High
		}
		return Low
	}},
}

func allHigh(in []Signal) Signal {
	for _, s := range in {
		if s != High {
			return Low
		}
	}
	return High
}

func anyHigh(in []Signal) Signal {
	for _, s := range in {
		if s == High {
			return High
		}
	}
	return Low
}

// Valid returns true if k is a known gate kind.
//
func (k GateKind) Valid() bool { return int(k) < len(gateKinds) }

func (k GateKind) String() string {
	if !k.Valid() {
		return "GateKind(" + strconv.Itoa(int(k)) + ")"
	}
	return gateKinds[k].name
}

// ParseGateKind returns the gate kind named s (case insensitive).
//
func ParseGateKind(s string) (GateKind, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for k := range gateKinds {
		if gateKinds[k].name == u {
			return GateKind(k), nil
		}
	}
	return 0, errors.Errorf("unknown gate type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
//
func (k GateKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Errorf("invalid gate kind %d", k)
	}
	return []byte(strings.ToLower(gateKinds[k].name)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (k *GateKind) UnmarshalText(text []byte) error {
	v, err := ParseGateKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Gate is a combinational logic gate.
//
// A gate has a fixed number of source slots. Its output is cached: it only
// changes when Evaluate is called, either directly or by Registry.Propagate.
// A gate with fewer connected sources than it needs outputs Low.
//
type Gate struct {
	base
	kind      GateKind
	slots     []Node
	out       Signal
	listeners []Node
	buf       []Signal
}

// NewGate returns a new gate of the given kind.
//
// n is the input count for AndN gates. For the other kinds it must be 0 or
// the gate's natural input count.
//
func NewGate(name string, kind GateKind, n int) (*Gate, error) {
	if !kind.Valid() {
		return nil, errors.Errorf("gate %s: invalid gate kind %d", name, kind)
	}
	arity := gateKinds[kind].arity
	switch {
	case n < 0:
		return nil, errors.Errorf("gate %s: negative input count %d", name, n)
	case arity == 0:
		arity = n
	case n != 0 && n != arity:
		return nil, errors.Errorf("gate %s: %s takes %d inputs, not %d", name, kind, arity, n)
	}
	return &Gate{
		base:  base{name: name},
		kind:  kind,
		slots: make([]Node, arity),
		buf:   make([]Signal, 0, arity),
	}, nil
}

func mustGate(name string, kind GateKind, n int) *Gate {
	g, err := NewGate(name, kind, n)
	if err != nil {
		panic(err)
	}
	return g
}

// NewAnd returns a AND gate.
//
//	Inputs: a, b
//	Function: out = a && b
//
func NewAnd(name string) *Gate { return mustGate(name, And, 0) }

// NewNot returns a NOT gate. An unconnected NOT gate outputs Low.
//
//	Inputs: in
//	Function: out = !in
//
func NewNot(name string) *Gate { return mustGate(name, Not, 0) }

// NewAndN returns a N-input AND gate. It panics if n is negative.
//
//	Inputs: in[n]
//	Function: out = in[0] && in[1] && ... && in[k] for every connected input
//
// An AndN gate with no connected input outputs Low.
//
func NewAndN(name string, n int) *Gate { return mustGate(name, AndN, n) }

// NewOr returns a OR gate.
//
//	Inputs: a, b
//	Function: out = a || b
//
func NewOr(name string) *Gate { return mustGate(name, Or, 0) }

// NewNand returns a NAND gate.
//
//	Inputs: a, b
//	Function: out = !(a && b)
//
func NewNand(name string) *Gate { return mustGate(name, Nand, 0) }

// NewNor returns a NOR gate.
//
//	Inputs: a, b
//	Function: out = !(a || b)
//
func NewNor(name string) *Gate { return mustGate(name, Nor, 0) }

// NewXor returns a XOR gate.
//
//	Inputs: a, b
//	Function: out = a && !b || !a && b
//
func NewXor(name string) *Gate { return mustGate(name, Xor, 0) }

// Kind returns KindGate.
//
func (g *Gate) Kind() Kind { return KindGate }

// GateKind returns the logic function of g.
//
func (g *Gate) GateKind() GateKind { return g.kind }

// Value returns the cached output of g.
//
func (g *Gate) Value() Signal { return g.out }

// MaxInputs returns the number of source slots of g.
//
func (g *Gate) MaxInputs() int { return len(g.slots) }

// Connected returns the number of occupied source slots.
//
func (g *Gate) Connected() int {
	n := 0
	for _, s := range g.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Sources returns a copy of the source slots of g. Empty slots are nil.
//
func (g *Gate) Sources() []Node {
	out := make([]Node, len(g.slots))
	copy(out, g.slots)
	return out
}

// Listeners returns a copy of the nodes fed by g, in connection order.
//
func (g *Gate) Listeners() []Node { return copyNodes(g.listeners) }

// Evaluate recomputes the cached output of g from the current values of its
// sources and returns true if it changed.
//
func (g *Gate) Evaluate() bool {
	in := g.buf[:0]
	for _, s := range g.slots {
		if s != nil {
			in = append(in, signalOf(s))
		}
	}
	g.buf = in

	need := gateKinds[g.kind].arity
	if need == 0 {
		need = 1
	}
	out := Low
	if len(in) >= need {
		out = gateKinds[g.kind].fn(in)
	}
	if out == g.out {
		return false
	}
	g.out = out
	return true
}
