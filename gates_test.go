package logicsim_test

import (
	"testing"
	"testing/quick"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simtest"
)

func testGate(t *testing.T, g *sim.Gate, result []sim.Signal) {
	t.Helper()
	r := sim.New()
	ins := make([]*sim.InputSource, g.MaxInputs())
	for i := range ins {
		ins[i] = sim.NewInput(string(rune('a'+i)), L)
		register(t, r, ins[i])
	}
	out := sim.NewOutput("out")
	register(t, r, g, out)
	for _, in := range ins {
		connect(t, r, in, g)
	}
	connect(t, r, g, out)
	simtest.TruthTable(t, r, ins, out, result)
	simtest.CheckLinks(t, r)
}

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		name   string
		gate   func() *sim.Gate
		result []sim.Signal // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", func() *sim.Gate { return sim.NewNot("not") }, []sim.Signal{H, L}},
		{"AND", func() *sim.Gate { return sim.NewAnd("and") }, []sim.Signal{L, L, L, H}},
		{"NAND", func() *sim.Gate { return sim.NewNand("nand") }, []sim.Signal{H, H, H, L}},
		{"OR", func() *sim.Gate { return sim.NewOr("or") }, []sim.Signal{L, H, H, H}},
		{"NOR", func() *sim.Gate { return sim.NewNor("nor") }, []sim.Signal{H, L, L, L}},
		{"XOR", func() *sim.Gate { return sim.NewXor("xor") }, []sim.Signal{L, H, H, L}},
		{"AND3", func() *sim.Gate { return sim.NewAndN("and3", 3) }, []sim.Signal{L, L, L, L, L, L, L, H}},
		{"AND1", func() *sim.Gate { return sim.NewAndN("and1", 1) }, []sim.Signal{L, H}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.gate(), d.result)
		})
	}
}

func Test_gate_underConnected(t *testing.T) {
	td := []struct {
		name string
		gate *sim.Gate
	}{
		{"AND", sim.NewAnd("and")},
		{"OR", sim.NewOr("or")},
		{"NAND", sim.NewNand("nand")},
		{"NOR", sim.NewNor("nor")},
		{"XOR", sim.NewXor("xor")},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			r := sim.New()
			a := sim.NewInput("a", L)
			out := sim.NewOutput("out")
			register(t, r, a, d.gate, out)
			connect(t, r, a, d.gate, d.gate, out)
			for _, v := range []sim.Signal{L, H, L} {
				if err := r.Set(a, v); err != nil {
					t.Fatal(err)
				}
				expect(t, d.gate, L)
				expect(t, out, L)
			}
		})
	}
}

func TestNot_unconnected(t *testing.T) {
	r := sim.New()
	n := sim.NewNot("not")
	out := sim.NewOutput("out")
	register(t, r, n, out)
	connect(t, r, n, out)
	r.Propagate()
	expect(t, n, L)
	expect(t, out, L)
}

func TestAndN_partial(t *testing.T) {
	r := sim.New()
	a := sim.NewInput("a", L)
	b := sim.NewInput("b", L)
	g := sim.NewAndN("and4", 4)
	register(t, r, a, b, g)

	r.Propagate()
	expect(t, g, L)

	// only connected inputs count
	connect(t, r, a, g)
	simtest.TruthTable(t, r, []*sim.InputSource{a}, g, []sim.Signal{L, H})
	connect(t, r, b, g)
	simtest.TruthTable(t, r, []*sim.InputSource{a, b}, g, []sim.Signal{L, L, L, H})

	zero := sim.NewAndN("and0", 0)
	register(t, r, zero)
	r.Propagate()
	expect(t, zero, L)
	if err := r.Connect(a, zero); err == nil {
		t.Fatal("connecting to a 0-input gate should fail")
	}
}

func TestAndN_quick(t *testing.T) {
	r := sim.New()
	g := sim.NewAndN("and16", 16)
	register(t, r, g)
	ins := make([]*sim.InputSource, 16)
	for i := range ins {
		ins[i] = sim.NewInput("in", L)
		register(t, r, ins[i])
		connect(t, r, ins[i], g)
	}
	f := func(v uint16) bool {
		for i, in := range ins {
			in.SetValue(sim.Signal(v >> uint(i) & 1))
		}
		r.Propagate()
		return (g.Value() == H) == (v == 0xffff)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
	// quick.Check is unlikely to try 0xffff
	if !f(0xffff) {
		t.Fatal("AND16(all HIGH) is not HIGH")
	}
}

func TestGate_Evaluate(t *testing.T) {
	r := sim.New()
	a := sim.NewInput("a", L)
	n := sim.NewNot("n")
	register(t, r, a, n)
	connect(t, r, a, n)
	expect(t, n, H)

	// reads never recompute
	a.SetValue(H)
	expect(t, n, H)
	if !n.Evaluate() {
		t.Fatal("Evaluate did not report a change")
	}
	expect(t, n, L)
	if n.Evaluate() {
		t.Fatal("second Evaluate reported a change")
	}
}

func TestNewGate(t *testing.T) {
	td := []struct {
		kind sim.GateKind
		n    int
		max  int
		ok   bool
	}{
		{sim.And, 0, 2, true},
		{sim.And, 2, 2, true},
		{sim.And, 3, 0, false},
		{sim.Not, 0, 1, true},
		{sim.Not, 2, 0, false},
		{sim.AndN, 5, 5, true},
		{sim.AndN, 0, 0, true},
		{sim.AndN, -1, 0, false},
		{sim.Xor, 2, 2, true},
		{sim.GateKind(99), 0, 0, false},
	}
	for _, d := range td {
		g, err := sim.NewGate("g", d.kind, d.n)
		if d.ok != (err == nil) {
			t.Errorf("NewGate(%v, %d): unexpected error value %v", d.kind, d.n, err)
			continue
		}
		if d.ok && g.MaxInputs() != d.max {
			t.Errorf("NewGate(%v, %d): %d inputs, expected %d", d.kind, d.n, g.MaxInputs(), d.max)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("NewAndN(-1) did not panic")
		}
	}()
	sim.NewAndN("bad", -1)
}

func TestParseGateKind(t *testing.T) {
	for _, k := range []sim.GateKind{sim.And, sim.Not, sim.AndN, sim.Or, sim.Nand, sim.Nor, sim.Xor} {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		p, err := sim.ParseGateKind(string(b))
		if err != nil {
			t.Fatal(err)
		}
		if p != k {
			t.Errorf("ParseGateKind(%q) = %v, expected %v", b, p, k)
		}
	}
	if _, err := sim.ParseGateKind("mux"); err == nil {
		t.Error("expected an error for unknown gate type")
	}
}
