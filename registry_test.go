package logicsim_test

import (
	"slices"
	"testing"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/simtest"
	"github.com/pkg/errors"
)

func TestRegistry_Add(t *testing.T) {
	r := sim.New()
	a := sim.NewInput("a", L)
	g := sim.NewAnd("g")
	x := sim.NewOutput("x")

	var hs []sim.Handle
	for _, n := range []sim.Node{a, g, x} {
		h, err := r.Add(n)
		if err != nil {
			t.Fatal(err)
		}
		if h == 0 || h != n.Handle() {
			t.Fatalf("%s: bad handle %d (node says %d)", n.Name(), h, n.Handle())
		}
		if slices.Contains(hs, h) {
			t.Fatalf("%s: handle %d reused", n.Name(), h)
		}
		hs = append(hs, h)
		if r.Node(h) != n {
			t.Fatalf("Node(%d) != %s", h, n.Name())
		}
	}

	// adding again is a no-op
	h, err := r.Add(g)
	if err != nil || h != hs[1] {
		t.Fatalf("re-adding returned %d, %v", h, err)
	}
	if r.Len() != 3 || len(r.Inputs()) != 1 || len(r.Gates()) != 1 || len(r.Outputs()) != 1 {
		t.Fatalf("bad registry size: %d nodes, %d/%d/%d", r.Len(), len(r.Inputs()), len(r.Gates()), len(r.Outputs()))
	}

	if _, err = r.Add(nil); err != sim.ErrNilNode {
		t.Errorf("Add(nil): expected ErrNilNode, got %v", err)
	}
	var nilGate *sim.Gate
	if _, err = r.Add(nilGate); err != sim.ErrNilNode {
		t.Errorf("Add((*Gate)(nil)): expected ErrNilNode, got %v", err)
	}
	if _, err = sim.New().Add(a); errors.Cause(err) != sim.ErrForeignNode {
		t.Errorf("expected ErrForeignNode, got %v", err)
	}
}

func TestRegistry_Connect_errors(t *testing.T) {
	var rejected []string
	r := sim.New(sim.WithHooks(sim.Hooks{
		OnReject: func(op string, err error) { rejected = append(rejected, op) },
	}))
	a := sim.NewInput("a", H)
	b := sim.NewInput("b", H)
	c := sim.NewInput("c", H)
	g := sim.NewAnd("g")
	x := sim.NewOutput("x")
	stray := sim.NewNot("stray")
	register(t, r, a, b, c, g, x)
	connect(t, r, a, g, b, g)

	td := []struct {
		name     string
		src, dst sim.Node
		err      error
	}{
		{"nil", nil, g, sim.ErrNilNode},
		{"unregistered source", stray, g, sim.ErrNotRegistered},
		{"unregistered target", a, stray, sim.ErrNotRegistered},
		{"output as source", x, g, sim.ErrCannotDrive},
		{"input as target", a, b, sim.ErrCannotReceive},
		{"gate full", c, g, sim.ErrGateFull},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			before := r.Snapshot()
			err := r.Connect(d.src, d.dst)
			if errors.Cause(err) != d.err {
				t.Fatalf("expected %v, got %v", d.err, err)
			}
			if after := r.Snapshot(); !snapshotEqual(before, after) {
				t.Fatalf("failed connect changed the circuit:\n%+v\n%+v", before, after)
			}
		})
	}
	if len(rejected) != len(td) {
		t.Errorf("OnReject called %d times, expected %d", len(rejected), len(td))
	}
	if len(c.Listeners()) != 0 {
		t.Error("rejected link recorded on the source side")
	}
	simtest.CheckLinks(t, r)
}

func TestRegistry_Connect_twice(t *testing.T) {
	r := sim.New()
	a := sim.NewInput("a", H)
	g := sim.NewAnd("g")
	x := sim.NewOutput("x")
	register(t, r, a, g, x)
	connect(t, r, a, g, a, g, g, x, g, x)
	if g.Connected() != 1 || len(a.Listeners()) != 1 || len(g.Listeners()) != 1 {
		t.Fatalf("duplicate links: %d sources, %d/%d listeners", g.Connected(), len(a.Listeners()), len(g.Listeners()))
	}
	simtest.CheckLinks(t, r)
}

func TestRegistry_Connect_replaceOutput(t *testing.T) {
	var replaced [][2]string
	r := sim.New(sim.WithHooks(sim.Hooks{
		OnReplace: func(sink *sim.OutputSink, prev, next sim.Node) {
			replaced = append(replaced, [2]string{prev.Name(), next.Name()})
		},
	}))
	a := sim.NewInput("a", L)
	b := sim.NewInput("b", H)
	x := sim.NewOutput("x")
	register(t, r, a, b, x)

	connect(t, r, a, x)
	expect(t, x, L)
	// the new connection wins
	if err := r.Connect(b, x); err != nil {
		t.Fatalf("replacing an output source should not fail: %v", err)
	}
	expect(t, x, H)
	if x.Source() != sim.Node(b) {
		t.Fatalf("x is driven by %v", x.Source())
	}
	if len(a.Listeners()) != 0 {
		t.Fatal("previous source still lists x")
	}
	if len(replaced) != 1 || replaced[0] != [2]string{"a", "b"} {
		t.Fatalf("unexpected OnReplace calls: %v", replaced)
	}
	simtest.CheckLinks(t, r)
}

func TestRegistry_Remove(t *testing.T) {
	r, n := notAndCircuit(t)
	not1, and1 := n["Not1"].(*sim.Gate), n["And1"].(*sim.Gate)
	inA := n["InputA"].(*sim.InputSource)

	r.Remove(not1)
	if r.Contains(not1) || not1.Handle() != 0 {
		t.Fatal("removed node still registered")
	}
	if len(not1.Sources()) != 1 || not1.Connected() != 0 || len(not1.Listeners()) != 0 {
		t.Fatal("removed node kept its links")
	}
	if len(inA.Listeners()) != 0 {
		t.Fatal("InputA still lists Not1")
	}
	if srcs := and1.Sources(); srcs[0] != nil || srcs[1] != n["InputB"] {
		t.Fatalf("unexpected And1 sources: %v", srcs)
	}
	simtest.CheckLinks(t, r)
	if r.Len() != 4 || len(r.Gates()) != 1 {
		t.Fatalf("unexpected registry size %d", r.Len())
	}

	// a fresh node with the same name has no links
	fresh := sim.NewNot("Not1")
	register(t, r, fresh)
	if fresh.Connected() != 0 || len(fresh.Listeners()) != 0 {
		t.Fatal("fresh node inherited links")
	}

	// the removed node can be registered again, with a new handle
	h, err := r.Add(not1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Node(h) != sim.Node(not1) {
		t.Fatal("bad handle after re-adding")
	}

	// removing an unknown node is a no-op
	r.Remove(sim.NewOutput("stranger"))
	r.Remove(nil)
	simtest.CheckLinks(t, r)
}

func TestRegistry_Remove_all(t *testing.T) {
	r, n := notAndCircuit(t)
	for _, name := range []string{"OutputX", "InputB", "And1", "InputA", "Not1"} {
		r.Remove(n[name])
		simtest.CheckLinks(t, r)
	}
	if r.Len() != 0 {
		t.Fatalf("%d nodes left", r.Len())
	}
	x := n["OutputX"].(*sim.OutputSink)
	if x.Source() != nil {
		t.Fatal("removed output kept its source")
	}
}

func TestRegistry_ConnectDisconnect(t *testing.T) {
	r := sim.New()
	a := sim.NewInput("a", H)
	b := sim.NewInput("b", H)
	g := sim.NewAnd("g")
	x := sim.NewOutput("x")
	register(t, r, a, b, g, x)
	connect(t, r, a, g, g, x)

	before := r.Snapshot()
	srcs, aLs := g.Sources(), a.Listeners()
	connect(t, r, b, g)
	expect(t, x, H)
	if err := r.Disconnect(b, g); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(srcs, g.Sources()) || !slices.Equal(aLs, a.Listeners()) || len(b.Listeners()) != 0 {
		t.Fatal("connect + disconnect did not restore links")
	}
	if after := r.Snapshot(); !snapshotEqual(before, after) {
		t.Fatalf("connect + disconnect did not restore state:\n%+v\n%+v", before, after)
	}
	expect(t, g, L)
	expect(t, x, L)

	if err := r.Disconnect(x, g); errors.Cause(err) != sim.ErrCannotDrive {
		t.Fatalf("expected ErrCannotDrive, got %v", err)
	}
	// not linked: no-op
	if err := r.Disconnect(b, x); err != nil {
		t.Fatal(err)
	}
	simtest.CheckLinks(t, r)
}

func TestRegistry_SetToggle(t *testing.T) {
	r := sim.New()
	a := sim.NewInput("a", L)
	n := sim.NewNot("n")
	register(t, r, a, n)
	connect(t, r, a, n)

	if err := r.Set(a, sim.Signal(5)); errors.Cause(err) != sim.ErrInvalidSignal {
		t.Fatalf("expected ErrInvalidSignal, got %v", err)
	}
	expect(t, a, L)
	if err := r.Set(a, H); err != nil {
		t.Fatal(err)
	}
	expect(t, n, L)
	if err := r.Toggle(a); err != nil {
		t.Fatal(err)
	}
	expect(t, n, H)

	other := sim.NewInput("other", L)
	if err := r.Set(other, H); errors.Cause(err) != sim.ErrNotRegistered {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	if err := r.Toggle(other); errors.Cause(err) != sim.ErrNotRegistered {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	expect(t, other, L)
}

func TestRegistry_independent(t *testing.T) {
	r1, n1 := notAndCircuit(t)
	r2, n2 := notAndCircuit(t)
	if err := r1.Set(n1["InputA"].(*sim.InputSource), H); err != nil {
		t.Fatal(err)
	}
	if err := r1.Connect(n1["InputA"], n2["Not1"]); errors.Cause(err) != sim.ErrNotRegistered {
		t.Fatalf("cross-registry connect: expected ErrNotRegistered, got %v", err)
	}
	expect(t, n1["Not1"], L)
	expect(t, n2["Not1"], H)
	simtest.CheckLinks(t, r1)
	simtest.CheckLinks(t, r2)
}
