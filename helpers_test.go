package logicsim_test

import (
	"testing"

	sim "github.com/db47h/logicsim"
)

func register(t *testing.T, r *sim.Registry, nodes ...sim.Node) {
	t.Helper()
	for _, n := range nodes {
		if _, err := r.Add(n); err != nil {
			t.Fatal(err)
		}
	}
}

// connect connects nodes pairwise: connect(t, r, a, b, c, d) links a->b and c->d.
func connect(t *testing.T, r *sim.Registry, nodes ...sim.Node) {
	t.Helper()
	for i := 0; i+1 < len(nodes); i += 2 {
		if err := r.Connect(nodes[i], nodes[i+1]); err != nil {
			t.Fatal(err)
		}
	}
}

func expect(t *testing.T, n sim.Node, v sim.Signal) {
	t.Helper()
	if got := n.Value(); got != v {
		t.Errorf("%s = %v, expected %v", n.Name(), got, v)
	}
}

const (
	L = sim.Low
	H = sim.High
)
