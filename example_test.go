package logicsim_test

import (
	"fmt"

	"github.com/db47h/logicsim"
)

func Example() {
	r := logicsim.New()
	a := logicsim.NewInput("a", logicsim.Low)
	b := logicsim.NewInput("b", logicsim.High)
	and := logicsim.NewAnd("and")
	x := logicsim.NewOutput("x")
	for _, n := range []logicsim.Node{a, b, and, x} {
		r.Add(n)
	}
	r.Connect(a, and)
	r.Connect(b, and)
	r.Connect(and, x)
	fmt.Println(x.Value())

	r.Toggle(a)
	fmt.Println(x.Value())

	s := r.Snapshot()
	for _, e := range s.Edges {
		fmt.Println(e.From, "->", e.To)
	}

	// Output:
	// LOW
	// HIGH
	// a -> and
	// b -> and
	// and -> x
}
