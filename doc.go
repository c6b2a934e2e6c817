// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package logicsim provides a small discrete-valued digital logic simulator.

A circuit is made of three kinds of nodes: input sources, combinational gates
and output sinks. Nodes are created with the New* functions, registered with a
Registry and wired together through Registry.Connect:

	r := logicsim.New()
	a := logicsim.NewInput("a", logicsim.Low)
	n := logicsim.NewNot("n")
	x := logicsim.NewOutput("x")
	for _, nd := range []logicsim.Node{a, n, x} {
		r.Add(nd)
	}
	r.Connect(a, n)
	r.Connect(n, x)
	r.Toggle(a) // x is now LOW

The Registry owns every link between nodes. Nodes never modify each other:
connecting, disconnecting and removing nodes always goes through the Registry
so that both ends of a link are updated together.

Propagation is a bounded brute force: every gate is re-evaluated in
registration order until a pass changes nothing or the pass count reaches the
number of gates plus one. Acyclic networks always settle. Networks with
feedback loops terminate but their final state is not specified.

The simulator is single-threaded. A Registry must not be used from several
goroutines without external locking.
*/
package logicsim
