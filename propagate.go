// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Stats reports the outcome of a propagation.
//
type Stats struct {
	// Passes is the number of evaluation passes run.
	Passes int `json:"passes" yaml:"passes"`
	// Converged is false if the pass limit was reached while gate outputs
	// were still changing. This can only happen in circuits with feedback
	// loops.
	Converged bool `json:"converged" yaml:"converged"`
}

// Propagate settles the circuit.
//
// Every gate is evaluated in registration order, then every output sink
// copies the value of its source. This is repeated until a pass other than
// the first one changes no gate output, or until the number of passes
// reaches the number of gates plus one. The output sinks are refreshed one
// last time before returning.
//
// Acyclic circuits always settle. In circuits with feedback loops, the
// result may depend on the registration order and is not guaranteed to be
// stable.
//
func (r *Registry) Propagate() Stats {
	var (
		st      Stats
		changed bool
		limit   = len(r.gates) + 1
	)
	for i := 0; i < limit; i++ {
		changed = false
		for _, g := range r.gates {
			if g.Evaluate() {
				changed = true
			}
		}
		r.refreshOutputs()
		st.Passes++
		if !changed && i > 0 {
			break
		}
	}
	r.refreshOutputs()
	st.Converged = !changed

	r.log.Debug("propagated", "passes", st.Passes, "converged", st.Converged)
	if r.hooks.OnPropagate != nil {
		r.hooks.OnPropagate(st)
	}
	return st
}

func (r *Registry) refreshOutputs() {
	for _, o := range r.outputs {
		o.refresh()
	}
}
