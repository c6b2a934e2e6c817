// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package metrics_test

import (
	"testing"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := metrics.New(reg)
	r := sim.New(sim.WithHooks(m.Hooks()))

	a, b := sim.NewInput("a", sim.High), sim.NewInput("b", sim.Low)
	x := sim.NewOutput("x")
	for _, n := range []sim.Node{a, b, x} {
		_, err := r.Add(n)
		require.NoError(t, err)
	}
	require.NoError(t, r.Connect(a, x))
	require.NoError(t, r.Connect(b, x))
	assert.Error(t, r.Connect(x, a))
	assert.Error(t, r.Connect(x, a))
	assert.Error(t, r.Toggle(sim.NewInput("z", sim.Low)))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Propagations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SinkReplacements))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.NonConverged))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Rejected.WithLabelValues("connect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("toggle")))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestHooks_nonConverged(t *testing.T) {
	m := metrics.New(nil)
	r := sim.New(sim.WithHooks(m.Hooks()))
	n := sim.NewNot("n")
	_, err := r.Add(n)
	require.NoError(t, err)
	require.NoError(t, r.Connect(n, n))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NonConverged))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Passes))
}
