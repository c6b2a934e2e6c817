// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports Registry activity as Prometheus metrics.
//
package metrics

import (
	"github.com/db47h/logicsim"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "logicsim"

// Metrics holds the simulator collectors.
//
type Metrics struct {
	Propagations     prometheus.Counter
	Passes           prometheus.Histogram
	NonConverged     prometheus.Counter
	SinkReplacements prometheus.Counter
	Rejected         *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
//
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propagations_total",
			Help:      "Total number of propagations.",
		}),
		Passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "propagation_passes",
			Help:      "Number of evaluation passes per propagation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		NonConverged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nonconverged_total",
			Help:      "Propagations that hit the pass limit without settling.",
		}),
		SinkReplacements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_replacements_total",
			Help:      "Output sink sources replaced by a new connection.",
		}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_total",
			Help:      "Rejected registry operations, by operation.",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.Propagations, m.Passes, m.NonConverged, m.SinkReplacements, m.Rejected)
	}
	return m
}

// Hooks returns registry hooks that update m.
//
func (m *Metrics) Hooks() logicsim.Hooks {
	return logicsim.Hooks{
		OnPropagate: func(st logicsim.Stats) {
			m.Propagations.Inc()
			m.Passes.Observe(float64(st.Passes))
			if !st.Converged {
				m.NonConverged.Inc()
			}
		},
		OnReplace: func(*logicsim.OutputSink, logicsim.Node, logicsim.Node) {
			m.SinkReplacements.Inc()
		},
		OnReject: func(op string, _ error) {
			m.Rejected.WithLabelValues(op).Inc()
		},
	}
}
