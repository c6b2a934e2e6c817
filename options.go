// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"io"
	"log/slog"
)

// Hooks are optional callbacks invoked by a Registry. Nil fields are
// ignored. Hooks run synchronously and must not call back into the
// Registry.
//
type Hooks struct {
	// OnPropagate is called at the end of every propagation.
	OnPropagate func(st Stats)
	// OnReplace is called when connecting a new source to an OutputSink
	// disconnects its previous source.
	OnReplace func(sink *OutputSink, prev, next Node)
	// OnReject is called when a Registry operation fails. op is the
	// operation name ("connect", "disconnect", "set", ...).
	OnReject func(op string, err error)
}

// An Option configures a Registry.
//
type Option func(r *Registry)

// WithLogger sets the logger used by the Registry. Structural edits and
// propagation results are logged at Debug level, replaced OutputSink sources
// at Warn level.
//
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithHooks sets the Registry's hooks.
//
func WithHooks(h Hooks) Option {
	return func(r *Registry) { r.hooks = h }
}

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
