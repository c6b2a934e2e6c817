// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package store persists the input levels of circuits, keyed by circuit name.
//
package store

import (
	"context"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when no levels are stored for a circuit.
//
var ErrNotFound = errors.New("levels not found")

// Levels maps input names to their values.
//
type Levels map[string]logicsim.Signal

// Store saves and loads input levels.
//
type Store interface {
	Save(ctx context.Context, circuit string, lv Levels) error
	Load(ctx context.Context, circuit string) (Levels, error)
	Delete(ctx context.Context, circuit string) error
	Close() error
}

func checkName(circuit string) error {
	if circuit == "" || strings.ContainsAny(circuit, `/\`) {
		return errors.Errorf("invalid circuit name %q", circuit)
	}
	return nil
}
