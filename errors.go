// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Errors returned by Registry operations. They are wrapped with the names of
// the nodes involved; use errors.Cause to test for them.
//
var (
	ErrNilNode       = errors.New("nil node")
	ErrNotRegistered = errors.New("node not registered")
	ErrForeignNode   = errors.New("node registered with another registry")
	ErrCannotDrive   = errors.New("node cannot drive other nodes")
	ErrCannotReceive = errors.New("node does not accept sources")
	ErrGateFull      = errors.New("all gate inputs are connected")
)
