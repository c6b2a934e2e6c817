// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"slices"

	"github.com/pkg/errors"
)

// Connect links source to target: target is added to the listeners of
// source and source to the source slots of target. Both nodes must be
// registered with r. On success, the circuit is propagated.
//
// source must be an *InputSource or a *Gate, target a *Gate or an
// *OutputSink. Connecting to a gate with no free slot fails with
// ErrGateFull. Connecting to an OutputSink that already has a source
// replaces that source: the previous link is torn down and a warning is
// logged. Connecting an already linked pair is a no-op (followed by a
// propagation).
//
func (r *Registry) Connect(source, target Node) error {
	if isNil(source) || isNil(target) {
		return r.reject("connect", ErrNilNode)
	}
	switch {
	case !r.Contains(source):
		return r.reject("connect", errors.Wrap(ErrNotRegistered, source.Name()))
	case !r.Contains(target):
		return r.reject("connect", errors.Wrap(ErrNotRegistered, target.Name()))
	case listenersOf(source) == nil:
		return r.reject("connect", errors.Wrapf(ErrCannotDrive, "%s -> %s", source.Name(), target.Name()))
	case target.Kind() == KindInput:
		return r.reject("connect", errors.Wrapf(ErrCannotReceive, "%s -> %s", source.Name(), target.Name()))
	}
	if err := r.link(source, target); err != nil {
		return r.reject("connect", errors.Wrapf(err, "%s -> %s", source.Name(), target.Name()))
	}
	r.log.Debug("connected", "from", source.Name(), "to", target.Name())
	r.Propagate()
	return nil
}

// Disconnect removes the link between source and target, on both ends, then
// propagates. It does not check that the nodes are registered with r, and
// disconnecting nodes that are not linked only propagates.
//
// source must be an *InputSource or a *Gate.
//
func (r *Registry) Disconnect(source, target Node) error {
	if isNil(source) || isNil(target) {
		return r.reject("disconnect", ErrNilNode)
	}
	if listenersOf(source) == nil {
		return r.reject("disconnect", errors.Wrapf(ErrCannotDrive, "%s -> %s", source.Name(), target.Name()))
	}
	removeListener(source, target)
	detachSource(target, source)
	r.log.Debug("disconnected", "from", source.Name(), "to", target.Name())
	r.Propagate()
	return nil
}

// link updates both ends of a source -> target link.
//
func (r *Registry) link(src, dst Node) error {
	switch dst := dst.(type) {
	case *Gate:
		if slices.Contains(dst.slots, src) {
			addListener(src, dst)
			return nil
		}
		i := slices.Index(dst.slots, nil)
		if i < 0 {
			return errors.Wrapf(ErrGateFull, "%s has %d inputs", dst.name, len(dst.slots))
		}
		dst.slots[i] = src
	case *OutputSink:
		prev := dst.src
		if prev == src {
			addListener(src, dst)
			return nil
		}
		if prev != nil {
			removeListener(prev, dst)
			r.log.Warn("output source replaced", "output", dst.name, "previous", prev.Name(), "source", src.Name())
			if r.hooks.OnReplace != nil {
				r.hooks.OnReplace(dst, prev, src)
			}
		}
		dst.src = src
	default:
		return ErrCannotReceive
	}
	addListener(src, dst)
	return nil
}

// listenersOf returns a pointer to the listener set of n, or nil if n cannot
// drive other nodes.
//
func listenersOf(n Node) *[]Node {
	switch n := n.(type) {
	case *InputSource:
		return &n.listeners
	case *Gate:
		return &n.listeners
	}
	return nil
}

func addListener(src, dst Node) {
	if ls := listenersOf(src); ls != nil && !slices.Contains(*ls, dst) {
		*ls = append(*ls, dst)
	}
}

func removeListener(src, dst Node) {
	if ls := listenersOf(src); ls != nil {
		*ls = remove(*ls, dst)
	}
}

// detachSource clears every source slot of dst that holds src.
//
func detachSource(dst, src Node) {
	switch dst := dst.(type) {
	case *Gate:
		for i, s := range dst.slots {
			if s == src {
				dst.slots[i] = nil
			}
		}
	case *OutputSink:
		if dst.src == src {
			dst.src = nil
		}
	}
}
