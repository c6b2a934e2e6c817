// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Signal is a two-valued logic level.
//
type Signal uint8

// Signal values.
//
const (
	Low Signal = iota
	High
)

// ErrInvalidSignal is returned when a value other than Low or High is used
// as a Signal.
//
var ErrInvalidSignal = errors.New("invalid signal value")

// Valid returns true if s is either Low or High.
//
func (s Signal) Valid() bool { return s == Low || s == High }

// Not returns the complement of s. Invalid signals are complemented as if
// they were Low.
//
func (s Signal) Not() Signal {
	if s == High {
		return Low
	}
	return High
}

func (s Signal) String() string {
	switch s {
	case Low:
		return "LOW"
	case High:
		return "HIGH"
	}
	return "Signal(" + strconv.Itoa(int(s)) + ")"
}

// ParseSignal converts a string to a Signal. It accepts "low", "high", "0",
// "1", "false" and "true", ignoring case and surrounding spaces.
//
func ParseSignal(s string) (Signal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "0", "false":
		return Low, nil
	case "high", "1", "true":
		return High, nil
	}
	return Low, errors.Wrapf(ErrInvalidSignal, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
//
func (s Signal) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrap(ErrInvalidSignal, s.String())
	}
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (s *Signal) UnmarshalText(text []byte) error {
	v, err := ParseSignal(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
