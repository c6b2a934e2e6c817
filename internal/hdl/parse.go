// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses wire expressions.
//
// A wire expression is a comma separated list of links:
//
//	InputA -> Not1, Not1 -> And1
//
// Node names start with a letter or underscore, followed by letters, digits,
// underscores or dots.
//
package hdl

import (
	"github.com/pkg/errors"
)

// Wire is a link from one node to another, as written in a wire expression.
//
type Wire struct {
	From string
	To   string
	Pos  int // byte offset of From in the input
}

// Parse parses a wire expression. An empty expression yields no wires.
//
func Parse(input string) ([]Wire, error) {
	var out []Wire
	l := NewLexer(input)

	i := l.Lex()
	if i.Type == EOF {
		return nil, nil
	}
	for {
		if i.Type != Ident {
			return nil, parseError(input, i, "expected node name")
		}
		w := Wire{From: i.Value, Pos: i.Pos}
		if i = l.Lex(); i.Type != Arrow {
			return nil, parseError(input, i, "expected '->'")
		}
		if i = l.Lex(); i.Type != Ident {
			return nil, parseError(input, i, "expected node name")
		}
		w.To = i.Value
		out = append(out, w)

		switch i = l.Lex(); i.Type {
		case EOF:
			return out, nil
		case Comma:
			i = l.Lex()
		default:
			return nil, parseError(input, i, "expected ',' or end of input")
		}
	}
}

func parseError(in string, i Item, msg string) error {
	return errors.Errorf("in %q at pos %d: %s, got %v", in, i.Pos+1, msg, i)
}
