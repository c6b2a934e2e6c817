// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexical item.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	Arrow
	Comma
)

var typeNames = [...]string{
	EOF:   "end of input",
	Raw:   "character",
	Ident: "node name",
	Arrow: "'->'",
	Comma: "','",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Item is a lexical item. Pos is the byte offset of the item in the input.
//
type Item struct {
	Type  Type
	Pos   int
	Value string
}

func (i Item) String() string {
	switch i.Type {
	case EOF:
		return i.Type.String()
	case Raw:
		return strconv.Quote(i.Value)
	}
	return i.Type.String() + " " + strconv.Quote(i.Value)
}

// A StateFn is a lexer state. It returns the next state, or nil to go back
// to the initial state.
//
type StateFn func(l *Lexer) StateFn

// Lexer is a state function lexer for wire expressions.
//
type Lexer struct {
	input string
	start int // start of the current item
	pos   int // read position
	width int // width of the last rune read
	state StateFn
	items []Item
}

// NewLexer returns a new lexer for the given input.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Lex returns the next item in the input.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.state = lexInit
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

const eof = -1

// Next returns the next rune in the input.
//
func (l *Lexer) Next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	return r
}

// Backup steps back one rune. It can only be called once per call of Next.
//
func (l *Lexer) Backup() { l.pos -= l.width }

// Ignore skips the pending input.
//
func (l *Lexer) Ignore() { l.start = l.pos }

// Emit emits an item of the given type with the pending input as value.
//
func (l *Lexer) Emit(t Type) {
	l.items = append(l.items, Item{t, l.start, l.input[l.start:l.pos]})
	l.start = l.pos
}

func lexInit(l *Lexer) StateFn {
	r := l.Next()
	switch {
	case r == eof:
		return lexEOF
	case unicode.IsSpace(r):
		for unicode.IsSpace(r) {
			r = l.Next()
		}
		l.Backup()
		l.Ignore()
	case isIdentStart(r):
		return lexIdent
	case r == ',':
		l.Emit(Comma)
	case r == '-':
		if l.Next() == '>' {
			l.Emit(Arrow)
			break
		}
		l.Backup()
		fallthrough
	default:
		l.Emit(Raw)
		return lexEOF
	}
	return nil
}

func lexIdent(l *Lexer) StateFn {
	r := l.Next()
	for isIdentStart(r) || unicode.IsDigit(r) || r == '.' {
		r = l.Next()
	}
	l.Backup()
	l.Emit(Ident)
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *Lexer) StateFn {
	l.start = l.pos
	l.Emit(EOF)
	return lexEOF
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
