// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package render formats circuit snapshots for terminals and graph tools.
//
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

const (
	colorHigh = "#22c55e"
	colorLow  = "#6b7280"
)

// Table writes s as a plain text table with one section per node kind. Values
// are colored using profile p; termenv.Ascii disables colors.
//
//	INPUTS
//	  a  HIGH
//	GATES
//	  g  AND  LOW   a, -
//	OUTPUTS
//	  x  LOW   <- g
//
func Table(w io.Writer, s logicsim.Snapshot, p termenv.Profile) error {
	bw := bufio.NewWriter(w)
	width := 0
	for _, in := range s.Inputs {
		width = max(width, runewidth.StringWidth(in.Name))
	}
	for _, g := range s.Gates {
		width = max(width, runewidth.StringWidth(g.Name))
	}
	for _, o := range s.Outputs {
		width = max(width, runewidth.StringWidth(o.Name))
	}

	level := func(v logicsim.Signal) string {
		txt := fmt.Sprintf("%-4s", v)
		st := p.String(txt)
		if v == logicsim.High {
			st = st.Foreground(p.Color(colorHigh)).Bold()
		} else {
			st = st.Foreground(p.Color(colorLow)).Faint()
		}
		return st.String()
	}

	if len(s.Inputs) > 0 {
		fmt.Fprintln(bw, "INPUTS")
		for _, in := range s.Inputs {
			fmt.Fprintf(bw, "  %s  %s\n", pad(in.Name, width), level(in.Value))
		}
	}
	if len(s.Gates) > 0 {
		fmt.Fprintln(bw, "GATES")
		for _, g := range s.Gates {
			fmt.Fprintf(bw, "  %s  %-4s  %s  %s\n", pad(g.Name, width), g.Type, level(g.Output), strings.Join(g.Inputs, ", "))
		}
	}
	if len(s.Outputs) > 0 {
		fmt.Fprintln(bw, "OUTPUTS")
		src := sources(s)
		for _, o := range s.Outputs {
			from := logicsim.Unconnected
			if e, ok := src[o.ID]; ok {
				from = e.From
			}
			fmt.Fprintf(bw, "  %s  %s  <- %s\n", pad(o.Name, width), level(o.Value), from)
		}
	}
	return bw.Flush()
}

// pad right-pads s with spaces to width terminal columns.
//
func pad(s string, width int) string {
	if n := width - runewidth.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// sources maps each node to the last edge leading to it.
//
func sources(s logicsim.Snapshot) map[logicsim.Handle]logicsim.Edge {
	m := make(map[logicsim.Handle]logicsim.Edge, len(s.Edges))
	for _, e := range s.Edges {
		m[e.ToID] = e
	}
	return m
}
