// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/logicsim"
)

func nodeID(h logicsim.Handle) string { return "n" + strconv.FormatUint(uint64(h), 10) }

// mermaidLabel quotes a label for Mermaid. Double quotes cannot be escaped,
// they are replaced with the #quot; entity.
//
func mermaidLabel(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
}

// Mermaid returns s as a Mermaid flowchart. HIGH nodes are in class "high".
//
func Mermaid(s logicsim.Snapshot) string {
	var (
		sb   strings.Builder
		high []string
	)
	sb.WriteString("graph LR\n")
	for _, in := range s.Inputs {
		fmt.Fprintf(&sb, "  %s[/%s/]\n", nodeID(in.ID), mermaidLabel(in.Name))
		if in.Value == logicsim.High {
			high = append(high, nodeID(in.ID))
		}
	}
	for _, g := range s.Gates {
		fmt.Fprintf(&sb, "  %s{{%s}}\n", nodeID(g.ID), mermaidLabel(g.Name+": "+g.Type.String()))
		if g.Output == logicsim.High {
			high = append(high, nodeID(g.ID))
		}
	}
	for _, o := range s.Outputs {
		fmt.Fprintf(&sb, "  %s((%s))\n", nodeID(o.ID), mermaidLabel(o.Name))
		if o.Value == logicsim.High {
			high = append(high, nodeID(o.ID))
		}
	}
	for _, e := range s.Edges {
		fmt.Fprintf(&sb, "  %s --> %s\n", nodeID(e.FromID), nodeID(e.ToID))
	}
	sb.WriteString("  classDef high fill:#bbf7d0,stroke:#15803d\n")
	if len(high) > 0 {
		fmt.Fprintf(&sb, "  class %s high\n", strings.Join(high, ","))
	}
	return sb.String()
}

// DOT returns s as a Graphviz digraph. HIGH nodes are filled.
//
func DOT(s logicsim.Snapshot) string {
	var sb strings.Builder
	attrs := func(v logicsim.Signal) string {
		if v == logicsim.High {
			return `, style=filled, fillcolor="#bbf7d0"`
		}
		return ""
	}
	sb.WriteString("digraph circuit {\n  rankdir=LR;\n")
	for _, in := range s.Inputs {
		fmt.Fprintf(&sb, "  %s [label=%s, shape=invhouse%s];\n", nodeID(in.ID), strconv.Quote(in.Name), attrs(in.Value))
	}
	for _, g := range s.Gates {
		fmt.Fprintf(&sb, "  %s [label=%s, shape=box%s];\n", nodeID(g.ID), strconv.Quote(g.Name+"\n"+g.Type.String()), attrs(g.Output))
	}
	for _, o := range s.Outputs {
		fmt.Fprintf(&sb, "  %s [label=%s, shape=doublecircle%s];\n", nodeID(o.ID), strconv.Quote(o.Name), attrs(o.Value))
	}
	for _, e := range s.Edges {
		fmt.Fprintf(&sb, "  %s -> %s;\n", nodeID(e.FromID), nodeID(e.ToID))
	}
	sb.WriteString("}\n")
	return sb.String()
}
