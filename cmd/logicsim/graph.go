// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var graphFormats = map[string]func(logicsim.Snapshot) string{
	"mermaid": render.Mermaid,
	"dot":     render.DOT,
}

func (a *app) newGraphCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Export the circuit as a Mermaid or Graphviz graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := graphFormats[format]
			if !ok {
				return errors.Errorf("unknown graph format %q", format)
			}
			c, err := a.load(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), gen(c.Snapshot()))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "mermaid", "graph format: mermaid or dot")
	return cmd
}
