// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a circuit and check that it settles",
		Long: `check builds the circuit, propagates its initial input levels and fails if
the gate outputs are still changing when the pass limit is reached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(args[0])
			if err != nil {
				return err
			}
			st := c.Propagate()
			if !st.Converged {
				return errors.Errorf("%s: did not converge after %d passes", c.Name, st.Passes)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d inputs, %d gates, %d outputs, converged in %d passes\n",
				c.Name, len(c.Inputs()), len(c.Gates()), len(c.Outputs()), st.Passes)
			return err
		},
	}
}
