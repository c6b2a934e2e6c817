// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/render"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		sets   []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Set inputs, propagate and print the circuit state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels, err := parseLevels(sets)
			if err != nil {
				return err
			}
			c, err := a.load(args[0])
			if err != nil {
				return err
			}
			st, err := c.Apply(levels)
			if err != nil {
				return err
			}
			if !st.Converged {
				a.log.Warn("circuit did not converge", "circuit", c.Name, "passes", st.Passes)
			}
			return writeSnapshot(cmd.OutOrStdout(), c.Snapshot(), format)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set an input, as NAME=LEVEL (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

// parseLevels parses NAME=LEVEL assignments.
func parseLevels(sets []string) (map[string]logicsim.Signal, error) {
	levels := make(map[string]logicsim.Signal, len(sets))
	for _, s := range sets {
		name, lv, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("invalid assignment %q, expected NAME=LEVEL", s)
		}
		v, err := logicsim.ParseSignal(lv)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		levels[name] = v
	}
	return levels, nil
}

func writeSnapshot(w io.Writer, s logicsim.Snapshot, format string) error {
	switch format {
	case "table", "":
		return render.Table(w, s, colorProfile(w))
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.Errorf("unknown output format %q", format)
}

// colorProfile returns the terminal color profile if w is a terminal, and
// termenv.Ascii otherwise.
func colorProfile(w io.Writer) termenv.Profile {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}
