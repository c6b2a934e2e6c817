// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"log/slog"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/db47h/logicsim/netlist"
	"github.com/spf13/cobra"
)

// app holds the state shared by subcommands, set up before any of them
// runs.
type app struct {
	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), log: logging.NewNop()}
	var (
		cfgPath  string
		logLevel string
	)
	root := &cobra.Command{
		Use:           "logicsim",
		Short:         "Simulate digital logic circuits",
		Long:          `logicsim builds circuits of inputs, logic gates and outputs from YAML or JSON descriptions and propagates signals through them.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			lvl, err := config.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.NewWriter(cmd.ErrOrStderr(), lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration file (YAML)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		a.newRunCmd(),
		a.newGraphCmd(),
		a.newCheckCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// load builds the circuit described in path.
func (a *app) load(path string, opts ...logicsim.Option) (*netlist.Circuit, error) {
	f, err := netlist.Load(path)
	if err != nil {
		return nil, err
	}
	c, err := f.Build(append([]logicsim.Option{logicsim.WithLogger(a.log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	a.log.Debug("circuit loaded", "circuit", c.Name, "nodes", c.Len())
	return c, nil
}
