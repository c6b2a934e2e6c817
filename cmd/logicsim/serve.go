// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/db47h/logicsim/internal/server"
	"github.com/db47h/logicsim/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func (a *app) newServeCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve a circuit over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = a.cfg.Listen
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)

			c, err := a.load(args[0], logicsim.WithHooks(m.Hooks()))
			if err != nil {
				return err
			}
			st, err := store.Open(a.cfg.Store)
			if err != nil {
				return err
			}
			opts := []server.Option{server.WithGatherer(reg), server.WithLogger(a.log)}
			if st != nil {
				defer st.Close()
				opts = append(opts, server.WithStore(st))
			}
			srv := server.New(c, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err = srv.Restore(ctx); err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, listen)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	return cmd
}
