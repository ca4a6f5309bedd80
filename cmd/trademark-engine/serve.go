// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/trademark-engine/internal/api"
	"github.com/pdiddy/trademark-engine/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search, fees, health, and metrics over HTTP",
	Long: `Serve starts a JSON HTTP service:

  GET /search?q=&jurisdiction=&classes=&type=&status=
  GET /fees/national?classes=
  GET /fees/madrid?classes=&countries=
  GET /healthz
  GET /metrics

Concurrent identical searches share a single fan-out. The server shuts
down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		agg, st, err := newAggregator(cfg, log, metrics.New(reg))
		if err != nil {
			return err
		}
		defer st.Close()

		svc := api.NewService(agg, reg, log)
		return api.ListenAndServe(cmd.Context(), cfg.Server.Addr, svc, log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr, :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
