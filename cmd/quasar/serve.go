package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/quasar-dev/quasar/internal/config"
	"github.com/quasar-dev/quasar/internal/demo"
	"github.com/quasar-dev/quasar/internal/errors"
	"github.com/quasar-dev/quasar/pkg/live"
)

func serveCmd(dir *string) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve [app]",
		Short: "Serve a demo app live in the browser",
		Long: `Serve a demo app. Every page load gets its own session; browser
events are sent over a websocket and re-rendered views are morphed into
the page.

Examples:
  quasar serve
  quasar serve todo --port=8080
  QUASAR_ADDR=0.0.0.0:7070 quasar serve cats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg, args)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from quasar.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from quasar.yaml)")

	return cmd
}

// newLiveServer builds the live server for d.
func newLiveServer(cmd *cobra.Command, cfg *config.Config, d demo.Demo) *live.Server {
	liveConfig := live.DefaultConfig()
	liveConfig.MetricsPath = cfg.Server.MetricsPath
	if liveConfig.MetricsPath == "-" {
		liveConfig.MetricsPath = ""
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log).With("app", d.Name)
	return live.NewServer(d,
		live.WithLogger(logger),
		live.WithConfig(liveConfig),
		live.WithRegistry(registry),
	)
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, args []string) error {
	d, err := loadDemo(cfg, args)
	if err != nil {
		return err
	}
	srv := newLiveServer(cmd, cfg, d)

	out := cmd.OutOrStdout()
	success(out, "Serving %s", d.Title)
	info(out, "http://%s", cfg.Address())

	if err := srv.ListenAndServe(ctx, cfg.Address()); err != nil {
		return errors.New("Q082").WithDetail("Listening on " + cfg.Address()).Wrap(err)
	}
	return nil
}
