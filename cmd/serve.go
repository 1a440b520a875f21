package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/kilianp07/perfmap/api/documents"
	"github.com/kilianp07/perfmap/app"
	"github.com/kilianp07/perfmap/core/factory"
	"github.com/kilianp07/perfmap/infra/logger"
	"github.com/kilianp07/perfmap/infra/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr  string
		token string
		rsID  string
	)
	cmd := &cobra.Command{
		Use:   "serve FILE...",
		Short: "Load documents and serve them over HTTP with Prometheus metrics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, opts, addr, token, rsID, args)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&token, "token", os.Getenv("PERFMAP_API_TOKEN"), "bearer token required by the API")
	cmd.Flags().StringVar(&rsID, "rs", "", "representation specification (default: metadata.schema)")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, opts *rootOptions, addr, token, rsID string, paths []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if len(cfg.Metrics.Sinks) == 0 {
		cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "prometheus"}}
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc, err := buildService(cmd, cfg, app.WithPrometheusRegisterer(reg))
	if err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := svc.Load(p, rsID); err != nil {
			return err
		}
	}
	mux := http.NewServeMux()
	mux.Handle("/api/", documents.NewHandler(svc, token))
	mux.Handle("/metrics", metrics.Handler(reg))
	logg := logger.NewWithWriter(cmd.ErrOrStderr(), "http", cfg.Logging.Level)
	return metrics.StartServer(ctx, addr, mux, logg)
}
