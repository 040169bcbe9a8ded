package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/cohensara/coverenum/pkg/api"
	"github.com/cohensara/coverenum/pkg/metrics"
	"github.com/cohensara/coverenum/pkg/observability"
)

// serveCommand creates the serve command: run the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enumeration over HTTP",
		Long: `Start the HTTP API:

  POST /v1/enumerate  enumerate covers of an instance document
  POST /v1/optimum    exact optimum and greedy gap
  POST /v1/render     draw an instance as SVG or DOT
  GET  /healthz       liveness
  GET  /metrics       Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = c.Config.Server.WriteTimeout.Duration
			}
			return c.runServe(cmd.Context(), addr, timeout, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "per-request timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, timeout time.Duration, noCache bool) error {
	logger := loggerFromContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	m.Register()
	defer observability.Reset()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &api.Server{
		Runner:      runner,
		Logger:      logger,
		MaxResults:  c.Config.Server.MaxResults,
		Gatherer:    reg,
		Timeout:     timeout,
		ReadTimeout: c.Config.Server.ReadTimeout.Duration,
		Recorder:    m.Recorder(),
	}
	logger.Info("listening", "addr", addr, "cache", c.Config.Cache.Backend)
	return srv.ListenAndServe(ctx, addr)
}
