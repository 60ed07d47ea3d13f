package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/ember/examples/todo"
	"github.com/vango-dev/ember/internal/config"
	"github.com/vango-dev/ember/internal/preview"
	"github.com/vango-dev/ember/pkg/instrument"
	"github.com/vango-dev/ember/pkg/reactive"
	"github.com/vango-dev/ember/pkg/ui"
)

type serveOptions struct {
	addr  string
	demo  string
	steps []string
}

func serveCmd(g *globals) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of a demo",
		Long: `Start the preview server.

The page shows the demo's current markup. Clicks and input in the
browser are dispatched to the in-memory document and every resulting
mutation batch is streamed back over a WebSocket.

Examples:
  ember serve
  ember serve --demo counter --addr :8080
  ember serve --step add:milk --step add:eggs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Preview.Addr = opts.addr
			}
			if opts.demo != "" {
				cfg.Demo = opts.demo
			}

			server, err := newPreview(cfg, logger, opts.steps, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer server.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.OutOrStdout(), "Previewing %s at http://%s", cfg.Demo, cfg.Preview.Addr)
			return server.ListenAndServe(ctx, cfg.Preview.Addr)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVarP(&opts.demo, "demo", "d", "", "Demo to serve (default from config)")
	cmd.Flags().StringArrayVarP(&opts.steps, "step", "s", nil, "State step to apply before serving (repeatable)")

	return cmd
}

// newPreview wires the configured instrumentation into a preview server
// for cfg.Demo. Metrics are registered in reg.
func newPreview(cfg *config.Config, logger *slog.Logger, steps []string, reg *prometheus.Registry) (*preview.Server, error) {
	factory, err := todo.Lookup(cfg.Demo)
	if err != nil {
		return nil, err
	}

	opts := preview.Options{
		Title:  firstNonEmpty(cfg.Preview.Title, cfg.Demo),
		Logger: logger,
	}

	var observers []ui.Observer
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := instrument.NewMetrics(
			instrument.WithRegistry(reg),
			instrument.WithNamespace(cfg.Metrics.Namespace),
		)
		observers = append(observers, m)
		opts.RuntimeObserver = m
		opts.Gatherer = reg
	}
	if cfg.Tracing.Enabled {
		observers = append(observers, instrument.NewTracer(
			instrument.WithTracerName(cfg.Tracing.TracerName),
			instrument.WithTracerProvider(otel.GetTracerProvider()),
		))
	}
	if len(observers) > 0 {
		opts.Observer = instrument.Fanout(observers...)
	}

	build := func(rt *reactive.Runtime) (preview.App, error) {
		app := factory(rt)
		return preview.App{Root: app.Root, Apply: app.Apply}, nil
	}
	server, err := preview.New(build, opts)
	if err != nil {
		return nil, fmt.Errorf("starting preview of %s: %w", cfg.Demo, err)
	}
	for _, step := range steps {
		if _, err := server.Apply(step); err != nil {
			server.Close()
			return nil, err
		}
	}
	return server, nil
}
