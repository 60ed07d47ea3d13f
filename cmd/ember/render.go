package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/ember/examples/todo"
	"github.com/vango-dev/ember/internal/config"
	"github.com/vango-dev/ember/internal/export"
	"github.com/vango-dev/ember/pkg/host/memdom"
	"github.com/vango-dev/ember/pkg/instrument"
	"github.com/vango-dev/ember/pkg/reactive"
	"github.com/vango-dev/ember/pkg/ui"
)

type renderOptions struct {
	demo     string
	steps    []string
	out      string
	title    string
	fragment bool
}

func renderCmd(g *globals) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a demo to HTML",
		Long: `Mount a demo into an in-memory document, apply state steps in order
and write the resulting markup.

The output target is standard output, a file path, file://path or
s3://bucket/key. S3 uploads use the AWS_* environment credentials and
the region from the config file.

Examples:
  ember render
  ember render --demo counter --step inc --step inc
  ember render --step add:milk --step toggle:1 --out snapshot.html
  ember render --out s3://my-bucket/previews/todo.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, logger, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.demo, "demo", "d", "", "Demo to render (default from config)")
	cmd.Flags().StringArrayVarP(&opts.steps, "step", "s", nil, "State step to apply before rendering (repeatable)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output target (default from config, else stdout)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title (default from config)")
	cmd.Flags().BoolVar(&opts.fragment, "fragment", false, "Write only the rendered markup, without the page wrapper")

	return cmd
}

func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts *renderOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	demo := firstNonEmpty(opts.demo, cfg.Demo)
	factory, err := todo.Lookup(demo)
	if err != nil {
		return err
	}
	target, err := config.ParseTarget(firstNonEmpty(opts.out, cfg.Export.Target))
	if err != nil {
		return err
	}

	rt := reactive.NewRuntime(reactive.WithLogger(logger))
	doc := memdom.New()
	uiOpts := []ui.Option{ui.WithLogger(logger)}
	if cfg.Tracing.Enabled {
		tracer := instrument.NewTracer(
			instrument.WithTracerName(cfg.Tracing.TracerName),
			instrument.WithTracerProvider(otel.GetTracerProvider()),
			instrument.WithContext(ctx),
		)
		uiOpts = append(uiOpts, ui.WithObserver(tracer))
	}
	r := ui.New(rt, doc, uiOpts...)

	app := factory(rt)
	container := doc.Container("main")
	tree, err := r.Mount(ui.ComponentFunc(app.Root), container)
	if err != nil {
		return err
	}
	defer tree.Unmount()

	if err := todo.ApplySteps(app, opts.steps); err != nil {
		return err
	}

	body := memdom.InnerHTML(container)
	logger.Debug("rendered demo", "demo", demo, "steps", len(opts.steps), "bytes", len(body))

	data := []byte(body)
	if !opts.fragment {
		data = export.Page(firstNonEmpty(opts.title, cfg.Preview.Title, demo), body)
	}

	sink, err := export.Open(target, cfg.Export, stdout)
	if err != nil {
		return err
	}
	err = sink.Put(ctx, export.Snapshot{
		Body:        data,
		ContentType: cfg.Export.ContentType,
		Demo:        demo,
		Steps:       opts.steps,
	})
	if err != nil {
		return err
	}
	if target.Scheme != "" {
		logger.Info("snapshot written", "target", sink.String())
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
