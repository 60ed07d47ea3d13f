package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/ember/pkg/ui"
)

// Default tracer name for ember spans.
const defaultTracerName = "github.com/vango-dev/ember"

// TracerConfig configures the span observer.
type TracerConfig struct {
	// TracerName is the instrumentation scope (default: "github.com/vango-dev/ember").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Context is the parent context of every span. Default: context.Background().
	Context context.Context
}

// TracerOption configures a Tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = tp
	}
}

// WithContext sets the parent context of emitted spans.
func WithContext(ctx context.Context) TracerOption {
	return func(c *TracerConfig) {
		c.Context = ctx
	}
}

// Tracer emits OpenTelemetry spans for mounts, list refreshes and branch
// switches.
type Tracer struct {
	ui.NopObserver
	tracer trace.Tracer
	ctx    context.Context
}

var _ ui.Observer = (*Tracer)(nil)

// NewTracer creates a span observer.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before rendering:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerName == "" {
		config.TracerName = defaultTracerName
	}

	var tracer trace.Tracer
	if config.Provider != nil {
		tracer = config.Provider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}
	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Tracer{tracer: tracer, ctx: ctx}
}

// MountStarted implements ui.Observer.
func (t *Tracer) MountStarted() func(error) {
	_, span := t.tracer.Start(t.ctx, "ember.mount",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(time.Now()),
	)
	return func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// ListRefreshed implements ui.Observer. The span covers the refresh that
// already happened.
func (t *Tracer) ListRefreshed(s ui.ListStats) {
	_, span := t.tracer.Start(t.ctx, "ember.list.refresh",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(s.Started),
		trace.WithAttributes(
			attribute.Int("ember.list.created", s.Created),
			attribute.Int("ember.list.reused", s.Reused),
			attribute.Int("ember.list.deleted", s.Deleted),
		),
	)
	span.End(trace.WithTimestamp(s.Started.Add(s.Duration)))
}

// BranchSwitched implements ui.Observer.
func (t *Tracer) BranchSwitched(from, to int) {
	_, span := t.tracer.Start(t.ctx, "ember.branch.switch",
		trace.WithAttributes(
			attribute.Int("ember.branch.from", from),
			attribute.Int("ember.branch.to", to),
		),
	)
	span.End()
}
