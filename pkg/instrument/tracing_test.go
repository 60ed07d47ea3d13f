package instrument

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/ember/pkg/ui"
)

type recorder struct {
	noop.TracerProvider
	names []string
	spans []*recordedSpan
}

func (r *recorder) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	r.names = append(r.names, name)
	return &recordingTracer{rec: r}
}

type recordingTracer struct {
	noop.Tracer
	rec *recorder
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes(), start: cfg.Timestamp()}
	t.rec.spans = append(t.rec.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	start  time.Time
	end    time.Time
	ended  bool
	status codes.Code
	errs   []error
}

func (s *recordedSpan) End(opts ...trace.SpanEndOption) {
	s.ended = true
	cfg := trace.NewSpanEndConfig(opts...)
	s.end = cfg.Timestamp()
}

func (s *recordedSpan) SetStatus(c codes.Code, _ string) { s.status = c }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracerMountSpans(t *testing.T) {
	rec := &recorder{}
	tr := NewTracer(WithTracerProvider(rec), WithTracerName("ember-test"))

	if len(rec.names) != 1 || rec.names[0] != "ember-test" {
		t.Errorf("expected tracer name ember-test, got %v", rec.names)
	}

	tr.MountStarted()(nil)
	tr.MountStarted()(errors.New("boom"))

	if len(rec.spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(rec.spans))
	}
	ok, failed := rec.spans[0], rec.spans[1]
	if ok.name != "ember.mount" || !ok.ended || ok.status != codes.Ok {
		t.Errorf("unexpected success span %+v", ok)
	}
	if failed.status != codes.Error || len(failed.errs) != 1 {
		t.Errorf("failed mount should record the error, got %+v", failed)
	}
}

func TestTracerListRefreshSpan(t *testing.T) {
	rec := &recorder{}
	tr := NewTracer(WithTracerProvider(rec))

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tr.ListRefreshed(ui.ListStats{Created: 2, Reused: 5, Deleted: 1, Started: started, Duration: time.Second})

	if len(rec.spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(rec.spans))
	}
	s := rec.spans[0]
	if !s.start.Equal(started) || !s.end.Equal(started.Add(time.Second)) {
		t.Errorf("span should cover the refresh, got %v..%v", s.start, s.end)
	}
	if v, ok := s.attr("ember.list.reused"); !ok || v.AsInt64() != 5 {
		t.Errorf("expected reused=5, got %v", v.Emit())
	}
}

func TestFanout(t *testing.T) {
	var order []string
	a := &orderObserver{name: "a", log: &order}
	b := &orderObserver{name: "b", log: &order}

	f := Fanout(a, nil, b)
	f.BranchSwitched(0, 1)
	f.MountStarted()(nil)

	want := []string{"a:switch", "b:switch", "a:start", "b:start", "b:done", "a:done"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, order[i], want[i])
		}
	}
}

type orderObserver struct {
	ui.NopObserver
	name string
	log  *[]string
}

func (o *orderObserver) BranchSwitched(int, int) { *o.log = append(*o.log, o.name+":switch") }

func (o *orderObserver) MountStarted() func(error) {
	*o.log = append(*o.log, o.name+":start")
	return func(error) { *o.log = append(*o.log, o.name+":done") }
}
