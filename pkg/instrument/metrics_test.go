package instrument

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/ember/pkg/host/memdom"
	"github.com/vango-dev/ember/pkg/reactive"
	"github.com/vango-dev/ember/pkg/ui"
)

func TestMetricsObserveRendering(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	rt := reactive.NewRuntime(reactive.WithObserver(m))
	doc := memdom.New()
	r := ui.New(rt, doc, ui.WithObserver(m))

	items := reactive.NewNamedStore(rt, "items", []string{"a", "b"})
	on := reactive.NewNamedStore(rt, "on", true)

	tree := ui.Must(r.Element("div", nil,
		func() any { return items.Get() },
		ui.Must(r.If(func() bool { return on.Get() }, "yes", ui.Must(r.Else("no")))),
	))
	root, err := r.Mount(tree, doc.Container("main"))
	if err != nil {
		t.Fatal(err)
	}

	items.Set([]string{"a", "b", "c"})
	on.Set(false)

	if got := testutil.ToFloat64(m.storeWrites.WithLabelValues("items")); got != 1 {
		t.Errorf("store_writes_total{items} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.effectRuns); got != 2 {
		t.Errorf("effect_runs_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.listItems.WithLabelValues("created")); got != 1 {
		t.Errorf("list_items_total{created} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.listItems.WithLabelValues("reused")); got != 2 {
		t.Errorf("list_items_total{reused} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.branchSwitches); got != 1 {
		t.Errorf("branch_switches_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.mounts.WithLabelValues("success")); got != 1 {
		t.Errorf("mounts_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.liveNodes.WithLabelValues("Element")); got != 1 {
		t.Errorf("live_nodes{Element} = %v, want 1", got)
	}

	root.Unmount()
	for _, kind := range []string{"Text", "Element", "List", "Conditional"} {
		if got := testutil.ToFloat64(m.liveNodes.WithLabelValues(kind)); got != 0 {
			t.Errorf("live_nodes{%s} = %v after unmount, want 0", kind, got)
		}
	}
}

func TestMetricsFailedMount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	r := ui.New(reactive.NewRuntime(), memdom.New(), ui.WithObserver(m))

	if _, err := r.Mount(r.Text("x"), nil); err == nil {
		t.Fatal("expected error")
	}
	// A missing target is rejected before the mount starts.
	if got := testutil.CollectAndCount(m.mounts); got != 0 {
		t.Errorf("expected no mount series, got %d", got)
	}

	done := m.MountStarted()
	done(errors.New("boom"))
	if got := testutil.ToFloat64(m.mounts.WithLabelValues("error")); got != 1 {
		t.Errorf("mounts_total{error} = %v, want 1", got)
	}
}

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithConstLabels(prometheus.Labels{"app": "todo"}))
	m.ListRefreshed(ui.ListStats{Duration: 3 * time.Millisecond})
	m.StoreWritten(reactive.NewStore(reactive.NewRuntime(), 0).Source(), 3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"ember_list_refresh_duration_seconds",
		"ember_effects_per_write",
		"ember_store_writes_total",
		"ember_list_items_total",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
	if got := testutil.ToFloat64(m.storeWrites.WithLabelValues("anonymous")); got != 1 {
		t.Errorf("anonymous store writes = %v, want 1", got)
	}
}
