package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/ember/pkg/reactive"
	"github.com/vango-dev/ember/pkg/ui"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "ember").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for mount and refresh durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "ember",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records runtime and renderer events as Prometheus metrics.
// It implements both reactive.Observer and ui.Observer.
type Metrics struct {
	storeWrites     *prometheus.CounterVec
	effectFanout    prometheus.Histogram
	effectRuns      prometheus.Counter
	nodesCreated    *prometheus.CounterVec
	nodesDeleted    *prometheus.CounterVec
	liveNodes       *prometheus.GaugeVec
	listItems       *prometheus.CounterVec
	listRefreshTime prometheus.Histogram
	branchSwitches  prometheus.Counter
	mounts          *prometheus.CounterVec
	mountDuration   prometheus.Histogram
}

var (
	_ reactive.Observer = (*Metrics)(nil)
	_ ui.Observer       = (*Metrics)(nil)
)

// NewMetrics creates and registers the collectors.
//
// Metrics collected:
//   - ember_store_writes_total: Counter of store writes by store name
//   - ember_effects_per_write: Histogram of effects notified per write
//   - ember_effect_runs_total: Counter of effect re-runs
//   - ember_nodes_created_total / ember_nodes_deleted_total: by node kind
//   - ember_live_nodes: Gauge of created, not yet deleted nodes by kind
//   - ember_list_items_total: Counter of list items by outcome
//   - ember_list_refresh_duration_seconds: Histogram of keyed refresh time
//   - ember_branch_switches_total: Counter of conditional transitions
//   - ember_mounts_total: Counter of Mount calls by status
//   - ember_mount_duration_seconds: Histogram of Mount time
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		storeWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_writes_total",
			Help:        "Total number of store writes",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		effectFanout: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_per_write",
			Help:        "Number of effects re-run by one store write",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),

		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect re-runs",
			ConstLabels: config.ConstLabels,
		}),

		nodesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_created_total",
			Help:        "Total number of nodes created by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		nodesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_deleted_total",
			Help:        "Total number of nodes deleted by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		liveNodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_nodes",
			Help:        "Number of created nodes not yet deleted by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		listItems: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "list_items_total",
			Help:        "Keyed list items handled during refreshes by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		listRefreshTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "list_refresh_duration_seconds",
			Help:        "Keyed list refresh duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		branchSwitches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "branch_switches_total",
			Help:        "Total number of conditional branch switches",
			ConstLabels: config.ConstLabels,
		}),

		mounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of Mount calls by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		mountDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mount_duration_seconds",
			Help:        "Mount duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// StoreWritten implements reactive.Observer.
func (m *Metrics) StoreWritten(src *reactive.Source, effects int) {
	name := src.Name()
	if name == "" {
		name = "anonymous"
	}
	m.storeWrites.WithLabelValues(name).Inc()
	m.effectFanout.Observe(float64(effects))
}

// EffectRun implements reactive.Observer.
func (m *Metrics) EffectRun(*reactive.Effect) {
	m.effectRuns.Inc()
}

// NodeCreated implements ui.Observer.
func (m *Metrics) NodeCreated(k ui.Kind) {
	m.nodesCreated.WithLabelValues(k.String()).Inc()
	m.liveNodes.WithLabelValues(k.String()).Inc()
}

// NodeDeleted implements ui.Observer.
func (m *Metrics) NodeDeleted(k ui.Kind) {
	m.nodesDeleted.WithLabelValues(k.String()).Inc()
	m.liveNodes.WithLabelValues(k.String()).Dec()
}

// ListRefreshed implements ui.Observer.
func (m *Metrics) ListRefreshed(s ui.ListStats) {
	m.listItems.WithLabelValues("created").Add(float64(s.Created))
	m.listItems.WithLabelValues("reused").Add(float64(s.Reused))
	m.listItems.WithLabelValues("deleted").Add(float64(s.Deleted))
	m.listRefreshTime.Observe(s.Duration.Seconds())
}

// BranchSwitched implements ui.Observer.
func (m *Metrics) BranchSwitched(from, to int) {
	m.branchSwitches.Inc()
}

// MountStarted implements ui.Observer.
func (m *Metrics) MountStarted() func(error) {
	start := time.Now()
	return func(err error) {
		m.mountDuration.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		m.mounts.WithLabelValues(status).Inc()
	}
}
