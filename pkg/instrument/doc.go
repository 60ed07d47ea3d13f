// Package instrument observes ember runtimes and renderers.
//
// Metrics exports Prometheus counters and histograms for store writes,
// effect re-runs, node lifecycles, keyed list refreshes, conditional
// branch switches and mounts. Tracer emits OpenTelemetry spans for mounts
// and list refreshes. Both plug into reactive.WithObserver and
// ui.WithObserver; Fanout combines several renderer observers.
//
//	reg := prometheus.NewRegistry()
//	m := instrument.NewMetrics(instrument.WithRegistry(reg))
//	rt := reactive.NewRuntime(reactive.WithObserver(m))
//	r := ui.New(rt, doc, ui.WithObserver(instrument.Fanout(m, instrument.NewTracer())))
package instrument
