package reactive

import "log/slog"

// Runtime owns the tracking context, dependency graph and mount queue
// shared by every store, effect and node built against it.
type Runtime struct {
	ctx      *TrackingContext
	graph    *DependencyGraph
	mounts   *MountQueue
	logger   *slog.Logger
	observer Observer

	// owners collects effects bound inside Own, innermost scope last.
	owners [][]*Effect
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for effect diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// WithObserver sets the observer notified of writes and effect runs.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observer = o
		}
	}
}

// NewRuntime creates an independent runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		ctx:      &TrackingContext{},
		graph:    newDependencyGraph(),
		mounts:   &MountQueue{},
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Tracking returns the runtime's capture stack.
func (rt *Runtime) Tracking() *TrackingContext { return rt.ctx }

// Graph returns the runtime's dependency graph.
func (rt *Runtime) Graph() *DependencyGraph { return rt.graph }

// Mounts returns the runtime's mount queue.
func (rt *Runtime) Mounts() *MountQueue { return rt.mounts }

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// Untracked runs fn inside a Committed frame: store reads made by fn are
// not recorded by any enclosing capture.
func (rt *Runtime) Untracked(fn func()) {
	rt.ctx.push(Committed)
	defer rt.ctx.pop()
	fn()
}

// Bind registers update on every source in deps, in order, and returns the
// bound effect. An empty dependency set binds nothing and returns nil.
func (rt *Runtime) Bind(update func(), deps []*Source) *Effect {
	if len(deps) == 0 || update == nil {
		return nil
	}
	e := &Effect{id: nextID(), rt: rt, fn: update, deps: deps}
	e.bind()
	if n := len(rt.owners); n > 0 {
		rt.owners[n-1] = append(rt.owners[n-1], e)
	}
	return e
}

// Own runs body and returns the effects bound while it ran, in binding
// order. Effects bound inside a nested Own, or by an effect re-running
// because body wrote a store, are not included.
func (rt *Runtime) Own(body func()) []*Effect {
	depth := len(rt.owners)
	rt.owners = append(rt.owners, nil)
	defer func() { rt.owners = rt.owners[:depth] }()
	body()
	return rt.owners[depth]
}

// Effect runs fn once immediately, then again whenever a store it read
// during that first run is written. It returns nil when fn read no store.
func (rt *Runtime) Effect(fn func()) *Effect {
	_, e := Subscribe(rt, func() struct{} {
		fn()
		return struct{}{}
	}, fn)
	return e
}

// OnMount registers fn with the mount queue of the component currently
// being instantiated.
func (rt *Runtime) OnMount(fn MountFunc) {
	rt.mounts.Register(fn)
}

// notify re-runs the effects bound to src. The entry is copied first, so
// effects bound while notifying wait for the next write.
func (rt *Runtime) notify(src *Source) {
	effects := rt.graph.Effects(src)
	rt.observer.StoreWritten(src, len(effects))
	for _, e := range effects {
		e.run()
	}
}

// Capture runs fn inside a fresh Building frame and returns its result with
// the stores it read, in first-read order and without duplicates.
func Capture[R any](rt *Runtime, fn func() R) (R, []*Source) {
	f := rt.ctx.push(Building)
	defer rt.ctx.pop()
	result := fn()
	return result, f.deps
}

// Subscribe captures fn's dependencies and binds update to them.
// It returns fn's result and the bound effect, nil when fn is static.
func Subscribe[R any](rt *Runtime, fn func() R, update func()) (R, *Effect) {
	result, deps := Capture(rt, fn)
	return result, rt.Bind(update, deps)
}

// RegisterEffect is the package-level form of Runtime.Effect.
func RegisterEffect(rt *Runtime, fn func()) *Effect {
	return rt.Effect(fn)
}
