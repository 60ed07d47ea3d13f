package reactive

// Effect is an update callback bound to the stores a computation read.
// Effects re-run synchronously, in binding order, whenever one of their
// stores is written. The dependency set is fixed when the effect is bound:
// reads made while the effect re-runs are not recorded.
type Effect struct {
	id       uint64
	rt       *Runtime
	fn       func()
	sources  []*Source
	deps     []*Source
	disposed bool
	runs     int
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Sources returns the stores this effect is bound to.
func (e *Effect) Sources() []*Source {
	out := make([]*Source, len(e.sources))
	copy(out, e.sources)
	return out
}

// Runs returns how many times the effect has re-run after being bound.
func (e *Effect) Runs() int {
	return e.runs
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool {
	return e.disposed
}

// Dispose unbinds the effect from every store. It is safe to call more than
// once and on a nil effect.
func (e *Effect) Dispose() {
	if e == nil || e.disposed {
		return
	}
	e.disposed = true
	for _, src := range e.sources {
		e.rt.graph.remove(src, e)
	}
	e.sources = nil
}

// Resume binds a disposed effect to its original stores again and runs it
// once to catch up with writes it missed. It does nothing on a live or nil
// effect.
func (e *Effect) Resume() {
	if e == nil || !e.disposed {
		return
	}
	e.disposed = false
	e.bind()
	e.run()
}

func (e *Effect) bind() {
	for _, src := range e.deps {
		e.rt.graph.add(src, e)
		e.sources = append(e.sources, src)
	}
}

// run executes the callback inside a Committed frame and outside any Own
// scope.
func (e *Effect) run() {
	if e.disposed {
		return
	}
	e.runs++
	e.rt.observer.EffectRun(e)

	owners := e.rt.owners
	e.rt.owners = nil
	defer func() { e.rt.owners = owners }()
	e.rt.Untracked(e.fn)
}
