package reactive

// Observer receives runtime events for instrumentation.
// Implementations must not read or write stores.
type Observer interface {
	// StoreWritten is called after a store's value changed, before its
	// effects re-run. effects is the number of effects about to run.
	StoreWritten(src *Source, effects int)

	// EffectRun is called before a bound effect re-runs.
	EffectRun(e *Effect)
}

type nopObserver struct{}

func (nopObserver) StoreWritten(*Source, int) {}
func (nopObserver) EffectRun(*Effect)         {}
