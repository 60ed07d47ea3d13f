// Package reactive provides the dependency-tracking core of ember.
//
// A Runtime owns three pieces of state that would otherwise be process-wide:
// the TrackingContext (a stack of capture frames), the DependencyGraph
// (store → bound effects) and the MountQueue (deferred post-mount callbacks).
// Independent runtimes never observe each other.
//
// # Stores
//
// Store[T] is a single mutable value cell:
//
//	rt := reactive.NewRuntime()
//	count := reactive.NewStore(rt, 0)
//	count.Get()    // records count in the innermost Building frame
//	count.Set(5)   // re-runs every bound effect, in binding order
//	count.Update(func(n int) int { return n + 1 })
//
// Writes never compare the old and new value: writing an unchanged value
// still re-runs every bound effect.
//
// # Capture and Bind
//
// Capture runs a computation inside a fresh Building frame and returns the
// stores it read. Bind registers an update callback on each of them.
// Subscribe combines both and is the primitive the renderer uses everywhere:
//
//	text, eff := reactive.Subscribe(rt, func() string {
//	    return fmt.Sprint(count.Get())
//	}, func() {
//	    node.Update(fmt.Sprint(count.Get()))
//	})
//
// A computation that reads no store is static: nothing is bound and eff is
// nil.
//
// # Concurrency
//
// A Runtime is not safe for concurrent use. Effects run synchronously and
// recursively inside Set; confine each Runtime to one goroutine or guard it
// with a single lock, as the preview server does.
package reactive
