package reactive

import "sync/atomic"

var globalIDCounter uint64

// nextID returns the next unique ID for a store or effect.
// IDs are monotonically increasing and never reused, across all runtimes.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
