package reactive

// MountFunc runs after the node of the component that registered it is
// mounted. A non-nil return value is kept as a teardown and run when that
// node is deleted.
type MountFunc func() func()

// MountQueue collects post-mount callbacks while a component body runs.
type MountQueue struct {
	pending []MountFunc
}

// Register appends fn to the pending list.
func (q *MountQueue) Register(fn MountFunc) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Flush drains and returns the pending list.
func (q *MountQueue) Flush() []MountFunc {
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending callbacks.
func (q *MountQueue) Len() int {
	return len(q.pending)
}

// restore puts back callbacks saved by a Flush, ahead of anything
// registered since.
func (q *MountQueue) restore(saved []MountFunc) {
	if len(saved) == 0 {
		return
	}
	q.pending = append(saved, q.pending...)
}

// Isolate runs body with an empty queue and returns exactly what body
// registered. Whatever was pending before is put back afterwards, so a
// component's registrations never leak into a parent's or child's group.
func (q *MountQueue) Isolate(body func()) []MountFunc {
	saved := q.Flush()
	defer q.restore(saved)
	body()
	return q.Flush()
}
