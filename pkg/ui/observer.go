package ui

import "time"

// ListStats summarises one keyed list refresh.
type ListStats struct {
	Created  int
	Reused   int
	Deleted  int
	Started  time.Time
	Duration time.Duration
}

// Observer receives renderer events for instrumentation.
type Observer interface {
	NodeCreated(k Kind)
	NodeDeleted(k Kind)
	ListRefreshed(stats ListStats)

	// BranchSwitched reports a conditional transition. Indices count
	// the If and ElseIf branches in order, the else branch comes last and
	// -1 means no branch.
	BranchSwitched(from, to int)

	// MountStarted is called when Mount begins; the returned function is
	// called with Mount's result.
	MountStarted() func(error)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) NodeCreated(Kind)           {}
func (NopObserver) NodeDeleted(Kind)           {}
func (NopObserver) ListRefreshed(ListStats)    {}
func (NopObserver) BranchSwitched(int, int)    {}
func (NopObserver) MountStarted() func(error) { return func(error) {} }
