package instrument

import "github.com/vango-dev/ember/pkg/ui"

type fanout []ui.Observer

// Fanout returns an observer forwarding every event to each non-nil
// observer in order.
func Fanout(observers ...ui.Observer) ui.Observer {
	out := make(fanout, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (f fanout) NodeCreated(k ui.Kind) {
	for _, o := range f {
		o.NodeCreated(k)
	}
}

func (f fanout) NodeDeleted(k ui.Kind) {
	for _, o := range f {
		o.NodeDeleted(k)
	}
}

func (f fanout) ListRefreshed(s ui.ListStats) {
	for _, o := range f {
		o.ListRefreshed(s)
	}
}

func (f fanout) BranchSwitched(from, to int) {
	for _, o := range f {
		o.BranchSwitched(from, to)
	}
}

func (f fanout) MountStarted() func(error) {
	finishers := make([]func(error), len(f))
	for i, o := range f {
		finishers[i] = o.MountStarted()
	}
	return func(err error) {
		for i := len(finishers) - 1; i >= 0; i-- {
			finishers[i](err)
		}
	}
}
