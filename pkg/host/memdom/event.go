package memdom

import "github.com/vango-dev/ember/pkg/host"

// Event is a synthetic event dispatched through a Document.
type Event struct {
	Name string
	Node *Node

	stopped bool
}

// Type implements host.Event.
func (e *Event) Type() string { return e.Name }

// Target implements host.Event.
func (e *Event) Target() host.Node { return e.Node }

// StopPropagation prevents the event from reaching ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Dispatch fires event on target and bubbles it to each ancestor.
// It returns the number of handlers invoked.
func (d *Document) Dispatch(target *Node, event string) int {
	ev := &Event{Name: event, Node: target}
	calls := 0
	for n := target; n != nil && !ev.stopped; n = n.parent {
		list := append([]listener(nil), n.listeners[event]...)
		for _, l := range list {
			l.handler(ev)
			calls++
		}
	}
	return calls
}

// Input sets target's value property and dispatches an input event,
// the way a user typing into a field would.
func (d *Document) Input(target *Node, value any) int {
	if target.props == nil {
		target.props = make(map[string]any)
	}
	target.props["value"] = value
	return d.Dispatch(target, "input")
}

// Change sets a property and dispatches a change event.
func (d *Document) Change(target *Node, prop string, value any) int {
	if target.props == nil {
		target.props = make(map[string]any)
	}
	target.props[prop] = value
	return d.Dispatch(target, "change")
}
