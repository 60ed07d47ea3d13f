// Package host defines the boundary between ember's reconciler and the
// tree it renders into.
//
// The reconciler never touches concrete resources. It drives a Host, which
// creates text and element resources, links them into a tree and manages
// attributes, properties and event listeners. A Naming translates prop
// names written by components into host attribute and event names.
package host

import "strings"

// Node is an opaque host resource: a text node, an element or a container.
type Node any

// Event is delivered to listeners registered with AddEventListener.
type Event interface {
	// Type is the host event name, e.g. "click".
	Type() string

	// Target is the node the event was dispatched on.
	Target() Node
}

// EventHandler handles a host event.
type EventHandler func(Event)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

// Host is the minimal capability set the reconciler depends on.
type Host interface {
	// CreateText creates a detached text resource.
	CreateText(text string) Node

	// CreateElement creates a detached element resource.
	CreateElement(tag string) Node

	// SetText replaces the content of a text resource.
	SetText(n Node, text string)

	// InsertBefore inserts child into parent immediately before before,
	// or at the end when before is nil. A child that is already attached
	// elsewhere is moved.
	InsertBefore(parent, child, before Node)

	// Remove detaches n from its parent. Removing a detached node is a no-op.
	Remove(n Node)

	// Parent returns n's parent, or nil when n is detached.
	Parent(n Node) Node

	// SetAttribute sets a string attribute.
	SetAttribute(n Node, name, value string)

	// RemoveAttribute removes an attribute.
	RemoveAttribute(n Node, name string)

	// SetProperty sets a live property such as an input's value.
	SetProperty(n Node, name string, value any)

	// Property reads a live property.
	Property(n Node, name string) any

	// AddEventListener registers h for event on n.
	AddEventListener(n Node, event string, h EventHandler) ListenerID

	// RemoveEventListener unregisters a listener.
	RemoveEventListener(n Node, event string, id ListenerID)
}

// Naming translates component prop names into host names.
type Naming interface {
	// AttributeName returns the host attribute name for prop.
	AttributeName(prop string) string

	// EventName reports whether prop names an event handler and, if so,
	// the host event name it listens to.
	EventName(prop string) (string, bool)
}

// DefaultNaming maps camel-case props the way HTML hosts expect:
// className → class, htmlFor → for, onClick → click.
type DefaultNaming struct{}

var attributeAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// AttributeName implements Naming.
func (DefaultNaming) AttributeName(prop string) string {
	if alias, ok := attributeAliases[prop]; ok {
		return alias
	}
	return prop
}

// EventName implements Naming.
func (DefaultNaming) EventName(prop string) (string, bool) {
	if len(prop) <= 2 || !strings.HasPrefix(prop, "on") {
		return "", false
	}
	return strings.ToLower(prop[2:]), true
}
