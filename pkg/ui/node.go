package ui

import "github.com/vango-dev/ember/pkg/host"

// Kind is the node variant discriminator.
type Kind uint8

const (
	KindText        Kind = iota // Text with in-place updates
	KindElement                 // Host element with attributes and children
	KindFragment                // Grouping without a host resource
	KindList                    // Keyed sequence
	KindConditional             // If / ElseIf / Else block
	KindExpression              // Dynamic expression hosting a Text or List
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindList:
		return "List"
	case KindConditional:
		return "Conditional"
	case KindExpression:
		return "Expression"
	default:
		return "Unknown"
	}
}

// Node is a renderable unit implementing the create/mount/delete lifecycle.
//
// Create allocates host resources, including the node's own anchor. Mount
// inserts the node before before, or at the end of target when before is
// nil; whoever mounts a node mounts its anchor right after it. Delete
// releases the node and its children; whoever deletes a node deletes its
// anchor. A deleted node may be created again.
type Node interface {
	Kind() Kind
	Create() error
	Mount(target, before host.Node)
	Delete()

	// Anchor returns the node's insertion marker, or nil if it has none.
	Anchor() *Anchor
}

// Keyed is implemented by nodes that carry an explicit list key.
type Keyed interface {
	Key() (any, bool)
}

// Anchor is an empty text resource marking a stable insertion point.
type Anchor struct {
	h    host.Host
	node host.Node
}

func (r *Renderer) newAnchor() *Anchor {
	return &Anchor{h: r.host}
}

// Node returns the anchor's host resource, nil until created.
func (a *Anchor) Node() host.Node {
	return a.node
}

func (a *Anchor) create() {
	a.node = a.h.CreateText("")
}

func (a *Anchor) mount(target, before host.Node) {
	if a.node != nil {
		a.h.InsertBefore(target, a.node, before)
	}
}

func (a *Anchor) delete() {
	if a.node == nil {
		return
	}
	a.h.Remove(a.node)
	a.node = nil
}

// parent returns the container the anchor is mounted in, nil when detached.
func (a *Anchor) parent() host.Node {
	if a.node == nil {
		return nil
	}
	return a.h.Parent(a.node)
}

func mountNode(n Node, target, before host.Node) {
	n.Mount(target, before)
	if a := n.Anchor(); a != nil {
		a.mount(target, before)
	}
}

func deleteNode(n Node) {
	a := n.Anchor()
	n.Delete()
	if a != nil {
		a.delete()
	}
}

// createAll creates nodes in order. On failure the nodes already created
// are deleted again, so nothing stays allocated.
func createAll(nodes []Node) error {
	for i, n := range nodes {
		if err := n.Create(); err != nil {
			for j := i - 1; j >= 0; j-- {
				deleteNode(nodes[j])
			}
			return err
		}
	}
	return nil
}

func mountAll(nodes []Node, target, before host.Node) {
	for _, n := range nodes {
		mountNode(n, target, before)
	}
}

func deleteAll(nodes []Node) {
	for _, n := range nodes {
		deleteNode(n)
	}
}
