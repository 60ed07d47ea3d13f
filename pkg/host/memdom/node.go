package memdom

import (
	"sort"

	"github.com/vango-dev/ember/pkg/host"
)

// NodeType discriminates memdom nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

type listener struct {
	id      uint64
	handler host.EventHandler
}

// Node is a memdom resource.
type Node struct {
	ID   int
	Type NodeType
	Tag  string
	Text string

	attrs     map[string]string
	props     map[string]any
	parent    *Node
	children  []*Node
	listeners map[string][]listener
}

// Parent returns the node's parent or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attr returns an attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns attribute names in sorted order.
func (n *Node) Attrs() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Prop returns a live property.
func (n *Node) Prop(name string) any { return n.props[name] }

// ListenerCount returns how many listeners are registered for event.
func (n *Node) ListenerCount(event string) int { return len(n.listeners[event]) }

// IsAnchor reports whether n is an empty text node, the shape the reconciler
// uses for anchors.
func (n *Node) IsAnchor() bool { return n.Type == TextNode && n.Text == "" }

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var out []byte
	for _, c := range n.children {
		out = append(out, c.TextContent()...)
	}
	return string(out)
}

// Find returns the first node in n's subtree, n included, matching pred in
// document order.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in n's subtree matching pred in document order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if pred(c) {
			out = append(out, c)
		}
	})
	return out
}

// ByTag returns every element in n's subtree with the given tag.
func (n *Node) ByTag(tag string) []*Node {
	return n.FindAll(func(c *Node) bool { return c.Type == ElementNode && c.Tag == tag })
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}
