package ui

import "github.com/vango-dev/ember/pkg/host"

// TextNode displays a string.
type TextNode struct {
	r     *Renderer
	value string
	node  host.Node
}

// Text creates a text node.
func (r *Renderer) Text(value string) *TextNode {
	return &TextNode{r: r, value: value}
}

func (t *TextNode) Kind() Kind      { return KindText }
func (t *TextNode) Anchor() *Anchor { return nil }

// Value returns the current text.
func (t *TextNode) Value() string { return t.value }

// HostNode returns the host resource, nil unless created.
func (t *TextNode) HostNode() host.Node { return t.node }

func (t *TextNode) Create() error {
	t.node = t.r.host.CreateText(t.value)
	t.r.observer.NodeCreated(KindText)
	return nil
}

func (t *TextNode) Mount(target, before host.Node) {
	if t.node == nil {
		return
	}
	t.r.host.InsertBefore(target, t.node, before)
}

// Update replaces the displayed text without moving the node.
func (t *TextNode) Update(value string) {
	t.value = value
	if t.node != nil {
		t.r.host.SetText(t.node, value)
	}
}

func (t *TextNode) Delete() {
	if t.node == nil {
		return
	}
	t.r.host.Remove(t.node)
	t.node = nil
	t.r.observer.NodeDeleted(KindText)
}
