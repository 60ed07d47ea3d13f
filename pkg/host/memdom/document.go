package memdom

import (
	"fmt"

	"github.com/vango-dev/ember/pkg/host"
)

// Document owns memdom nodes and implements host.Host.
// It is not safe for concurrent use.
type Document struct {
	nextID       int
	nextListener uint64
	nodes        map[int]*Node
	journal      []Op
	subscribers  map[int]func(Op)
	nextSub      int
}

var _ host.Host = (*Document)(nil)

// New creates an empty document.
func New() *Document {
	return &Document{
		nodes:       make(map[int]*Node),
		subscribers: make(map[int]func(Op)),
	}
}

// Container creates a detached element to mount into. It is not journaled.
func (d *Document) Container(tag string) *Node {
	return d.newNode(ElementNode, tag, "")
}

// Node returns the live node with the given id, or nil. Removed nodes are
// not found until they are inserted again.
func (d *Document) Node(id int) *Node {
	return d.nodes[id]
}

// Len returns the number of live nodes, containers included.
func (d *Document) Len() int {
	return len(d.nodes)
}

// Journal returns a copy of the mutations recorded so far.
func (d *Document) Journal() []Op {
	out := make([]Op, len(d.journal))
	copy(out, d.journal)
	return out
}

// ResetJournal discards recorded mutations.
func (d *Document) ResetJournal() {
	d.journal = nil
}

// Subscribe registers fn to receive every mutation as it happens and
// returns a function that unregisters it.
func (d *Document) Subscribe(fn func(Op)) func() {
	d.nextSub++
	id := d.nextSub
	d.subscribers[id] = fn
	return func() { delete(d.subscribers, id) }
}

func (d *Document) newNode(t NodeType, tag, text string) *Node {
	d.nextID++
	n := &Node{ID: d.nextID, Type: t, Tag: tag, Text: text}
	d.nodes[n.ID] = n
	return n
}

func (d *Document) record(op Op) {
	d.journal = append(d.journal, op)
	for _, fn := range d.subscribers {
		fn(op)
	}
}

// node converts a host handle back to a memdom node.
func node(n host.Node) *Node {
	if n == nil {
		return nil
	}
	mn, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("memdom: foreign host node %T", n))
	}
	return mn
}

func idOf(n *Node) int {
	if n == nil {
		return 0
	}
	return n.ID
}

// CreateText implements host.Host.
func (d *Document) CreateText(text string) host.Node {
	n := d.newNode(TextNode, "", text)
	d.record(Op{Kind: OpCreateText, Node: n.ID, Value: text})
	return n
}

// CreateElement implements host.Host.
func (d *Document) CreateElement(tag string) host.Node {
	n := d.newNode(ElementNode, tag, "")
	d.record(Op{Kind: OpCreateElement, Node: n.ID, Name: tag})
	return n
}

// SetText implements host.Host.
func (d *Document) SetText(h host.Node, text string) {
	n := node(h)
	n.Text = text
	d.record(Op{Kind: OpSetText, Node: n.ID, Value: text})
}

// InsertBefore implements host.Host.
func (d *Document) InsertBefore(p, c, b host.Node) {
	parent, child, before := node(p), node(c), node(b)
	if d.nodes[child.ID] != child {
		d.retain(child)
	}
	if child.parent != nil {
		child.parent.children = removeChild(child.parent.children, child)
	}

	idx := len(parent.children)
	if before != nil {
		if i := parent.indexOf(before); i >= 0 {
			idx = i
		}
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[idx+1:], parent.children[idx:])
	parent.children[idx] = child
	child.parent = parent

	d.record(Op{Kind: OpInsert, Node: child.ID, Parent: parent.ID, Before: idOf(before)})
}

// Remove implements host.Host. n and its subtree are released, detached or
// not; inserting n again brings them back.
func (d *Document) Remove(h host.Node) {
	n := node(h)
	d.release(n)
	if n.parent == nil {
		return
	}
	parent := n.parent
	parent.children = removeChild(parent.children, n)
	n.parent = nil
	d.record(Op{Kind: OpRemove, Node: n.ID, Parent: parent.ID})
}

func (d *Document) release(n *Node) {
	n.walk(func(c *Node) { delete(d.nodes, c.ID) })
}

func (d *Document) retain(n *Node) {
	n.walk(func(c *Node) { d.nodes[c.ID] = c })
}

func removeChild(children []*Node, child *Node) []*Node {
	for i, c := range children {
		if c == child {
			copy(children[i:], children[i+1:])
			children[len(children)-1] = nil
			return children[:len(children)-1]
		}
	}
	return children
}

// Parent implements host.Host.
func (d *Document) Parent(h host.Node) host.Node {
	n := node(h)
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent
}

// SetAttribute implements host.Host.
func (d *Document) SetAttribute(h host.Node, name, value string) {
	n := node(h)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	d.record(Op{Kind: OpSetAttr, Node: n.ID, Name: name, Value: value})
}

// RemoveAttribute implements host.Host.
func (d *Document) RemoveAttribute(h host.Node, name string) {
	n := node(h)
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	d.record(Op{Kind: OpRemoveAttr, Node: n.ID, Name: name})
}

// SetProperty implements host.Host.
func (d *Document) SetProperty(h host.Node, name string, value any) {
	n := node(h)
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	d.record(Op{Kind: OpSetProp, Node: n.ID, Name: name, Value: fmt.Sprint(value)})
}

// Property implements host.Host.
func (d *Document) Property(h host.Node, name string) any {
	return node(h).props[name]
}

// AddEventListener implements host.Host.
func (d *Document) AddEventListener(h host.Node, event string, fn host.EventHandler) host.ListenerID {
	n := node(h)
	d.nextListener++
	id := d.nextListener
	if n.listeners == nil {
		n.listeners = make(map[string][]listener)
	}
	n.listeners[event] = append(n.listeners[event], listener{id: id, handler: fn})
	d.record(Op{Kind: OpListen, Node: n.ID, Name: event})
	return host.ListenerID(id)
}

// RemoveEventListener implements host.Host.
func (d *Document) RemoveEventListener(h host.Node, event string, id host.ListenerID) {
	n := node(h)
	list := n.listeners[event]
	for i, l := range list {
		if l.id == uint64(id) {
			n.listeners[event] = append(list[:i:i], list[i+1:]...)
			d.record(Op{Kind: OpUnlisten, Node: n.ID, Name: event})
			return
		}
	}
}
