package ui

import (
	"fmt"
	"time"

	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

// ListNode renders a sequence of items identified by key.
//
// A list built from an expression that read stores owns an anchor and a
// refresh effect. On refresh, items whose key survives are kept as they are,
// new keys are created and mounted before the anchor and vanished keys are
// deleted. Retained items are not moved when their relative order changes.
type ListNode struct {
	r      *Renderer
	items  []Node
	keys   []any
	index  map[any]Node
	source func() any
	anchor *Anchor
	effect *reactive.Effect
}

// newList builds a list from entries. A later entry whose key was already
// seen is dropped.
func (r *Renderer) newList(entries []listEntry) *ListNode {
	l := &ListNode{r: r, index: make(map[any]Node, len(entries))}
	for _, e := range entries {
		if _, dup := l.index[e.key]; dup {
			r.logger.Warn("ember: duplicate list key ignored", "key", fmt.Sprint(e.key))
			continue
		}
		l.index[e.key] = e.node
		l.items = append(l.items, e.node)
		l.keys = append(l.keys, e.key)
	}
	return l
}

func (l *ListNode) Kind() Kind      { return KindList }
func (l *ListNode) Anchor() *Anchor { return l.anchor }

// Items returns the current items in order.
func (l *ListNode) Items() []Node { return l.items }

// Keys returns the current keys in order.
func (l *ListNode) Keys() []any { return l.keys }

// Item returns the node rendered for key.
func (l *ListNode) Item(key any) (Node, bool) {
	n, ok := l.index[key]
	return n, ok
}

// Static reports whether the list never refreshes.
func (l *ListNode) Static() bool { return l.source == nil }

func (l *ListNode) Create() error {
	if err := createAll(l.items); err != nil {
		return err
	}
	if l.anchor != nil {
		l.anchor.create()
	}
	l.r.observer.NodeCreated(KindList)
	return nil
}

func (l *ListNode) Mount(target, before host.Node) {
	mountAll(l.items, target, before)
}

func (l *ListNode) Delete() {
	l.effect.Dispose()
	l.effect = nil
	deleteAll(l.items)
	l.r.observer.NodeDeleted(KindList)
}

// refresh re-evaluates the source and reconciles by key.
func (l *ListNode) refresh() {
	stats := ListStats{Started: time.Now()}
	defer func() {
		stats.Duration = time.Since(stats.Started)
		l.r.observer.ListRefreshed(stats)
	}()

	result := l.source()
	if !isSequence(result) {
		l.r.logger.Warn("ember: list expression produced a non-sequence value",
			"type", fmt.Sprintf("%T", result))
		return
	}
	entries, err := l.r.sequenceEntries(result)
	if err != nil {
		l.r.logger.Error("ember: list refresh failed", "code", "E010", "error", err)
		return
	}

	parent := l.anchor.parent()
	next := make(map[any]Node, len(entries))
	items := make([]Node, 0, len(entries))
	keys := make([]any, 0, len(entries))

	for _, e := range entries {
		if _, dup := next[e.key]; dup {
			l.r.logger.Warn("ember: duplicate list key ignored", "key", fmt.Sprint(e.key))
			continue
		}
		node, ok := l.index[e.key]
		if ok {
			stats.Reused++
		} else {
			node = e.node
			if err := node.Create(); err != nil {
				l.r.logger.Error("ember: list item create failed", "code", "E010", "key", fmt.Sprint(e.key), "error", err)
				continue
			}
			if parent != nil {
				mountNode(node, parent, l.anchor.Node())
			}
			stats.Created++
		}
		next[e.key] = node
		items = append(items, node)
		keys = append(keys, e.key)
	}

	for _, key := range l.keys {
		if _, ok := next[key]; !ok {
			deleteNode(l.index[key])
			stats.Deleted++
		}
	}

	l.index, l.items, l.keys = next, items, keys
}
