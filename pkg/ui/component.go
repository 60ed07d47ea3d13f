package ui

import (
	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

// ComponentFunc builds a subtree. Stores created in the body belong to the
// instance; callbacks registered with Runtime.OnMount while it runs are
// attached to the returned node.
type ComponentFunc func(r *Renderer, props Props) (Node, error)

// Props are the inputs of a component instance.
type Props struct {
	Attrs    Attrs
	Children []Node
}

// Get returns the attribute named name, nil if absent.
func (p Props) Get(name string) any {
	return p.Attrs[name]
}

// Component instantiates fn. The mount queue is isolated while fn runs, so
// only fn's own OnMount registrations are attached to its node. Effects fn
// binds directly are owned by the node and disposed when it is deleted.
// A component returning no node renders as an empty fragment.
func (r *Renderer) Component(fn ComponentFunc, attrs Attrs, children ...any) (Node, error) {
	nodes, err := r.normalize("Component", children)
	if err != nil {
		return nil, err
	}

	var (
		node  Node
		hooks []reactive.MountFunc
	)
	effects := r.rt.Own(func() {
		hooks = r.rt.Mounts().Isolate(func() {
			node, err = fn(r, Props{Attrs: attrs, Children: nodes})
		})
	})
	if err != nil {
		for _, eff := range effects {
			eff.Dispose()
		}
		return nil, err
	}
	if node == nil || isNilNode(node) {
		node = &FragmentNode{r: r}
	}
	return r.withHooks(node, hooks, effects), nil
}

func (r *Renderer) withHooks(n Node, hooks []reactive.MountFunc, effects []*reactive.Effect) Node {
	if len(hooks) == 0 && len(effects) == 0 {
		return n
	}
	return &hooked{Node: n, r: r, hooks: hooks, effects: effects}
}

// CreateElement builds a node from a tag name, FragmentTag or a component.
func (r *Renderer) CreateElement(kind any, attrs Attrs, children ...any) (Node, error) {
	switch k := kind.(type) {
	case string:
		el, err := r.Element(k, attrs, children...)
		if err != nil {
			return nil, err
		}
		return el, nil
	case fragmentTag:
		f, err := r.Fragment(children...)
		if err != nil {
			return nil, err
		}
		return f, nil
	case ComponentFunc:
		return r.Component(k, attrs, children...)
	case func(*Renderer, Props) (Node, error):
		return r.Component(k, attrs, children...)
	}
	return nil, newBuildError(UnsupportedChildType, "CreateElement", kind)
}

// Must returns n, panicking if err is non-nil. It is meant for trees
// whose construction cannot fail.
func Must[N any](n N, err error) N {
	if err != nil {
		panic(err)
	}
	return n
}

// hooked attaches a component's mount callbacks and effects to its node.
// It mounts and deletes the node's anchor itself so the callbacks observe a
// complete subtree.
type hooked struct {
	Node
	r         *Renderer
	hooks     []reactive.MountFunc
	teardowns []func()
	mounted   bool

	effects []*reactive.Effect
	stopped bool
}

func (h *hooked) Anchor() *Anchor { return nil }

// Key forwards the wrapped node's list key.
func (h *hooked) Key() (any, bool) {
	if k, ok := h.Node.(Keyed); ok {
		return k.Key()
	}
	return nil, false
}

// Create resumes the effects a previous Delete disposed, then creates the
// wrapped node.
func (h *hooked) Create() error {
	if h.stopped {
		h.stopped = false
		for _, eff := range h.effects {
			eff.Resume()
		}
	}
	return h.Node.Create()
}

func (h *hooked) Mount(target, before host.Node) {
	mountNode(h.Node, target, before)
	if h.mounted {
		return
	}
	h.mounted = true
	h.r.rt.Untracked(func() {
		for _, fn := range h.hooks {
			if teardown := fn(); teardown != nil {
				h.teardowns = append(h.teardowns, teardown)
			}
		}
	})
}

func (h *hooked) Delete() {
	teardowns := h.teardowns
	h.teardowns = nil
	h.mounted = false
	for _, fn := range teardowns {
		fn()
	}
	for _, eff := range h.effects {
		eff.Dispose()
	}
	h.stopped = true
	deleteNode(h.Node)
}
