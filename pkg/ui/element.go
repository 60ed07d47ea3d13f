package ui

import (
	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

// Attrs holds element attributes and event handlers.
//
// A value that is a zero-argument function is reactive: it is re-applied
// whenever the stores it read change. Special names:
//
//	key          list identity, not rendered
//	show, hide   visibility; the element is deleted while hidden
//	ref          func(host.Node) or *Ref, receives the host element
//	bind:<prop>  reactive.Bindable mirrored into <prop> and written back
//	             on input/change
//	on<Event>    event handler, see host.Naming
type Attrs map[string]any

// Ref receives the host element of the node it is attached to.
type Ref struct {
	Node host.Node
}

// ElementNode is a host element with attributes and children.
type ElementNode struct {
	r        *Renderer
	tag      string
	attrs    Attrs
	children []Node
	key      any
	hasKey   bool

	node      host.Node
	created   bool
	mounted   bool
	effects   []*reactive.Effect
	teardowns []func()

	// hiddenFn is non-nil when show or hide is set.
	hiddenFn  func() bool
	anchor    *Anchor
	hidden    bool
	visEffect *reactive.Effect
}

// Element creates an element node.
func (r *Renderer) Element(tag string, attrs Attrs, children ...any) (*ElementNode, error) {
	nodes, err := r.normalize(tag, children)
	if err != nil {
		return nil, err
	}

	e := &ElementNode{r: r, tag: tag, attrs: attrs, children: nodes}
	if v, ok := attrs["key"]; ok {
		r.rt.Untracked(func() { e.key = evalValue(v) })
		e.hasKey = e.key != nil
	}

	hide, hasHide := attrs["hide"]
	show, hasShow := attrs["show"]
	if hasHide || hasShow {
		e.anchor = r.newAnchor()
		e.hiddenFn = func() bool {
			if hasHide {
				return truthy(evalValue(hide))
			}
			return !truthy(evalValue(show))
		}
	}
	return e, nil
}

func (e *ElementNode) Kind() Kind      { return KindElement }
func (e *ElementNode) Anchor() *Anchor { return e.anchor }

// Key implements Keyed.
func (e *ElementNode) Key() (any, bool) { return e.key, e.hasKey }

// Tag returns the element's tag name.
func (e *ElementNode) Tag() string { return e.tag }

// Children returns the element's children.
func (e *ElementNode) Children() []Node { return e.children }

// HostNode returns the host element, nil while not created or hidden.
func (e *ElementNode) HostNode() host.Node { return e.node }

// Hidden reports whether show/hide currently keeps the element out.
func (e *ElementNode) Hidden() bool { return e.hidden }

func (e *ElementNode) Create() error {
	if e.hiddenFn == nil {
		return e.createContent()
	}

	e.anchor.create()
	e.hidden, e.visEffect = reactive.Subscribe(e.r.rt, e.hiddenFn, e.onVisibilityChange)
	if e.hidden {
		return nil
	}
	if err := e.createContent(); err != nil {
		e.visEffect.Dispose()
		e.visEffect = nil
		e.anchor.delete()
		return err
	}
	return nil
}

// createContent allocates the host element, applies attributes and creates
// the children.
func (e *ElementNode) createContent() error {
	e.node = e.r.host.CreateElement(e.tag)
	e.created = true
	if err := e.applyAttributes(); err != nil {
		e.releaseOwn()
		return err
	}
	if err := createAll(e.children); err != nil {
		e.releaseOwn()
		return err
	}
	e.r.observer.NodeCreated(KindElement)
	return nil
}

func (e *ElementNode) Mount(target, before host.Node) {
	if e.mounted || e.hidden || !e.created {
		return
	}
	mountAll(e.children, e.node, nil)
	e.r.host.InsertBefore(target, e.node, before)
	e.mounted = true
}

func (e *ElementNode) Delete() {
	e.visEffect.Dispose()
	e.visEffect = nil
	if e.created {
		e.deleteContent()
		e.r.observer.NodeDeleted(KindElement)
	}
}

// deleteContent runs teardowns, deletes the children and releases the host
// element. The element can be created again afterwards.
func (e *ElementNode) deleteContent() {
	if !e.created {
		return
	}
	e.stop()
	deleteAll(e.children)
	e.releaseOwn()
}

// stop runs teardowns in reverse registration order and disposes the
// element's effects.
func (e *ElementNode) stop() {
	for i := len(e.teardowns) - 1; i >= 0; i-- {
		e.teardowns[i]()
	}
	e.teardowns = nil
	for _, eff := range e.effects {
		eff.Dispose()
	}
	e.effects = nil
}

// releaseOwn undoes everything createContent did except child creation.
func (e *ElementNode) releaseOwn() {
	e.stop()
	e.r.host.Remove(e.node)
	e.node = nil
	e.created = false
	e.mounted = false
}

func (e *ElementNode) onVisibilityChange() {
	e.hidden = e.hiddenFn()
	if e.hidden {
		if e.created {
			e.deleteContent()
			e.r.observer.NodeDeleted(KindElement)
		}
		return
	}

	if !e.created {
		if err := e.createContent(); err != nil {
			e.r.logger.Error("ember: show element failed", "tag", e.tag, "error", err)
			return
		}
	}
	if parent := e.anchor.parent(); parent != nil {
		e.Mount(parent, e.anchor.Node())
	}
}

func (e *ElementNode) track(eff *reactive.Effect) {
	if eff != nil {
		e.effects = append(e.effects, eff)
	}
}
