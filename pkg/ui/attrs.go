package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

const bindPrefix = "bind:"

// applyAttributes applies attrs to the freshly created host element in
// name order.
func (e *ElementNode) applyAttributes() error {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := e.attrs[name]
		switch {
		case name == "key" || name == "show" || name == "hide":
			continue
		case name == "ref":
			e.applyRef(value)
		case strings.HasPrefix(name, bindPrefix):
			if err := e.applyBinding(strings.TrimPrefix(name, bindPrefix), value); err != nil {
				return err
			}
		default:
			if event, ok := e.r.naming.EventName(name); ok {
				if handler, ok := eventHandler(value); ok {
					e.listen(event, handler)
					continue
				}
			}
			e.applyAttribute(e.r.naming.AttributeName(name), value)
		}
	}
	return nil
}

func eventHandler(v any) (host.EventHandler, bool) {
	switch h := v.(type) {
	case host.EventHandler:
		return h, h != nil
	case func(host.Event):
		return h, h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(host.Event) { h() }, true
	}
	return nil, false
}

func (e *ElementNode) listen(event string, handler host.EventHandler) {
	h, node := e.r.host, e.node
	id := h.AddEventListener(node, event, handler)
	e.teardowns = append(e.teardowns, func() {
		h.RemoveEventListener(node, event, id)
	})
}

func (e *ElementNode) applyRef(v any) {
	switch ref := v.(type) {
	case func(host.Node):
		ref(e.node)
	case *Ref:
		ref.Node = e.node
	default:
		e.r.logger.Warn("ember: ignoring ref of unsupported type", "tag", e.tag, "type", fmt.Sprintf("%T", v))
	}
}

// applyBinding wires a two-way binding: the store is mirrored into the
// property, and host input writes the property back into the store.
func (e *ElementNode) applyBinding(prop string, v any) error {
	b, ok := v.(reactive.Bindable)
	if !ok {
		return newBuildError(UnsupportedExpressionType, bindPrefix+prop, v)
	}

	h, node := e.r.host, e.node
	e.listen(e.bindingEvent(), func(host.Event) {
		if err := b.Assign(h.Property(node, prop)); err != nil {
			e.r.logger.Warn("ember: binding write rejected", "code", "E011", "tag", e.tag, "prop", prop, "error", err)
		}
	})

	value, eff := reactive.Subscribe(e.r.rt, b.Value, func() {
		h.SetProperty(node, prop, b.Value())
	})
	e.track(eff)
	h.SetProperty(node, prop, value)
	return nil
}

// bindingEvent picks the host event a binding listens to: text-like
// inputs report every keystroke, everything else reports on change.
func (e *ElementNode) bindingEvent() string {
	if e.tag != "input" {
		return "change"
	}
	var typ any
	e.r.rt.Untracked(func() { typ = evalValue(e.attrs["type"]) })
	switch typ {
	case nil, "", "text", "number":
		return "input"
	}
	return "change"
}

func (e *ElementNode) applyAttribute(name string, v any) {
	fn, ok := computation(v)
	if !ok {
		e.setAttribute(name, v)
		return
	}
	value, eff := reactive.Subscribe(e.r.rt, fn, func() {
		e.setAttribute(name, fn())
	})
	e.track(eff)
	e.setAttribute(name, value)
}

func (e *ElementNode) setAttribute(name string, v any) {
	if e.node == nil {
		return
	}
	switch x := v.(type) {
	case nil:
		e.r.host.RemoveAttribute(e.node, name)
		return
	case bool:
		if x {
			e.r.host.SetAttribute(e.node, name, "")
		} else {
			e.r.host.RemoveAttribute(e.node, name)
		}
		return
	}
	if text, ok := scalarText(v); ok {
		e.r.host.SetAttribute(e.node, name, text)
		return
	}
	e.r.host.SetAttribute(e.node, name, fmt.Sprint(v))
}
