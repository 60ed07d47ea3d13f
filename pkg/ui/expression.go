package ui

import (
	"fmt"

	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

// ExpressionNode hosts the result of a dynamic expression. Each Create
// evaluates the expression afresh and reconciles it into a TextNode or a
// ListNode.
type ExpressionNode struct {
	r      *Renderer
	fn     func() any
	inner  Node
	effect *reactive.Effect
}

// Expression creates a dynamic expression node.
func (r *Renderer) Expression(fn func() any) *ExpressionNode {
	return &ExpressionNode{r: r, fn: fn}
}

func (e *ExpressionNode) Kind() Kind { return KindExpression }

// Content returns the reconciled node, nil unless created.
func (e *ExpressionNode) Content() Node { return e.inner }

func (e *ExpressionNode) Anchor() *Anchor {
	if e.inner == nil {
		return nil
	}
	return e.inner.Anchor()
}

func (e *ExpressionNode) Create() error {
	inner, effect, err := e.r.reconcile(e.fn)
	if err != nil {
		return err
	}
	e.inner, e.effect = inner, effect
	return nil
}

func (e *ExpressionNode) Mount(target, before host.Node) {
	if e.inner != nil {
		e.inner.Mount(target, before)
	}
}

func (e *ExpressionNode) Delete() {
	e.effect.Dispose()
	e.effect = nil
	if e.inner != nil {
		e.inner.Delete()
		e.inner = nil
	}
}

// reconcile evaluates fn once, captures its dependencies and builds the
// matching live node. Scalars become a TextNode whose text follows fn;
// sequences become a ListNode, keyed and refreshed when fn reads stores.
// The returned node is already created.
func (r *Renderer) reconcile(fn func() any) (Node, *reactive.Effect, error) {
	result, deps := reactive.Capture(r.rt, fn)

	if text, ok := scalarText(result); ok {
		t := r.Text(text)
		if err := t.Create(); err != nil {
			return nil, nil, err
		}
		effect := r.rt.Bind(func() { r.refreshText(t, fn) }, deps)
		return t, effect, nil
	}

	if isSequence(result) {
		entries, err := r.sequenceEntries(result)
		if err != nil {
			return nil, nil, err
		}
		l := r.newList(entries)
		if len(deps) > 0 {
			l.source = fn
			l.anchor = r.newAnchor()
		}
		if err := l.Create(); err != nil {
			return nil, nil, err
		}
		l.effect = r.rt.Bind(l.refresh, deps)
		return l, nil, nil
	}

	return nil, nil, newBuildError(UnsupportedExpressionType, "Expression", result)
}

func (r *Renderer) refreshText(t *TextNode, fn func() any) {
	v := fn()
	text, ok := scalarText(v)
	if !ok {
		r.logger.Warn("ember: text expression produced a non-scalar value",
			"type", fmt.Sprintf("%T", v))
		return
	}
	t.Update(text)
}
