package ui

import "reflect"

// normalize converts construction arguments into nodes. nil children are
// skipped and slices are flattened.
func (r *Renderer) normalize(construct string, children []any) ([]Node, error) {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		var err error
		out, err = r.appendChild(out, construct, c)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Renderer) appendChild(out []Node, construct string, c any) ([]Node, error) {
	switch v := c.(type) {
	case nil:
		return out, nil
	case Node:
		if isNilNode(v) {
			return out, nil
		}
		return append(out, v), nil
	case []Node:
		for _, n := range v {
			if n != nil && !isNilNode(n) {
				out = append(out, n)
			}
		}
		return out, nil
	case []any:
		for _, item := range v {
			var err error
			if out, err = r.appendChild(out, construct, item); err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	n, err := r.toNode(construct, c)
	if err != nil {
		return nil, err
	}
	return append(out, n), nil
}

// toNode converts one non-nil value: nodes pass through, scalars become
// text, computations become expressions and nested sequences fragments.
func (r *Renderer) toNode(construct string, v any) (Node, error) {
	if n, ok := v.(Node); ok && !isNilNode(n) {
		return n, nil
	}
	if text, ok := scalarText(v); ok {
		return r.Text(text), nil
	}
	if fn, ok := computation(v); ok {
		return r.Expression(fn), nil
	}
	if isSequence(v) {
		nodes, err := r.normalize(construct, sequenceValues(v))
		if err != nil {
			return nil, err
		}
		return &FragmentNode{r: r, children: nodes}, nil
	}
	return nil, newBuildError(UnsupportedChildType, construct, v)
}

// sequenceValues copies a slice or array into []any.
func sequenceValues(v any) []any {
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// listEntry is one item of a list with its identity.
type listEntry struct {
	node Node
	key  any
}

// sequenceEntries converts the result of a list expression into keyed
// entries. nil items are skipped but still count as a position.
func (r *Renderer) sequenceEntries(v any) ([]listEntry, error) {
	values := sequenceValues(v)
	out := make([]listEntry, 0, len(values))
	for i, item := range values {
		if item == nil {
			continue
		}
		if n, ok := item.(Node); ok && isNilNode(n) {
			continue
		}
		n, err := r.toNode("List", item)
		if err != nil {
			return nil, err
		}
		out = append(out, listEntry{node: n, key: listKey(n, i)})
	}
	return out, nil
}
