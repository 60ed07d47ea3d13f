// Package ui turns declarative node descriptions into a live host tree and
// keeps it in sync with reactive stores.
//
// Every node implements the same lifecycle: Create allocates host
// resources, Mount inserts them before an anchor (or at the end of a
// target), Delete detaches and releases them. Dynamic regions (expression
// lists, conditional blocks, visibility-toggled elements) own an Anchor, an
// empty text resource that marks where their content goes.
//
// # Building trees
//
//	r := ui.New(rt, doc)
//	count := reactive.NewStore(rt, 0)
//	node, err := r.CreateElement("p", ui.Attrs{"className": "counter"},
//	    "Count: ",
//	    func() any { return count.Get() },
//	)
//
// A zero-argument function child is a dynamic expression. When it returns a
// scalar it becomes a text node updated in place; when it returns a slice it
// becomes a keyed list. A function attribute is re-applied whenever the
// stores it read change.
//
// # Conditionals
//
//	block, err := r.If(func() bool { return count.Get() > 0 }, "positive",
//	    ui.Must(r.ElseIf(func() bool { return count.Get() < 0 }, "negative")),
//	    ui.Must(r.Else("zero")),
//	)
//
// # Components
//
// A ComponentFunc receives the renderer and its props. Callbacks registered
// with Runtime.OnMount while it runs are attached to the node it returns.
package ui
