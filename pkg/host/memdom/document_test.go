package memdom

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/ember/pkg/host"
)

func TestInsertBeforeAndRemove(t *testing.T) {
	d := New()
	root := d.Container("div")
	a := d.CreateText("a").(*Node)
	b := d.CreateText("b").(*Node)
	c := d.CreateText("c").(*Node)

	d.InsertBefore(root, a, nil)
	d.InsertBefore(root, c, nil)
	d.InsertBefore(root, b, c)

	if got := root.TextContent(); got != "abc" {
		t.Fatalf("TextContent = %q, want %q", got, "abc")
	}
	if d.Parent(b) != host.Node(root) {
		t.Error("b should be attached to root")
	}

	d.Remove(b)
	d.Remove(b)
	if got := root.TextContent(); got != "ac" {
		t.Errorf("TextContent = %q, want %q", got, "ac")
	}
	if d.Parent(b) != nil {
		t.Error("removed node should report nil parent")
	}
}

func TestInsertMovesAttachedNode(t *testing.T) {
	d := New()
	left := d.Container("ul")
	right := d.Container("ul")
	item := d.CreateElement("li")

	d.InsertBefore(left, item, nil)
	d.InsertBefore(right, item, nil)

	if len(left.Children()) != 0 || len(right.Children()) != 1 {
		t.Errorf("node should move between parents, left=%d right=%d", len(left.Children()), len(right.Children()))
	}
}

func TestJournal(t *testing.T) {
	d := New()
	root := d.Container("div")
	var streamed []Op
	cancel := d.Subscribe(func(op Op) { streamed = append(streamed, op) })

	el := d.CreateElement("span").(*Node)
	d.SetAttribute(el, "class", "x")
	d.InsertBefore(root, el, nil)
	d.RemoveAttribute(el, "class")
	d.RemoveAttribute(el, "class")
	cancel()
	d.Remove(el)

	want := []Op{
		{Kind: OpCreateElement, Node: el.ID, Name: "span"},
		{Kind: OpSetAttr, Node: el.ID, Name: "class", Value: "x"},
		{Kind: OpInsert, Node: el.ID, Parent: root.ID},
		{Kind: OpRemoveAttr, Node: el.ID, Name: "class"},
		{Kind: OpRemove, Node: el.ID, Parent: root.ID},
	}
	if diff := cmp.Diff(want, d.Journal()); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[:4], streamed); diff != "" {
		t.Errorf("subscriber mismatch (-want +got):\n%s", diff)
	}

	d.ResetJournal()
	if len(d.Journal()) != 0 {
		t.Error("journal should be empty after reset")
	}
}

func TestDispatchBubbles(t *testing.T) {
	d := New()
	outer := d.CreateElement("div").(*Node)
	inner := d.CreateElement("button").(*Node)
	d.InsertBefore(outer, inner, nil)

	var seen []string
	d.AddEventListener(outer, "click", func(e host.Event) {
		seen = append(seen, "outer")
		if e.Target() != host.Node(inner) {
			t.Error("target should be the dispatched node")
		}
	})
	id := d.AddEventListener(inner, "click", func(host.Event) { seen = append(seen, "inner") })

	if n := d.Dispatch(inner, "click"); n != 2 {
		t.Errorf("expected 2 handlers, got %d", n)
	}
	d.RemoveEventListener(inner, "click", id)
	if inner.ListenerCount("click") != 0 {
		t.Error("listener should be removed")
	}
	d.Dispatch(inner, "click")

	if diff := cmp.Diff([]string{"inner", "outer", "outer"}, seen); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestStopPropagation(t *testing.T) {
	d := New()
	outer := d.CreateElement("div").(*Node)
	inner := d.CreateElement("a").(*Node)
	d.InsertBefore(outer, inner, nil)

	outerCalls := 0
	d.AddEventListener(outer, "click", func(host.Event) { outerCalls++ })
	d.AddEventListener(inner, "click", func(e host.Event) { e.(*Event).StopPropagation() })

	d.Dispatch(inner, "click")
	if outerCalls != 0 {
		t.Error("stopped event should not bubble")
	}
}

func TestInputSetsValue(t *testing.T) {
	d := New()
	in := d.CreateElement("input").(*Node)
	var got any
	d.AddEventListener(in, "input", func(e host.Event) {
		got = d.Property(e.Target(), "value")
	})

	d.Input(in, "hello")
	if got != "hello" {
		t.Errorf("expected handler to see value, got %v", got)
	}
}

func TestHTML(t *testing.T) {
	d := New()
	root := d.Container("div")
	p := d.CreateElement("p").(*Node)
	d.SetAttribute(p, "title", `a "b"`)
	d.SetAttribute(p, "hidden", "")
	d.InsertBefore(p, d.CreateText("1 < 2 & 3"), nil)
	d.InsertBefore(p, d.CreateText(""), nil)
	d.InsertBefore(root, p, nil)
	d.InsertBefore(root, d.CreateElement("br"), nil)

	want := `<div><p hidden title="a &quot;b&quot;">1 &lt; 2 &amp; 3</p><br></div>`
	if got := HTML(root); got != want {
		t.Errorf("HTML =\n%s\nwant\n%s", got, want)
	}
	if got := InnerHTML(root); got != want[5:len(want)-6] {
		t.Errorf("InnerHTML = %s", got)
	}
}

func TestFind(t *testing.T) {
	d := New()
	root := d.Container("ul")
	for i := 0; i < 3; i++ {
		li := d.CreateElement("li")
		d.InsertBefore(root, li, nil)
	}

	if got := len(root.ByTag("li")); got != 3 {
		t.Errorf("expected 3 li, got %d", got)
	}
	if root.Find(func(n *Node) bool { return n.Tag == "p" }) != nil {
		t.Error("expected no p")
	}
	if d.Node(root.ID) != root {
		t.Error("Node should resolve by id")
	}
}

func TestAnnotatedInnerHTML(t *testing.T) {
	d := New()
	root := d.Container("div")
	p := d.CreateElement("p").(*Node)
	d.InsertBefore(p, d.CreateText("hi"), nil)
	d.InsertBefore(root, p, nil)

	want := `<p data-id="` + strconv.Itoa(p.ID) + `">hi</p>`
	if got := AnnotatedInnerHTML(root, "data-id"); got != want {
		t.Errorf("AnnotatedInnerHTML = %q, want %q", got, want)
	}
	if got := AnnotatedInnerHTML(root, ""); got != InnerHTML(root) {
		t.Errorf("empty attribute should match InnerHTML, got %q", got)
	}
}

func TestRemoveReleasesSubtree(t *testing.T) {
	d := New()
	root := d.Container("div")
	ul := d.CreateElement("ul").(*Node)
	li := d.CreateElement("li").(*Node)
	d.InsertBefore(ul, li, nil)
	d.InsertBefore(root, ul, nil)

	d.Remove(ul)
	if d.Node(ul.ID) != nil || d.Node(li.ID) != nil {
		t.Error("removed subtree should not resolve by id")
	}
	if got := d.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	d.InsertBefore(root, ul, nil)
	if d.Node(ul.ID) != ul || d.Node(li.ID) != li {
		t.Error("re-inserted subtree should resolve by id again")
	}

	detached := d.CreateElement("p").(*Node)
	d.Remove(detached)
	if d.Node(detached.ID) != nil {
		t.Error("removing a detached node should release it")
	}
}
