package ui

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/ember/pkg/host/memdom"
	"github.com/vango-dev/ember/pkg/reactive"
)

func TestMountCallbacks(t *testing.T) {
	f := newFixture(t)
	var log []string
	var attached bool

	app := func(r *Renderer, p Props) (Node, error) {
		r.Runtime().OnMount(func() func() {
			log = append(log, "mount1")
			attached = f.root.Find(func(n *memdom.Node) bool { return n.Tag == "div" }) != nil
			return func() { log = append(log, "teardown1") }
		})
		r.Runtime().OnMount(func() func() {
			log = append(log, "mount2")
			return func() { log = append(log, "teardown2") }
		})
		r.Runtime().OnMount(func() func() {
			log = append(log, "mount3")
			return nil
		})
		return r.CreateElement("div", nil, "hi")
	}

	root := f.mount(t, app)
	if diff := cmp.Diff([]string{"mount1", "mount2", "mount3"}, log); diff != "" {
		t.Errorf("mount callbacks mismatch (-want +got):\n%s", diff)
	}
	if !attached {
		t.Error("callbacks should run after the node is attached")
	}
	if n := f.rt.Mounts().Len(); n != 0 {
		t.Errorf("mount queue should be drained, got %d pending", n)
	}

	root.Unmount()
	root.Unmount()
	want := []string{"mount1", "mount2", "mount3", "teardown1", "teardown2"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("teardowns mismatch (-want +got):\n%s", diff)
	}
}

func TestMountQueueIsolation(t *testing.T) {
	f := newFixture(t)
	var log []string
	onMount := func(r *Renderer, name string) {
		r.Runtime().OnMount(func() func() {
			log = append(log, name)
			return nil
		})
	}

	child := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		onMount(r, "child")
		return r.CreateElement("i", nil, p.Children)
	})
	parent := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		onMount(r, "parent-before")
		c, err := r.Component(child, nil, "x")
		if err != nil {
			return nil, err
		}
		onMount(r, "parent-after")
		return r.CreateElement("b", nil, c)
	})

	f.mount(t, parent)
	if got := f.html(); got != "<b><i>x</i></b>" {
		t.Errorf("unexpected render %q", got)
	}
	want := []string{"child", "parent-before", "parent-after"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("mount order mismatch (-want +got):\n%s", diff)
	}
}

func TestMountCallbacksRerunWithBranch(t *testing.T) {
	f := newFixture(t)
	on := reactive.NewStore(f.rt, true)
	mounts, teardowns := 0, 0

	widget := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		r.Runtime().OnMount(func() func() {
			mounts++
			return func() { teardowns++ }
		})
		return r.CreateElement("span", nil)
	})

	w, err := f.r.Component(widget, nil)
	if err != nil {
		t.Fatal(err)
	}
	f.mount(t, Must(f.r.If(func() bool { return on.Get() }, w)))

	on.Set(false)
	on.Set(true)
	if mounts != 2 || teardowns != 1 {
		t.Errorf("expected 2 mounts and 1 teardown, got %d and %d", mounts, teardowns)
	}
}

func TestComponentEffectsFollowBranch(t *testing.T) {
	f := newFixture(t)
	on := reactive.NewStore(f.rt, true)
	count := reactive.NewStore(f.rt, 0)
	var seen []int

	widget := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		r.Runtime().Effect(func() { seen = append(seen, count.Get()) })
		return r.CreateElement("span", nil)
	})

	w, err := f.r.Component(widget, nil)
	if err != nil {
		t.Fatal(err)
	}
	root := f.mount(t, Must(f.r.If(func() bool { return on.Get() }, w)))

	count.Set(1)
	on.Set(false)
	count.Set(2)
	if f.effects(count.Source()) != 0 {
		t.Error("deleted component should leave no effect on its stores")
	}
	on.Set(true)
	count.Set(3)
	if diff := cmp.Diff([]int{0, 1, 2, 3}, seen); diff != "" {
		t.Errorf("effect runs mismatch (-want +got):\n%s", diff)
	}

	root.Unmount()
	count.Set(4)
	if got := len(seen); got != 4 {
		t.Errorf("unmounted component effect ran again, %d runs", got)
	}
}

func TestComponentEffectsAreNotShared(t *testing.T) {
	f := newFixture(t)
	count := reactive.NewStore(f.rt, 0)
	runs := map[string]int{}
	effect := func(r *Renderer, name string) {
		r.Runtime().Effect(func() {
			count.Get()
			runs[name]++
		})
	}

	child := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		effect(r, "child")
		return r.CreateElement("i", nil)
	})
	on := reactive.NewStore(f.rt, true)
	parent := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		effect(r, "parent")
		c, err := r.Component(child, nil)
		if err != nil {
			return nil, err
		}
		return r.CreateElement("b", nil, Must(r.If(func() bool { return on.Get() }, c)))
	})

	f.mount(t, parent)
	on.Set(false)
	count.Set(1)
	want := map[string]int{"parent": 2, "child": 1}
	if diff := cmp.Diff(want, runs); diff != "" {
		t.Errorf("effect runs mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentErrorDisposesEffects(t *testing.T) {
	f := newFixture(t)
	count := reactive.NewStore(f.rt, 0)
	failing := func(r *Renderer, p Props) (Node, error) {
		r.Runtime().Effect(func() { count.Get() })
		return nil, errors.New("boom")
	}

	if _, err := f.r.Mount(failing, f.root); err == nil {
		t.Fatal("expected component error")
	}
	if n := f.effects(count.Source()); n != 0 {
		t.Errorf("failed component should not leave effects, got %d", n)
	}
}

func TestComponentProps(t *testing.T) {
	f := newFixture(t)
	greet := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		return r.CreateElement("h1", nil, "Hello, ", p.Get("name"), p.Children)
	})

	node, err := f.r.CreateElement(greet, Attrs{"name": "ember"}, "!")
	if err != nil {
		t.Fatal(err)
	}
	f.mount(t, node)
	if got := f.html(); got != "<h1>Hello, ember!</h1>" {
		t.Errorf("unexpected render %q", got)
	}
}

func TestComponentReturningNothing(t *testing.T) {
	f := newFixture(t)
	empty := func(r *Renderer, p Props) (Node, error) { return nil, nil }

	root := f.mount(t, empty)
	if _, ok := root.Node().(*FragmentNode); !ok {
		t.Errorf("expected empty fragment, got %T", root.Node())
	}
}

func TestComponentError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	failing := func(r *Renderer, p Props) (Node, error) {
		r.Runtime().OnMount(func() func() { return nil })
		return nil, boom
	}

	if _, err := f.r.Mount(failing, f.root); !errors.Is(err, boom) {
		t.Errorf("expected component error, got %v", err)
	}
	if n := f.rt.Mounts().Len(); n != 0 {
		t.Errorf("failed component should not leak callbacks, got %d", n)
	}
}

func TestCreateElementKinds(t *testing.T) {
	f := newFixture(t)

	frag, err := f.r.CreateElement(FragmentTag, nil, "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if frag.Kind() != KindFragment {
		t.Errorf("expected fragment, got %s", frag.Kind())
	}

	if _, err := f.r.CreateElement(42, nil); !errors.Is(err, ErrUnsupportedChildType) {
		t.Errorf("expected ErrUnsupportedChildType, got %v", err)
	}

	n, err := f.r.CreateElement("ul", nil, struct{}{})
	if n != nil || !errors.Is(err, ErrUnsupportedChildType) {
		t.Errorf("expected nil node and ErrUnsupportedChildType, got %v, %v", n, err)
	}
}

func TestKeyedComponentWithHooks(t *testing.T) {
	f := newFixture(t)
	item := ComponentFunc(func(r *Renderer, p Props) (Node, error) {
		r.Runtime().OnMount(func() func() { return nil })
		return r.CreateElement("li", Attrs{"key": p.Get("id")})
	})

	n, err := f.r.Component(item, Attrs{"id": "k"})
	if err != nil {
		t.Fatal(err)
	}
	k, ok := n.(Keyed)
	if !ok {
		t.Fatalf("expected keyed node, got %T", n)
	}
	if key, ok := k.Key(); !ok || key != "k" {
		t.Errorf("expected key %q, got %v", "k", key)
	}
}
