package ui

import "github.com/vango-dev/ember/pkg/host"

// FragmentTag is passed to CreateElement to group children without a
// wrapping host element.
const FragmentTag fragmentTag = 0

type fragmentTag uint8

// FragmentNode groups children without a host resource of its own.
type FragmentNode struct {
	r        *Renderer
	children []Node
}

// Fragment creates a fragment from children.
func (r *Renderer) Fragment(children ...any) (*FragmentNode, error) {
	nodes, err := r.normalize("Fragment", children)
	if err != nil {
		return nil, err
	}
	return &FragmentNode{r: r, children: nodes}, nil
}

func (f *FragmentNode) Kind() Kind      { return KindFragment }
func (f *FragmentNode) Anchor() *Anchor { return nil }

// Children returns the fragment's children.
func (f *FragmentNode) Children() []Node { return f.children }

func (f *FragmentNode) Create() error {
	if err := createAll(f.children); err != nil {
		return err
	}
	f.r.observer.NodeCreated(KindFragment)
	return nil
}

func (f *FragmentNode) Mount(target, before host.Node) {
	mountAll(f.children, target, before)
}

func (f *FragmentNode) Delete() {
	deleteAll(f.children)
	f.r.observer.NodeDeleted(KindFragment)
}
