package ui

import (
	"log/slog"
	"reflect"

	"github.com/vango-dev/ember/pkg/host"
	"github.com/vango-dev/ember/pkg/reactive"
)

// Renderer builds nodes against one runtime and one host.
type Renderer struct {
	rt       *reactive.Runtime
	host     host.Host
	naming   host.Naming
	logger   *slog.Logger
	observer Observer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNaming sets the prop-name translator. Default: host.DefaultNaming.
func WithNaming(n host.Naming) Option {
	return func(r *Renderer) {
		if n != nil {
			r.naming = n
		}
	}
}

// WithObserver sets the observer notified of lifecycle events.
func WithObserver(o Observer) Option {
	return func(r *Renderer) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithLogger sets the logger. Default: the runtime's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a renderer.
func New(rt *reactive.Runtime, h host.Host, opts ...Option) *Renderer {
	r := &Renderer{
		rt:       rt,
		host:     h,
		naming:   host.DefaultNaming{},
		logger:   rt.Logger(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Runtime returns the renderer's runtime.
func (r *Renderer) Runtime() *reactive.Runtime { return r.rt }

// Host returns the renderer's host.
func (r *Renderer) Host() host.Host { return r.host }

// Root is a mounted tree.
type Root struct {
	r       *Renderer
	node    Node
	target  host.Node
	mounted bool
}

// Node returns the root node.
func (root *Root) Node() Node { return root.node }

// Target returns the container the tree is mounted in.
func (root *Root) Target() host.Node { return root.target }

// Unmount deletes the tree. Calling it again is a no-op.
func (root *Root) Unmount() {
	if !root.mounted {
		return
	}
	deleteNode(root.node)
	root.mounted = false
}

// Mount builds root and attaches it to target. root is a Node or a
// ComponentFunc; a prebuilt Node receives the OnMount callbacks registered
// since the last component instantiation. When target is nil Mount fails with ErrMissingMountTarget
// before touching the host. When creation fails, everything created so far
// is released.
func (r *Renderer) Mount(root any, target host.Node) (*Root, error) {
	if isNilHostNode(target) {
		return nil, newBuildError(MissingMountTarget, "Mount", nil)
	}

	finish := r.observer.MountStarted()
	node, err := r.rootNode(root)
	if err == nil {
		err = node.Create()
	}
	if err != nil {
		finish(err)
		return nil, err
	}

	mountNode(node, target, nil)
	finish(nil)
	return &Root{r: r, node: node, target: target, mounted: true}, nil
}

func (r *Renderer) rootNode(root any) (Node, error) {
	switch v := root.(type) {
	case ComponentFunc:
		return r.Component(v, nil)
	case func(*Renderer, Props) (Node, error):
		return r.Component(v, nil)
	case Node:
		if v != nil && !isNilNode(v) {
			return r.withHooks(v, r.rt.Mounts().Flush(), nil), nil
		}
	}
	return nil, newBuildError(UnsupportedChildType, "Mount", root)
}

func isNilHostNode(n host.Node) bool {
	if n == nil {
		return true
	}
	rv := reflect.ValueOf(n)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func isNilNode(n Node) bool {
	return isNilHostNode(n)
}
