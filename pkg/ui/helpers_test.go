package ui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/ember/pkg/host/memdom"
	"github.com/vango-dev/ember/pkg/reactive"
)

type fixture struct {
	rt   *reactive.Runtime
	doc  *memdom.Document
	r    *Renderer
	root *memdom.Node
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := reactive.NewRuntime(reactive.WithLogger(logger))
	doc := memdom.New()
	return &fixture{
		rt:   rt,
		doc:  doc,
		r:    New(rt, doc, opts...),
		root: doc.Container("main"),
	}
}

func (f *fixture) mount(t *testing.T, root any) *Root {
	t.Helper()
	mounted, err := f.r.Mount(root, f.root)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mounted
}

func (f *fixture) html() string {
	return memdom.InnerHTML(f.root)
}

func (f *fixture) effects(src *reactive.Source) int {
	return len(f.rt.Graph().Effects(src))
}

// countingObserver tallies node lifecycle events by kind.
type countingObserver struct {
	NopObserver
	created  map[Kind]int
	deleted  map[Kind]int
	switches [][2]int
	lists    []ListStats
	mounts   []error
}

func newCountingObserver() *countingObserver {
	return &countingObserver{created: map[Kind]int{}, deleted: map[Kind]int{}}
}

func (o *countingObserver) NodeCreated(k Kind) { o.created[k]++ }
func (o *countingObserver) NodeDeleted(k Kind) { o.deleted[k]++ }

func (o *countingObserver) BranchSwitched(from, to int) {
	o.switches = append(o.switches, [2]int{from, to})
}

func (o *countingObserver) ListRefreshed(s ListStats) { o.lists = append(o.lists, s) }

func (o *countingObserver) MountStarted() func(error) {
	return func(err error) { o.mounts = append(o.mounts, err) }
}
