package reactive

// Source is the type-erased identity of a Store inside a DependencyGraph.
type Source struct {
	id   uint64
	name string
}

// ID returns the unique identifier of the store behind this source.
func (s *Source) ID() uint64 {
	return s.id
}

// Name returns the debug name of the store, if one was given.
func (s *Source) Name() string {
	return s.name
}

// DependencyGraph maps each store to the ordered effects bound to it.
// Insertion order is re-run order.
type DependencyGraph struct {
	entries map[*Source][]*Effect
}

func newDependencyGraph() *DependencyGraph {
	return &DependencyGraph{entries: make(map[*Source][]*Effect)}
}

// register creates the (empty) entry for a newly constructed store.
func (g *DependencyGraph) register(src *Source) {
	if _, ok := g.entries[src]; !ok {
		g.entries[src] = nil
	}
}

// add appends e to src's entry.
func (g *DependencyGraph) add(src *Source, e *Effect) {
	g.entries[src] = append(g.entries[src], e)
}

// remove drops every occurrence of e from src's entry, preserving order.
func (g *DependencyGraph) remove(src *Source, e *Effect) {
	list := g.entries[src]
	kept := list[:0]
	for _, existing := range list {
		if existing != e {
			kept = append(kept, existing)
		}
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	g.entries[src] = kept
}

// Effects returns a copy of the effects bound to src, in binding order.
func (g *DependencyGraph) Effects(src *Source) []*Effect {
	list := g.entries[src]
	out := make([]*Effect, len(list))
	copy(out, list)
	return out
}

// Has reports whether src has an entry in the graph.
func (g *DependencyGraph) Has(src *Source) bool {
	_, ok := g.entries[src]
	return ok
}

// Len returns the number of stores known to the graph.
func (g *DependencyGraph) Len() int {
	return len(g.entries)
}
