// Package memdom is an in-memory host tree.
//
// It implements host.Host with plain Go structs, records every mutation in
// a journal, dispatches synthetic events and serialises subtrees to HTML.
// Tests use it to observe exactly what the reconciler did; the preview
// server streams its journal to browsers.
package memdom
