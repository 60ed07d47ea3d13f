// Package preview serves a live view of a mounted component tree.
//
// The tree is rendered into an in-memory host document. Browsers load the
// page from GET /, receive mutation batches over the /ws WebSocket and
// forward their DOM events to POST /events/{node}/{event}, where they are
// dispatched to the host listeners the renderer installed. Every request
// that touches the tree is serialised behind one mutex, since a reactive
// runtime is confined to one goroutine at a time.
//
// Routes:
//
//	GET  /                       page with the current markup and client script
//	GET  /snapshot               current markup as JSON
//	GET  /ws                     patch stream
//	POST /events/{node}/{event}  dispatch a host event
//	POST /steps                  apply a scripted state step
//	GET  /metrics                Prometheus metrics, when a gatherer is set
//	GET  /healthz                liveness
package preview
