package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/ember/internal/errors"
	"github.com/vango-dev/ember/pkg/host/memdom"
	"github.com/vango-dev/ember/pkg/reactive"
	"github.com/vango-dev/ember/pkg/ui"
)

// App is what a preview serves.
type App struct {
	// Root builds the tree.
	Root ui.ComponentFunc

	// Apply runs a scripted state step. nil disables POST /steps.
	Apply func(step string) error
}

// BuildFunc creates the app inside the preview's runtime, so stores are
// owned by that runtime.
type BuildFunc func(rt *reactive.Runtime) (App, error)

// Options configures a preview server.
type Options struct {
	// Title is the page title.
	Title string

	// Logger receives request and runtime logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Observer receives renderer lifecycle events.
	Observer ui.Observer

	// RuntimeObserver receives store writes and effect runs.
	RuntimeObserver reactive.Observer

	// Gatherer serves GET /metrics when set.
	Gatherer prometheus.Gatherer
}

// Server is a live preview of one mounted tree.
type Server struct {
	opts   Options
	logger *slog.Logger
	hub    *Hub

	mu    sync.Mutex
	doc   *memdom.Document
	root  *memdom.Node
	tree  *ui.Root
	apply func(string) error
}

// New builds the app and mounts it into a fresh document.
func New(build BuildFunc, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rtOpts := []reactive.Option{reactive.WithLogger(logger)}
	if opts.RuntimeObserver != nil {
		rtOpts = append(rtOpts, reactive.WithObserver(opts.RuntimeObserver))
	}
	rt := reactive.NewRuntime(rtOpts...)

	doc := memdom.New()
	uiOpts := []ui.Option{ui.WithLogger(logger)}
	if opts.Observer != nil {
		uiOpts = append(uiOpts, ui.WithObserver(opts.Observer))
	}
	r := ui.New(rt, doc, uiOpts...)

	app, err := build(rt)
	if err != nil {
		return nil, err
	}
	if app.Root == nil {
		return nil, fmt.Errorf("preview: app has no root component")
	}
	root := doc.Container("main")
	tree, err := r.Mount(app.Root, root)
	if err != nil {
		return nil, err
	}
	doc.ResetJournal()

	return &Server{
		opts:   opts,
		logger: logger,
		hub:    NewHub(logger),
		doc:    doc,
		root:   root,
		tree:   tree,
		apply:  app.Apply,
	}, nil
}

// Hub returns the server's WebSocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// HTML returns the current markup with node ids.
func (s *Server) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memdom.AnnotatedInnerHTML(s.root, NodeAttr)
}

// Handler returns the preview routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ws", s.handleWS)
	r.Post("/events/{node}/{event}", s.handleEvent)
	r.Post("/steps", s.handleStep)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("preview: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writePage(w, s.opts.Title, s.HTML()); err != nil {
		s.logger.Error("preview: writing page failed", "error", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Message{Type: MessageSnapshot, HTML: s.HTML()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, func() Message {
		return Message{Type: MessageSnapshot, HTML: s.HTML()}
	})
}

// EventRequest is the optional body of POST /events/{node}/{event}.
type EventRequest struct {
	// Value, when set on an input or change event, is written to the node
	// before the event is dispatched.
	Value any `json:"value"`

	// Property receives Value on change events. Defaults to "value".
	Property string `json:"property,omitempty"`
}

// EventResponse reports the outcome of a dispatch.
type EventResponse struct {
	Handled int         `json:"handled"`
	Ops     []memdom.Op `json:"ops"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "node"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E052").
			WithDetail(fmt.Sprintf("%q is not a node id.", chi.URLParam(r, "node"))))
		return
	}
	event := chi.URLParam(r, "event")

	var body EventRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E052").Wrap(err))
		return
	}

	resp, ok := s.Dispatch(id, event, body)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("E050").
			WithDetail(fmt.Sprintf("No node with id %d.", id)))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Dispatch fires event on the node with the given id and broadcasts the
// resulting mutations. It reports false when the node does not exist.
func (s *Server) Dispatch(id int, event string, req EventRequest) (EventResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.doc.Node(id)
	if n == nil {
		return EventResponse{}, false
	}

	s.doc.ResetJournal()
	var handled int
	switch {
	case req.Value != nil && event == "input":
		handled = s.doc.Input(n, req.Value)
	case req.Value != nil && event == "change":
		prop := req.Property
		if prop == "" {
			prop = "value"
		}
		handled = s.doc.Change(n, prop, req.Value)
	default:
		handled = s.doc.Dispatch(n, event)
	}

	resp := EventResponse{Handled: handled, Ops: s.doc.Journal()}
	s.publish(resp.Ops, fmt.Sprintf("%s on %d", event, id))
	return resp, true
}

// StepRequest is the body of POST /steps.
type StepRequest struct {
	Step string `json:"step"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	if s.apply == nil {
		http.Error(w, "steps are not supported by this app", http.StatusNotImplemented)
		return
	}
	var body StepRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E052").Wrap(err))
		return
	}

	ops, err := s.Apply(body.Step)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.FromError(err, "E031"))
		return
	}
	writeJSON(w, http.StatusOK, EventResponse{Ops: ops})
}

// Apply runs a state step and broadcasts the resulting mutations.
func (s *Server) Apply(step string) ([]memdom.Op, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.apply == nil {
		return nil, fmt.Errorf("steps are not supported by this app")
	}
	s.doc.ResetJournal()
	if err := s.apply(step); err != nil {
		return nil, err
	}
	ops := s.doc.Journal()
	s.publish(ops, "step "+step)
	return ops, nil
}

// publish must be called with s.mu held.
func (s *Server) publish(ops []memdom.Op, cause string) {
	if len(ops) == 0 {
		return
	}
	s.hub.Broadcast(Message{
		Type:  MessagePatch,
		Ops:   ops,
		HTML:  memdom.AnnotatedInnerHTML(s.root, NodeAttr),
		Cause: cause,
	})
}

// Close unmounts the tree and disconnects clients.
func (s *Server) Close() {
	s.hub.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Unmount()
}

// ListenAndServe serves the preview on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview: listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.New("E051").
				WithDetail(fmt.Sprintf("Listening on %s failed.", addr)).
				Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.EmberError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, err.FormatJSON())
}
