// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package server exposes a circuit over HTTP.
//
// All requests are serialized: a circuit is never accessed by more than one
// request at a time.
//
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/logging"
	"github.com/db47h/logicsim/internal/render"
	"github.com/db47h/logicsim/internal/store"
	"github.com/db47h/logicsim/netlist"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"
)

// Server serves one circuit.
//
type Server struct {
	mu       sync.Mutex
	c        *netlist.Circuit
	store    store.Store
	gatherer prometheus.Gatherer
	log      *slog.Logger
}

// An Option configures a Server.
//
type Option func(*Server)

// WithStore persists input levels to st after every input change.
//
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithGatherer serves the metrics gathered by g on /metrics.
//
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the server logger.
//
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Server for c.
//
func New(c *netlist.Circuit, opts ...Option) *Server {
	s := &Server{c: c, log: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore applies the levels saved in the store, if any. Saved levels for
// inputs the circuit does not have are ignored.
//
func (s *Server) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	lv, err := s.store.Load(ctx, s.c.Name)
	if err != nil {
		if errors.Cause(err) == store.ErrNotFound {
			return nil
		}
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	levels := make(map[string]logicsim.Signal, len(lv))
	for name, v := range lv {
		if _, err := s.c.Input(name); err != nil {
			s.log.Warn("ignoring stored level", "circuit", s.c.Name, "input", name, "error", err)
			continue
		}
		levels[name] = v
	}
	st, err := s.c.Apply(levels)
	if err != nil {
		return errors.Wrap(err, "failed to restore levels")
	}
	s.log.Info("restored levels", "circuit", s.c.Name, "inputs", len(levels), "converged", st.Converged)
	return nil
}

// Handler returns the HTTP handler of s.
//
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/snapshot", s.snapshot)
	r.Get("/graph", s.graph)
	r.Get("/netlist", s.netlist)
	r.Put("/inputs/{name}", s.setInput)
	r.Post("/inputs/{name}/toggle", s.toggleInput)
	r.Post("/connect", s.link(true))
	r.Post("/disconnect", s.link(false))
	r.Post("/propagate", s.propagate)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.c.Snapshot()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.c.Snapshot()
	s.mu.Unlock()

	var out, ctype string
	switch f := r.URL.Query().Get("format"); f {
	case "", "mermaid":
		out, ctype = render.Mermaid(snap), "text/plain; charset=utf-8"
	case "dot":
		out, ctype = render.DOT(snap), "text/vnd.graphviz; charset=utf-8"
	default:
		s.writeError(w, http.StatusBadRequest, errors.Errorf("unknown graph format %q", f))
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Write([]byte(out))
}

func (s *Server) netlist(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f := s.c.Dump()
	s.mu.Unlock()
	data, err := yaml.Marshal(f)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

type levelRequest struct {
	Value *logicsim.Signal `json:"value"`
}

func (s *Server) setInput(w http.ResponseWriter, r *http.Request) {
	var body levelRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return
	}
	if body.Value == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("missing value"))
		return
	}
	s.updateInput(w, r, func(in *logicsim.InputSource) error {
		return s.c.Set(in, *body.Value)
	})
}

func (s *Server) toggleInput(w http.ResponseWriter, r *http.Request) {
	s.updateInput(w, r, s.c.Toggle)
}

func (s *Server) updateInput(w http.ResponseWriter, r *http.Request, f func(*logicsim.InputSource) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, err := s.c.Input(chi.URLParam(r, "name"))
	if err == nil {
		err = f(in)
	}
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.save(r.Context())
	s.writeJSON(w, http.StatusOK, s.c.Snapshot())
}

type linkRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) link(connect bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body linkRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		from, err := s.c.Lookup(body.From)
		if err != nil {
			s.writeError(w, statusOf(err), err)
			return
		}
		to, err := s.c.Lookup(body.To)
		if err != nil {
			s.writeError(w, statusOf(err), err)
			return
		}
		if connect {
			err = s.c.Connect(from, to)
		} else {
			err = s.c.Disconnect(from, to)
		}
		if err != nil {
			s.writeError(w, statusOf(err), err)
			return
		}
		s.writeJSON(w, http.StatusOK, s.c.Snapshot())
	}
}

func (s *Server) propagate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.c.Propagate()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, st)
}

// save persists the current levels. Failures are logged, the change itself
// is not rolled back.
//
func (s *Server) save(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.c.Name, store.Levels(s.c.Levels())); err != nil {
		s.log.Error("failed to save levels", "circuit", s.c.Name, "error", err)
	}
}

func statusOf(err error) int {
	switch errors.Cause(err) {
	case netlist.ErrUnknownNode:
		return http.StatusNotFound
	case logicsim.ErrGateFull:
		return http.StatusConflict
	case netlist.ErrNotInput, logicsim.ErrInvalidSignal, logicsim.ErrCannotDrive,
		logicsim.ErrCannotReceive, logicsim.ErrNilNode, logicsim.ErrNotRegistered:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	s.log.Debug("request failed", "status", code, "error", err)
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

// ListenAndServe serves s on addr until ctx is canceled, then shuts down
// gracefully.
//
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr, "circuit", s.c.Name)

	select {
	case err := <-errc:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "shutdown failed")
	}
	s.log.Info("server stopped")
	return nil
}
