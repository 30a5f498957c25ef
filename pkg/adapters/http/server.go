// Package http exposes the session manager over a JSON API with
// server-sent event streams.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/session"
)

// Server serves the API for one session manager.
type Server struct {
	Manager *session.Manager
	Streams *StreamManager

	base     context.Context
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

type Option func(*Server)

// WithStreams sets the stream manager whose hooks the manager was built with.
// Without it /events only emits the initial ping.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics serves g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithBaseContext sets the context that sessions started with "play" run
// under. Request contexts end with the request, so they cannot be used.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Server) {
		s.base = ctx
	}
}

// NewHandler creates the HTTP handler for mgr.
func NewHandler(mgr *session.Manager, opts ...Option) (http.Handler, error) {
	s := &Server{
		Manager: mgr,
		base:    context.Background(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	s.logger = s.logger.With("component", "http")

	doc, err := GetSpec()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(RawSpec())
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo(doc.Info.Version))
		r.Get("/algorithms", s.ListAlgorithms)
		r.Get("/algorithms/{id}", s.GetAlgorithm)
		r.Get("/sessions", s.ListSessions)
		r.Post("/sessions", s.CreateSession)
		r.Get("/sessions/{id}", s.GetSession)
		r.Delete("/sessions/{id}", s.DeleteSession)
		r.Post("/sessions/{id}/control", s.ControlSession)
		r.Post("/sessions/{id}/tick", s.TickSession)
		r.Get("/sessions/{id}/events", s.SubscribeEvents)
		r.Get("/results", s.ListResults)
	})
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(apiVersion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"app":         "stepwise-http",
			"version":     stepwise.Version,
			"api_version": apiVersion,
		})
	}
}

// ListAlgorithms handles GET /algorithms.
func (s *Server) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Manager.Catalogue().List())
}

// GetAlgorithm handles GET /algorithms/{id}.
func (s *Server) GetAlgorithm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	algo, err := domain.ParseAlgorithm(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entry, err := s.Manager.Catalogue().Lookup(algo)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := s.Manager.List()
	out := make([]session.Status, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.Status())
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body session.Request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	algorithms, data, params, err := body.Resolve()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess, err := s.Manager.Create(r.Context(), algorithms, data, params)
	if errors.Is(err, domain.ErrUnknownAlgorithm) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("session created", "session_id", sess.ID(), "algorithms", algorithms)
	writeJSON(w, http.StatusCreated, sess.Status())
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	sess, err := s.Manager.Get(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Status())
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.Manager.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ControlSession handles POST /sessions/{id}/control.
func (s *Server) ControlSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var body ControlRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var err error
	if body.Action == "play" {
		err = s.Manager.Play(s.base, id)
	} else {
		err = s.Manager.Control(r.Context(), id, body.Action)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.GetSession(w, r)
}

// ControlRequest is the body of POST /sessions/{id}/control.
type ControlRequest struct {
	Action string `json:"action"`
}

// TickResponse is the body of POST /sessions/{id}/tick.
type TickResponse struct {
	Frames  []scheduler.Frame `json:"frames"`
	Session session.Status    `json:"session"`
}

// TickSession handles POST /sessions/{id}/tick.
func (s *Server) TickSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	frames, err := s.Manager.Tick(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sess, err := s.Manager.Get(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if frames == nil {
		frames = []scheduler.Frame{}
	}
	writeJSON(w, http.StatusOK, TickResponse{Frames: frames, Session: sess.Status()})
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if _, err := s.Manager.Get(id); err != nil {
		s.fail(w, r, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Debug("sse subscribed", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("sse client disconnected", "session_id", id)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, ev.Data)
			flusher.Flush()
		}
	}
}

// ListResults handles GET /results.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.Manager.Results(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if results == nil {
		results = []domain.RunSummary{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter id: %w", err))
		return "", false
	}
	return id, true
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrResultNotFound),
		errors.Is(err, domain.ErrUnknownAlgorithm):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownAction),
		errors.Is(err, domain.ErrNoDataset),
		errors.Is(err, domain.ErrDatasetKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
