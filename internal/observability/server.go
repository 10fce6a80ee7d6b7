package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/butler/pkg/log"
)

// Server exposes /metrics and /healthz. It implements srv.Service.
type Server struct {
	http   *http.Server
	active func() int
}

func NewServer(addr string, metrics *Metrics, active func() int) *Server {
	s := &Server{active: active}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router(metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) router(metrics *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{"status": "ok"}
	if s.active != nil {
		body["active_sessions"] = s.active()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) Start(ctx context.Context) error {
	s.http.BaseContext = func(net.Listener) context.Context { return ctx }
	log.FromCtx(ctx).Info().Str("addr", s.http.Addr).Msg("metrics server listening")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
