package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/pkg/log"
)

// Deps are the collaborators behind the HTTP surface. Completer serves
// /api/chat; Sessions and Router serve the web chat. Either side may be nil.
type Deps struct {
	Completer core.Completer
	Sessions  *chat.Sessions
	Router    core.CmdRouter
	Gatherer  prometheus.Gatherer
}

type Server struct {
	cfg     *config.ServerConfig
	deps    Deps
	handler http.Handler
	http    *http.Server
}

func NewServer(cfg *config.ServerConfig, deps Deps) *Server {
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		cfg:  cfg,
		deps: deps,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))

	if s.deps.Completer != nil {
		r.Route("/api", func(api chi.Router) {
			api.Post("/chat", s.handleChat)
		})
	}
	if s.deps.Sessions != nil {
		r.Get("/ws/chat", s.handleWebSocket)
	}
	return r
}

func (s *Server) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	s.http = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	logger.Info().Str("addr", s.cfg.Addr).Msg("relay server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	// ctx is already cancelled when services shut down, so bound the drain separately.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(sctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": core.AppVersion,
	})
}
