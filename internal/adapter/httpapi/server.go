// Package httpapi serves the debate service over HTTP and WebSocket.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"debate-bot/internal/infra/config"
	"debate-bot/internal/infra/metrics"
	"debate-bot/internal/infra/middleware"
	"debate-bot/internal/usecase"
)

// ChatService is the slice of usecase.ChatService the API needs.
type ChatService interface {
	Chat(ctx context.Context, req usecase.ChatRequest) (*usecase.ChatResponse, error)
	Conversation(ctx context.Context, id string) (*usecase.ConversationView, error)
	Delete(ctx context.Context, id string) (bool, error)
	Personalities() []usecase.PersonalityInfo
	Health(ctx context.Context) usecase.HealthReport
}

// Options carries the optional collaborators of the server.
type Options struct {
	Metrics     *metrics.Metrics // nil disables /metrics and request metrics
	MetricsPath string
	Version     string
	Environment string
}

// Server is the HTTP transport.
type Server struct {
	cfg    config.ServerConfig
	opts   Options
	chat   ChatService
	logger *slog.Logger

	server    *http.Server
	boundAddr string
	cancel    context.CancelFunc
	started   time.Time
}

// New creates an HTTP server. Call Start to listen.
func New(cfg config.ServerConfig, chat ChatService, logger *slog.Logger, opts Options) *Server {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	return &Server{
		cfg:     cfg,
		opts:    opts,
		chat:    chat,
		logger:  logger.With("component", "http"),
		started: time.Now(),
	}
}

// Handler builds the routed handler. ctx bounds the rate limiter's cleanup
// goroutine.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(s.logger))
	r.Use(middleware.Logging(s.logger))
	if s.opts.Metrics != nil {
		r.Use(s.opts.Metrics.Middleware)
	}
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(s.cfg.CORSOrigins))
	if s.cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(ctx, middleware.RateLimitConfig{
			RequestsPerSecond: s.cfg.RateLimit.RequestsPerSecond,
			Burst:             s.cfg.RateLimit.Burst,
		}))
	}
	if s.cfg.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(s.cfg.MaxBodyBytes))
	}

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/chat", s.handleChat)
	r.Get("/personalities", s.handlePersonalities)
	r.Get("/conversations/{id}", s.handleGetConversation)
	r.Delete("/conversations/{id}", s.handleDeleteConversation)
	if s.cfg.WebSocket {
		r.Get("/ws", s.handleWebSocket)
	}
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, s.opts.MetricsPath, s.opts.Metrics.Handler())
	}
	return r
}

// Start listens on the configured address and serves in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	s.server = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.cancel()
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.boundAddr = ln.Addr().String()

	go func() {
		s.logger.Info("http server started", "addr", s.boundAddr)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// BoundAddr returns the address the server bound to. Only valid after Start.
func (s *Server) BoundAddr() string { return s.boundAddr }
