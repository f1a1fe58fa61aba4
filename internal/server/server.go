package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"

	"github.com/vitormoschetta/go-bedrock-chat/internal/config"
	"github.com/vitormoschetta/go-bedrock-chat/internal/metrics"
	"github.com/vitormoschetta/go-bedrock-chat/internal/service"
)

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	Config    config.Config
	Generator service.Generator
	Router    http.Handler
	logger    *slog.Logger
}

// NewServer cria uma nova instância do servidor
func NewServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	for _, name := range cfg.AWS.Missing() {
		logger.Warn("environment variable is not set", "name", name)
	}

	client, err := service.NewBedrockClient(ctx, cfg.AWS, NewHTTPClient(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create bedrock client: %w", err)
	}

	logger.Info("bedrock agent runtime client initialized",
		"region", cfg.AWS.Region, "knowledge_base_id", cfg.AWS.KnowledgeBaseID)

	return &Server{
		Config:    cfg,
		Generator: service.NewBedrockGenerator(client, cfg.AWS, logger),
		logger:    logger,
	}, nil
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(
	handleRoot func(http.ResponseWriter, *http.Request),
	handleHealth func(http.ResponseWriter, *http.Request),
	handleChat func(http.ResponseWriter, *http.Request),
) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&slogFormatter{logger: s.logger}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(instrument)

	// Rotas
	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Post("/chat", handleChat)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.Router = handlers.CORS(
		handlers.AllowedOrigins(s.Config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
}

// instrument registra contagem e duração por rota
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveHTTPRequest(r.Method, path, strconv.Itoa(status), time.Since(start))
	})
}

// Start inicia o servidor HTTP e bloqueia até o contexto ser cancelado
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.Config.Server.Addr(),
		Handler:      s.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🚀 HTTP server started", "addr", httpServer.Addr)
		s.logger.Info("endpoints", "chat", "POST /chat", "health", "GET /health", "metrics", "GET /metrics")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("✅ Server stopped gracefully")
	return nil
}
