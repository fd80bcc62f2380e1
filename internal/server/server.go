package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AndreJorgeSenaiBA/Repox/config"
	"github.com/AndreJorgeSenaiBA/Repox/internal/telemetry"
)

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	handlers   *Handlers
	limiter    *RateLimiter
	validator  gin.HandlerFunc
	log        *slog.Logger
	httpServer *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, catalog Cataloger, log *slog.Logger) (*Server, error) {
	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	validator, err := NewValidator(openAPISpec, log)
	if err != nil {
		return nil, fmt.Errorf("openapi validation middleware: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		router:    gin.New(),
		handlers:  NewHandlers(cfg, catalog, log),
		limiter:   NewRateLimiter(cfg.RateLimitRPS),
		validator: validator,
		log:       log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(RecoveryMiddleware(s.log))
	s.router.Use(LoggerMiddleware(s.log))
	s.router.Use(otelgin.Middleware(telemetry.ServiceName))
	s.router.Use(CORSMiddleware(s.cfg.AllowedOrigins))
	s.router.Use(RateLimitMiddleware(s.limiter))
	s.router.Use(s.validator)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/get-files", s.handlers.ListFiles)
		api.GET("/stats", s.handlers.GetStats)
	}
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		s.log.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.log.Error("server forced to shutdown", "error", err)
		}
	}()

	s.log.Info("starting gallery service", "addr", s.cfg.Addr(), "repository", s.cfg.Repository())

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}

// Router returns the Gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
