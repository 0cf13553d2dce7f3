// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-platform/internal/config"
	"github.com/your-org/ecommerce-platform/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	log         *logrus.Logger
	db          *gorm.DB
	redisClient *redis.Client
	httpServer  *http.Server
}

// NewServer creates a new HTTP server instance. redisClient may be nil, in
// which case requests are not rate limited.
func NewServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config:      cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// DB returns the connection pool handed to the server
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Handler builds the gin engine with the middleware chain. No routes are
// registered, every path answers 404.
func (s *Server) Handler() http.Handler {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(s.log))

	if s.redisClient != nil {
		engine.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.redisClient, s.log))
	}

	engine.Use(middleware.JSONBody(s.config.Server.JSONBodyLimit))

	return engine
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.log.WithFields(logrus.Fields{
		"port":        s.config.Server.Port,
		"environment": s.config.App.Environment,
	}).Info("🚀 HTTP Server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("✅ HTTP server stopped gracefully")
	return nil
}
