// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/infrastructure/database"
	"github.com/luxfakia/storefront/internal/interfaces/http/handlers"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/luxfakia/storefront/internal/interfaces/http/routes"
	"github.com/luxfakia/storefront/internal/pkg/session"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	db          *database.DB
	redisClient *redis.Client
	sessions    *session.Manager
	logger      *logrus.Logger
	startedAt   time.Time
}

// NewServer builds the engine and registers every route. redisClient may be
// nil, in which case sessions and rate limit counters stay in process.
func NewServer(cfg *config.Config, db *database.DB, redisClient *redis.Client, logger *logrus.Logger) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		config:      cfg,
		gin:         gin.New(),
		db:          db,
		redisClient: redisClient,
		logger:      logger,
		startedAt:   time.Now(),
	}

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	var store session.Store
	var limiter middleware.Counter
	if redisClient != nil {
		store = session.NewRedisStore(redisClient)
		limiter = middleware.NewRedisCounter(redisClient)
	} else {
		store = session.NewMemoryStore()
		limiter = middleware.NewMemoryCounter()
	}
	s.sessions = session.NewManager(store, cfg)

	renderer, err := s.renderer()
	if err != nil {
		return nil, err
	}

	s.setupMiddleware()

	// Probes stay outside the session middleware so they answer during a store outage
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	routes.SetupRoutes(s.gin, routes.Deps{
		DB:       db.GetDB(),
		Config:   cfg,
		Sessions: s.sessions,
		Limiter:  limiter,
		Renderer: renderer,
		Logger:   logger,
	})

	s.gin.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"view": "404", "data": gin.H{"path": c.Request.URL.Path}})
	})

	return s, nil
}

// Handler exposes the engine, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":        s.config.Server.Port,
		"environment": s.config.App.Environment,
		"database":    s.db.Driver(),
		"redis":       s.redisClient != nil,
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) setupMiddleware() {
	s.gin.Use(middleware.Recovery(s.logger))
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(middleware.SecurityHeaders())
	// Uploads plus the rest of the form
	s.gin.Use(middleware.RequestSizeLimit(s.config.Upload.MaxSize + 1<<20))
}

func (s *Server) renderer() (handlers.Renderer, error) {
	dir := s.config.App.TemplatesDir
	if dir == "" {
		return handlers.JSONRenderer{}, nil
	}
	if err := handlers.LoadTemplates(s.gin, dir); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return handlers.HTMLRenderer{}, nil
}

// healthCheck always answers 200 and reports each dependency
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "sessions": "ok"}
	status := "healthy"
	if err := s.db.Health(ctx); err != nil {
		checks["database"] = err.Error()
		status = "degraded"
	}
	if err := s.sessions.Store().Ping(ctx); err != nil {
		checks["sessions"] = err.Error()
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      status,
		"checks":      checks,
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck answers 503 until the database responds
func (s *Server) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.db.Health(ctx); err != nil {
		s.logger.WithError(err).Warn("readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}
