package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/userhub/userhub/internal/metrics"
	userhttp "github.com/userhub/userhub/internal/user/http"
)

// Config holds the settings of the public API server.
type Config struct {
	Host              string
	Port              int
	CORSEnabled       bool
	CORSAllowOrigins  string
	LoginRateLimitRPS float64
	LoginRateBurst    int
}

// Server is the public API server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer builds the API server: request id and correlation middleware,
// structured request logging, panic recovery, optional CORS and metrics,
// the user routes, bearer-token authentication on delete and a rate limit
// on login.
func NewServer(
	cfg Config,
	userHandler *userhttp.UserHandler,
	tokens userhttp.TokenParser,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(requestid.New())
	router.Use(CorrelationMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), "userhub"))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/v1")
	{
		v1.POST("/users", userHandler.RegisterHandler)
		v1.GET("/users", userHandler.QueryHandler)
		v1.DELETE("/users/:id",
			userhttp.AuthMiddleware(tokens, logger),
			userHandler.DeleteHandler,
		)
		v1.POST("/login",
			LoginRateLimitMiddleware(cfg.LoginRateLimitRPS, cfg.LoginRateBurst, logger),
			userHandler.LoginHandler,
		)
	}

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting api server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start api server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down api server")
	return s.server.Shutdown(ctx)
}
