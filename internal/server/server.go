// Package server implements the proxy that hides the upstream API
// credential from chat clients.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tmaia/bugreport/internal/config"
)

// Server provides the HTTP endpoints of the proxy. It is stateless:
// each request owns nothing beyond its own lifetime, so concurrent
// requests never interact.
type Server struct {
	echo       *echo.Echo
	logger     *zap.Logger
	config     *config.ServerConfig
	httpClient *http.Client
}

// upstreamTimeout bounds each forwarded request
const upstreamTimeout = 60 * time.Second

// New creates the proxy server
func New(cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:       e,
		logger:     logger,
		config:     cfg,
		httpClient: &http.Client{Timeout: upstreamTimeout},
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.POST("/api/chat", s.handleChat)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// credential returns the upstream API key. Read per request so key
// rotation does not need a restart; never logged, never echoed back.
func (s *Server) credential() string {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key
	}
	return s.config.OpenRouterKey
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting proxy server",
		zap.String("addr", addr),
		zap.Bool("credential_configured", s.credential() != ""),
	)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down proxy server")
	return s.echo.Shutdown(ctx)
}
