package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"OptionsPull/pkg/http/middleware"
	applogger "OptionsPull/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOption configures Server.
type ServerOption func(*ServerConfig)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	MetricsEnabled bool
	MetricsPath    string
	Gatherer       prometheus.Gatherer
	HTTPMetrics    *middleware.HTTPMetrics
	SlowThreshold  time.Duration
}

// Server wraps Echo HTTP server.
type Server struct {
	echo   *echo.Echo
	config *ServerConfig
	logger *applogger.Logger
}

// NewServer creates a new HTTP server with Echo.
func NewServer(handler Handler, l *applogger.Logger, opts ...ServerOption) *Server {
	cfg := &ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MetricsEnabled:  true,
		MetricsPath:     "/metrics",
		Gatherer:        prometheus.DefaultGatherer,
		SlowThreshold:   30 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if l == nil {
		l = applogger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	// Middleware
	e.Use(middleware.Recover(l))
	e.Use(middleware.RequestLogging(l))
	if cfg.HTTPMetrics != nil {
		e.Use(middleware.Metrics(cfg.HTTPMetrics, l, cfg.SlowThreshold))
	}

	// Register routes
	if handler != nil {
		handler.RegisterRoutes(e)
	}

	if cfg.MetricsEnabled {
		e.GET(cfg.MetricsPath, echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	return &Server{
		echo:   e,
		config: cfg,
		logger: l,
	}
}

// Start starts the HTTP server in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	go func() {
		s.logger.Info("http server listening", applogger.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", applogger.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.logger.Info("http server stopped gracefully")
	return nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// ShutdownTimeout returns the configured graceful shutdown window.
func (s *Server) ShutdownTimeout() time.Duration {
	return s.config.ShutdownTimeout
}

// WithHost sets server host.
func WithHost(host string) ServerOption {
	return func(c *ServerConfig) {
		c.Host = host
	}
}

// WithPort sets server port.
func WithPort(port int) ServerOption {
	return func(c *ServerConfig) {
		c.Port = port
	}
}

// WithTimeouts sets read/write timeouts.
func WithTimeouts(read, write, shutdown time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout = read
		c.WriteTimeout = write
		c.ShutdownTimeout = shutdown
	}
}

// WithMetricsEndpoint toggles the scrape endpoint and sets its path and source.
func WithMetricsEndpoint(enabled bool, path string, g prometheus.Gatherer) ServerOption {
	return func(c *ServerConfig) {
		c.MetricsEnabled = enabled
		if path != "" {
			c.MetricsPath = path
		}
		if g != nil {
			c.Gatherer = g
		}
	}
}

// WithHTTPMetrics enables per-route request metrics.
func WithHTTPMetrics(m *middleware.HTTPMetrics, slow time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.HTTPMetrics = m
		if slow > 0 {
			c.SlowThreshold = slow
		}
	}
}
