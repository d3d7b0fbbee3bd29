package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"OptionsPull/pkg/config"
	xhttp "OptionsPull/pkg/http"
	applogger "OptionsPull/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	logger     *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, httpServer *xhttp.Server, logger *applogger.Logger) *App {
	return &App{
		cfg:        cfg,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and shuts it down once ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("optionspull started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Int("concurrency", a.cfg.AlphaVantage.Concurrency),
		applogger.Bool("metrics", a.cfg.Metrics.Enabled),
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
