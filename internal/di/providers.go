package di

import (
	"fmt"

	drepo "OptionsPull/internal/domain/repository"
	"OptionsPull/internal/handler/api"
	"OptionsPull/internal/service/alphavantage"
	"OptionsPull/internal/usecase"
	"OptionsPull/pkg/config"
	xhttp "OptionsPull/pkg/http"
	"OptionsPull/pkg/http/middleware"
	xlogger "OptionsPull/pkg/logger"
	"OptionsPull/pkg/metrics"
	"OptionsPull/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(xlogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry scraped at the metrics endpoint.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) drepo.Metrics {
	return metrics.NewWithRegistry(reg)
}

// ProvideHTTPMetrics creates per-route request collectors.
func ProvideHTTPMetrics(reg *prometheus.Registry) *middleware.HTTPMetrics {
	return middleware.NewHTTPMetrics(reg)
}

// ProvideHTTPClient creates the outbound client used for the provider.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.AlphaVantage.Timeout),
		xhttp.WithRedactedQuery("apikey"),
	)
}

// ProvideMarketData creates the Alpha Vantage client.
func ProvideMarketData(cfg *config.Config, client *xhttp.Client, m drepo.Metrics, l *xlogger.Logger) drepo.MarketData {
	return alphavantage.New(cfg.AlphaVantage.APIKey, cfg.AlphaVantage.BaseURL, client, m, l)
}

// ProvideOptionsFetcher creates the per-day options fetch loop.
func ProvideOptionsFetcher(cfg *config.Config, source drepo.MarketData, m drepo.Metrics, l *xlogger.Logger) *usecase.OptionsFetcher {
	f := usecase.NewOptionsFetcher(source, m, l, cfg.AlphaVantage.Concurrency)
	f.SetMaxWeekdays(cfg.AlphaVantage.MaxWeekdays)
	return f
}

// ProvideOptionsWrangler creates the fetch-and-merge orchestrator.
func ProvideOptionsWrangler(fetcher *usecase.OptionsFetcher, source drepo.MarketData, m drepo.Metrics, l *xlogger.Logger) *usecase.OptionsWrangler {
	return usecase.NewOptionsWrangler(fetcher, source, m, l)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(l *xlogger.Logger, wrangler *usecase.OptionsWrangler) xhttp.Handler {
	return api.NewOptionsEchoHandler(l, wrangler)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *xlogger.Logger, reg *prometheus.Registry, hm *middleware.HTTPMetrics) *xhttp.Server {
	return xhttp.NewServer(h, l,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsEndpoint(cfg.Metrics.Enabled, cfg.Metrics.Path, reg),
		xhttp.WithHTTPMetrics(hm, 0),
	)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, l *xlogger.Logger) *server.App {
	return server.New(cfg, srv, l)
}
