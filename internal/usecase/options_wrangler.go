package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"OptionsPull/internal/domain/models"
	drepo "OptionsPull/internal/domain/repository"
	xlogger "OptionsPull/pkg/logger"
)

// WrangledOptions is the enriched options table plus how it was gathered.
type WrangledOptions struct {
	Symbol    string               `json:"symbol"`
	Rows      []models.OptionQuote `json:"rows"`
	Weekdays  int                  `json:"weekdays"`
	Processed int                  `json:"processed_days"`
	Skipped   int                  `json:"skipped_days"`
	Truncated bool                 `json:"truncated"`
	Notice    string               `json:"notice,omitempty"`
}

// OptionsWrangler runs fetch options -> fetch prices -> merge, in that order.
type OptionsWrangler struct {
	fetcher *OptionsFetcher
	source  drepo.MarketData
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func NewOptionsWrangler(fetcher *OptionsFetcher, source drepo.MarketData, metrics drepo.Metrics, logger *xlogger.Logger) *OptionsWrangler {
	return &OptionsWrangler{fetcher: fetcher, source: source, metrics: metrics, logger: logger}
}

// GetWrangledOptionsData returns enriched options quotes for ticker between
// start and end (ISO dates, inclusive). Partial data is returned, flagged
// Truncated, when the provider stopped the walk with a notice.
func (w *OptionsWrangler) GetWrangledOptionsData(ctx context.Context, ticker, start, end, optionType string) (*WrangledOptions, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", models.ErrInvalidRequest)
	}
	begin := time.Now()

	fetched, err := w.fetcher.FetchOptionsData(ctx, ticker, start, end, optionType)
	if err != nil {
		return nil, fmt.Errorf("fetch options: %w", err)
	}

	prices, err := w.FetchStockPrices(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch stock prices: %w", err)
	}

	rows := ProcessData(fetched.Records, prices)
	w.metrics.RecordLatency("wrangle_options", time.Since(begin).Seconds())
	w.logger.Info("options wrangled",
		xlogger.String("symbol", ticker),
		xlogger.String("start", start),
		xlogger.String("end", end),
		xlogger.Int("rows", len(rows)),
		xlogger.Bool("truncated", fetched.Truncated),
		xlogger.Duration("duration_ms", time.Since(begin)),
	)

	return &WrangledOptions{
		Symbol:    ticker,
		Rows:      rows,
		Weekdays:  fetched.Weekdays,
		Processed: fetched.Processed,
		Skipped:   fetched.Skipped,
		Truncated: fetched.Truncated,
		Notice:    fetched.Notice,
	}, nil
}

// FetchStockPrices returns the full daily close series of ticker, ascending.
func (w *OptionsWrangler) FetchStockPrices(ctx context.Context, ticker string) (models.PriceSeries, error) {
	begin := time.Now()
	prices, err := w.source.FetchDailyPrices(ctx, ticker)
	w.metrics.RecordLatency("fetch_prices", time.Since(begin).Seconds())
	if err != nil {
		return nil, err
	}
	w.logger.Debug("stock prices fetched", xlogger.String("symbol", ticker), xlogger.Int("days", len(prices)))
	return prices, nil
}
