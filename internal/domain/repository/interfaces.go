package repository

import (
	"context"
	"time"

	"OptionsPull/internal/domain/models"
)

// MarketData is the remote historical data provider.
type MarketData interface {
	FetchOptionsDay(ctx context.Context, ticker string, date time.Time) (*models.OptionsDay, error)
	FetchDailyPrices(ctx context.Context, ticker string) (models.PriceSeries, error)
}

type Metrics interface {
	RecordRequest(endpoint string)
	RecordSkippedResponse(endpoint, reason string)
	RecordInformational(endpoint string)
	RecordRecords(n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
