package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"OptionsPull/internal/domain/models"
	drepo "OptionsPull/internal/domain/repository"
	xlogger "OptionsPull/pkg/logger"
	xutil "OptionsPull/pkg/util"

	"golang.org/x/sync/errgroup"
)

// FetchResult is the accumulated options table of one fetch call.
type FetchResult struct {
	Records   []models.RawOptionQuote
	Weekdays  int    // weekdays in the requested range
	Processed int    // days whose response was consumed
	Skipped   int    // days with an unrecognised response
	Truncated bool   // stopped early on a provider notice
	Notice    string // the provider notice, when Truncated
}

// OptionsFetcher walks weekdays and collects the options chain of each.
type OptionsFetcher struct {
	source      drepo.MarketData
	metrics     drepo.Metrics
	logger      *xlogger.Logger
	concurrency int
	maxWeekdays int
}

// NewOptionsFetcher creates a fetcher. concurrency <= 1 fetches strictly sequentially.
func NewOptionsFetcher(source drepo.MarketData, metrics drepo.Metrics, logger *xlogger.Logger, concurrency int) *OptionsFetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &OptionsFetcher{source: source, metrics: metrics, logger: logger, concurrency: concurrency}
}

// SetMaxWeekdays rejects ranges spanning more than n weekdays. n <= 0 means no limit.
func (f *OptionsFetcher) SetMaxWeekdays(n int) { f.maxWeekdays = n }

// FetchOptionsData requests one options chain per weekday in [start, end].
// A provider notice ends the walk and returns what was gathered before it.
// Unrecognised responses are skipped. Transport errors abort the call.
// optionType, when set, keeps only records whose type matches exactly.
func (f *OptionsFetcher) FetchOptionsData(ctx context.Context, ticker, start, end, optionType string) (*FetchResult, error) {
	from, to, err := xutil.ParseRange(start, end)
	if err != nil {
		return nil, err
	}
	if f.maxWeekdays > 0 {
		if n := xutil.CountWorkdays(from, to); n > f.maxWeekdays {
			return nil, fmt.Errorf("%w: range %s..%s spans %d weekdays, limit is %d",
				models.ErrInvalidRequest, start, end, n, f.maxWeekdays)
		}
	}
	days := xutil.WorkdaysBetween(from, to)

	begin := time.Now()
	res := &FetchResult{Weekdays: len(days), Records: make([]models.RawOptionQuote, 0)}

	if f.concurrency == 1 || len(days) < 2 {
		err = f.fetchSequential(ctx, ticker, days, res)
	} else {
		err = f.fetchConcurrent(ctx, ticker, days, res)
	}
	f.metrics.RecordLatency("fetch_options", time.Since(begin).Seconds())
	if err != nil {
		return nil, err
	}

	if optionType != "" {
		res.Records = filterByType(res.Records, optionType)
	}

	f.logger.Info("options fetched",
		xlogger.String("symbol", ticker),
		xlogger.Int("weekdays", res.Weekdays),
		xlogger.Int("processed", res.Processed),
		xlogger.Int("skipped", res.Skipped),
		xlogger.Int("records", len(res.Records)),
		xlogger.Bool("truncated", res.Truncated),
	)
	return res, nil
}

func (f *OptionsFetcher) fetchSequential(ctx context.Context, ticker string, days []time.Time, res *FetchResult) error {
	for _, d := range days {
		day, err := f.source.FetchOptionsDay(ctx, ticker, d)
		if err != nil {
			return err
		}
		if stop := f.collect(ticker, day, res); stop {
			return nil
		}
	}
	return nil
}

// fetchConcurrent fans requests out to a bounded pool and then consumes the
// responses in calendar order, so the first notice by date wins.
func (f *OptionsFetcher) fetchConcurrent(ctx context.Context, ticker string, days []time.Time, res *FetchResult) error {
	results := make([]*models.OptionsDay, len(days))
	errs := make([]error, len(days))

	// lowest index that ended the walk; later days are not requested
	var stopAt atomic.Int64
	stopAt.Store(int64(len(days)))
	lower := func(i int) {
		for {
			cur := stopAt.Load()
			if int64(i) >= cur || stopAt.CompareAndSwap(cur, int64(i)) {
				return
			}
		}
	}

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, d := range days {
		if int64(i) > stopAt.Load() {
			break
		}
		i, d := i, d
		g.Go(func() error {
			if int64(i) > stopAt.Load() {
				return nil
			}
			day, err := f.source.FetchOptionsDay(ctx, ticker, d)
			if err != nil {
				errs[i] = err
				lower(i)
				return nil
			}
			results[i] = day
			if day.Status == models.DayInformational {
				lower(i)
			}
			return nil
		})
	}
	_ = g.Wait()

	for i := range days {
		if errs[i] != nil {
			return errs[i]
		}
		if results[i] == nil {
			return nil
		}
		if stop := f.collect(ticker, results[i], res); stop {
			return nil
		}
	}
	return nil
}

// collect folds one day into res and reports whether the walk must stop.
func (f *OptionsFetcher) collect(ticker string, day *models.OptionsDay, res *FetchResult) bool {
	res.Processed++
	switch day.Status {
	case models.DayInformational:
		res.Truncated = true
		res.Notice = day.Message
		f.metrics.RecordInformational(models.EndpointHistoricalOptions)
		f.logger.Warn("provider notice, returning partial options data",
			xlogger.String("symbol", ticker),
			xlogger.Date("date", day.Date),
			xlogger.String("information", day.Message),
		)
		return true
	case models.DaySuccess:
		date := models.FlexString(xutil.FormatDate(day.Date))
		for _, rec := range day.Records {
			rec.Date = date
			res.Records = append(res.Records, rec)
		}
		f.metrics.RecordRecords(len(day.Records))
		f.logger.Debug("options day fetched",
			xlogger.String("symbol", ticker),
			xlogger.Date("date", day.Date),
			xlogger.Int("records", len(day.Records)),
		)
	default:
		res.Skipped++
		f.metrics.RecordSkippedResponse(models.EndpointHistoricalOptions, day.Reason)
		f.logger.Warn("unrecognised options response skipped",
			xlogger.String("symbol", ticker),
			xlogger.Date("date", day.Date),
			xlogger.String("reason", day.Message),
		)
	}
	return false
}

func filterByType(records []models.RawOptionQuote, optionType string) []models.RawOptionQuote {
	out := make([]models.RawOptionQuote, 0, len(records))
	for _, rec := range records {
		if string(rec.Type) == optionType {
			out = append(out, rec)
		}
	}
	return out
}
