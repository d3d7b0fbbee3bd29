package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"OptionsPull/internal/domain/models"
	xutil "OptionsPull/pkg/util"
)

// fakeSource serves canned per-date responses and records what was asked.
type fakeSource struct {
	mu        sync.Mutex
	days      map[string]*models.OptionsDay
	errs      map[string]error
	prices    models.PriceSeries
	pricesErr error
	requested []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{days: map[string]*models.OptionsDay{}, errs: map[string]error{}}
}

func (f *fakeSource) success(date string, recs ...models.RawOptionQuote) *fakeSource {
	d, _ := xutil.ParseDate(date)
	f.days[date] = &models.OptionsDay{Date: d, Status: models.DaySuccess, Records: recs}
	return f
}

func (f *fakeSource) informational(date, msg string) *fakeSource {
	d, _ := xutil.ParseDate(date)
	f.days[date] = &models.OptionsDay{Date: d, Status: models.DayInformational, Message: msg}
	return f
}

func (f *fakeSource) unrecognized(date string) *fakeSource {
	d, _ := xutil.ParseDate(date)
	f.days[date] = &models.OptionsDay{Date: d, Status: models.DayUnrecognized, Reason: "error_message", Message: "error message: bad"}
	return f
}

func (f *fakeSource) FetchOptionsDay(_ context.Context, _ string, date time.Time) (*models.OptionsDay, error) {
	key := xutil.FormatDate(date)
	f.mu.Lock()
	f.requested = append(f.requested, key)
	f.mu.Unlock()

	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if d, ok := f.days[key]; ok {
		return d, nil
	}
	return &models.OptionsDay{Date: date, Status: models.DaySuccess}, nil
}

func (f *fakeSource) FetchDailyPrices(context.Context, string) (models.PriceSeries, error) {
	if f.pricesErr != nil {
		return nil, f.pricesErr
	}
	return f.prices, nil
}

func (f *fakeSource) wasRequested(date string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requested {
		if r == date {
			return true
		}
	}
	return false
}

var errNetwork = errors.New("connection reset by peer")

func quote(symbol, strike, expiration, typ, bid, ask string) models.RawOptionQuote {
	return models.RawOptionQuote{
		ContractID: models.FlexString(symbol + expiration + typ + strike),
		Symbol:     models.FlexString(symbol),
		Strike:     models.FlexString(strike),
		Expiration: models.FlexString(expiration),
		Type:       models.FlexString(typ),
		Bid:        models.FlexString(bid),
		Ask:        models.FlexString(ask),
	}
}
