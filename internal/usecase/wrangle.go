package usecase

import (
	"time"

	"OptionsPull/internal/domain/models"
	xutil "OptionsPull/pkg/util"

	"github.com/guregu/null/v6"
)

// OptionIDSeparator joins symbol, strike and expiration into option_id.
const OptionIDSeparator = "_"

// ProcessData enriches every raw record with the underlying close and the
// derived columns. Output has the same length and order as raw.
func ProcessData(raw []models.RawOptionQuote, prices models.PriceSeries) []models.OptionQuote {
	out := make([]models.OptionQuote, 0, len(raw))
	for _, rec := range raw {
		out = append(out, enrich(rec, prices))
	}
	return out
}

func enrich(rec models.RawOptionQuote, prices models.PriceSeries) models.OptionQuote {
	q := models.OptionQuote{
		ContractID:        rec.ContractID.String(),
		Symbol:            rec.Symbol.String(),
		Type:              rec.Type.String(),
		Expiration:        rec.Expiration.String(),
		Strike:            numeric(rec.Strike),
		Last:              numeric(rec.Last),
		Mark:              numeric(rec.Mark),
		Bid:               numeric(rec.Bid),
		BidSize:           numeric(rec.BidSize),
		Ask:               numeric(rec.Ask),
		AskSize:           numeric(rec.AskSize),
		Volume:            numeric(rec.Volume),
		OpenInterest:      numeric(rec.OpenInterest),
		ImpliedVolatility: numeric(rec.ImpliedVolatility),
		Delta:             numeric(rec.Delta),
		Gamma:             numeric(rec.Gamma),
		Theta:             numeric(rec.Theta),
		Vega:              numeric(rec.Vega),
		Rho:               numeric(rec.Rho),
	}
	q.OptionID = rec.Symbol.String() + OptionIDSeparator + rec.Strike.String() + OptionIDSeparator + rec.Expiration.String()
	q.MeanPrice = meanPrice(q.Bid, q.Ask)

	obs, obsErr := xutil.ParseDate(rec.Date.String())
	if obsErr == nil {
		q.Date = obs
		if obs.Weekday() == time.Monday {
			q.SelectionDate = 1
		}
		if c, ok := prices.Close(obs); ok {
			q.StockPriceClose = null.FloatFrom(c)
		}
	}

	if exp, err := xutil.ParseDate(rec.Expiration.String()); err == nil {
		q.OptionExpiration = &exp
		if obsErr == nil {
			q.TTM = null.IntFrom(int64(xutil.DaysBetween(obs, exp)))
		}
	}
	return q
}

// numeric coerces an upstream value; anything unparseable becomes null.
func numeric(s models.FlexString) null.Float {
	v, ok := xutil.ParseFloat(s.String())
	return null.NewFloat(v, ok)
}

// meanPrice is (bid+ask)/2; null when either side is null.
func meanPrice(bid, ask null.Float) null.Float {
	if !bid.Valid || !ask.Valid {
		return null.Float{}
	}
	return null.FloatFrom((bid.Float64 + ask.Float64) / 2)
}
