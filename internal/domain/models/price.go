package models

import (
	"sort"
	"time"
)

// StockPrice is one daily close of the underlying.
type StockPrice struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a daily close series sorted ascending by date.
type PriceSeries []StockPrice

// NewPriceSeries sorts prices ascending by date.
func NewPriceSeries(prices []StockPrice) PriceSeries {
	s := make(PriceSeries, len(prices))
	copy(s, prices)
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	return s
}

// Close returns the close on date, or the latest close before it.
// ok is false when the series has nothing on or before date.
func (s PriceSeries) Close(date time.Time) (float64, bool) {
	// first index strictly after date
	i := sort.Search(len(s), func(i int) bool { return s[i].Date.After(date) })
	if i == 0 {
		return 0, false
	}
	return s[i-1].Close, true
}
