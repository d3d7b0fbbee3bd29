package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringAcceptsStringsNumbersAndNull(t *testing.T) {
	var q RawOptionQuote
	err := json.Unmarshal([]byte(`{"strike":"470.00","bid":1.25,"ask":null,"volume":12}`), &q)
	require.NoError(t, err)
	assert.Equal(t, "470.00", q.Strike.String())
	assert.Equal(t, "1.25", q.Bid.String())
	assert.Equal(t, "", q.Ask.String())
	assert.Equal(t, "12", q.Volume.String())
}

func TestPriceSeriesClose(t *testing.T) {
	d := func(s string) time.Time { t, _ := time.Parse("2006-01-02", s); return t }
	s := NewPriceSeries([]StockPrice{
		{Date: d("2024-01-03"), Close: 102},
		{Date: d("2024-01-01"), Close: 100},
	})

	_, ok := s.Close(d("2023-12-31"))
	assert.False(t, ok)

	v, ok := s.Close(d("2024-01-01"))
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)

	v, _ = s.Close(d("2024-01-02"))
	assert.Equal(t, 100.0, v)

	v, _ = s.Close(d("2024-01-09"))
	assert.Equal(t, 102.0, v)
}

func TestResponseShapeErrorUnwraps(t *testing.T) {
	err := &ResponseShapeError{Endpoint: EndpointDailySeries, Reason: "missing", Information: "limit"}
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
	assert.Contains(t, err.Error(), "limit")
}

func TestDayStatusString(t *testing.T) {
	assert.Equal(t, "success", DaySuccess.String())
	assert.Equal(t, "informational", DayInformational.String())
	assert.Equal(t, "unrecognized", DayUnrecognized.String())
}
