package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"OptionsPull/internal/domain/models"
	"OptionsPull/internal/usecase"
	xhttp "OptionsPull/pkg/http"
	xlogger "OptionsPull/pkg/logger"
	"OptionsPull/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL, xhttp.NewClient(xhttp.WithTimeout(time.Second)), metrics.Nop{}, xlogger.Nop())
}

var jan2 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func TestFetchOptionsDaySuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "HISTORICAL_OPTIONS", q.Get("function"))
		assert.Equal(t, "2024-01-02", q.Get("date"))
		assert.Equal(t, "SPY", q.Get("symbol"))
		assert.Equal(t, "test-key", q.Get("apikey"))
		_, _ = w.Write([]byte(`{"endpoint":"Historical Options","message":"success","data":[
			{"contractID":"SPY240119P00470000","symbol":"SPY","expiration":"2024-01-19","strike":"470.00","type":"put","bid":"1.10","ask":1.2,"volume":null}
		]}`))
	})

	day, err := c.FetchOptionsDay(context.Background(), "SPY", jan2)
	require.NoError(t, err)
	assert.Equal(t, models.DaySuccess, day.Status)
	require.Len(t, day.Records, 1)
	rec := day.Records[0]
	assert.Equal(t, "470.00", rec.Strike.String())
	assert.Equal(t, "1.2", rec.Ask.String())
	assert.Equal(t, "", rec.Volume.String())
	assert.Equal(t, "put", rec.Type.String())
}

func TestFetchOptionsDayInformational(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Information":"Thank you for using Alpha Vantage! premium endpoint."}`))
	})

	day, err := c.FetchOptionsDay(context.Background(), "SPY", jan2)
	require.NoError(t, err)
	assert.Equal(t, models.DayInformational, day.Status)
	assert.Contains(t, day.Message, "premium endpoint")
}

func TestFetchOptionsDayUnrecognized(t *testing.T) {
	cases := map[string]string{
		`{"Error Message":"Invalid API call."}`: "error message: Invalid API call.",
		`{"message":"failure"}`:                 "message: failure",
		`{}`:                                    "no status marker",
		`{"message":"success"}`:                 "success without data",
	}
	for body, want := range cases {
		body, want := body, want
		t.Run(want, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			day, err := c.FetchOptionsDay(context.Background(), "SPY", jan2)
			require.NoError(t, err)
			assert.Equal(t, models.DayUnrecognized, day.Status)
			assert.Equal(t, want, day.Message)
		})
	}
}

func TestFetchOptionsDayHTTPFailureIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.FetchOptionsDay(context.Background(), "SPY", jan2)
	require.Error(t, err)
	assert.True(t, xhttp.IsStatusError(err))
}

func TestFetchDailyPricesSortedAscending(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "TIME_SERIES_DAILY", q.Get("function"))
		assert.Equal(t, "full", q.Get("outputsize"))
		_, _ = w.Write([]byte(`{"Meta Data":{},"Time Series (Daily)":{
			"2024-01-03":{"1. open":"101","4. close":"102.0"},
			"2024-01-01":{"1. open":"99","4. close":"100"}
		}}`))
	})

	prices, err := c.FetchDailyPrices(context.Background(), "SPY")
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), prices[0].Date)
	assert.Equal(t, 100.0, prices[0].Close)
	assert.Equal(t, 102.0, prices[1].Close)
}

func TestFetchDailyPricesMissingSeriesIsShapeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Information":"rate limit reached"}`))
	})

	_, err := c.FetchDailyPrices(context.Background(), "SPY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnexpectedResponse))

	var shapeErr *models.ResponseShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "rate limit reached", shapeErr.Information)
}

func TestFetchDailyPricesBadCloseIsShapeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Time Series (Daily)":{"2024-01-01":{"4. close":"n/a"}}}`))
	})

	_, err := c.FetchDailyPrices(context.Background(), "SPY")
	assert.ErrorIs(t, err, models.ErrUnexpectedResponse)
}

var nonObjectBodies = map[string]string{
	"array":  `[]`,
	"string": `"oops"`,
	"null":   `null`,
	"html":   `<html><body>Service Unavailable</body></html>`,
	"empty":  ``,
}

func TestFetchOptionsDayNonObjectBodyIsUnrecognized(t *testing.T) {
	for name, body := range nonObjectBodies {
		body := body
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			day, err := c.FetchOptionsDay(context.Background(), "SPY", jan2)
			require.NoError(t, err)
			assert.Equal(t, models.DayUnrecognized, day.Status)
			assert.Equal(t, "not_object", day.Reason)
			assert.Contains(t, day.Message, "not a JSON object")
		})
	}
}

func TestFetchDailyPricesNonObjectBodyIsShapeError(t *testing.T) {
	for name, body := range nonObjectBodies {
		body := body
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.FetchDailyPrices(context.Background(), "SPY")
			var shapeErr *models.ResponseShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, models.EndpointDailySeries, shapeErr.Endpoint)
			assert.True(t, errors.Is(err, models.ErrUnexpectedResponse))
		})
	}
}

func TestNonObjectDayDoesNotAbortWalk(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") == "2024-01-03" {
			_, _ = w.Write([]byte(`<html>gateway</html>`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"success","data":[{"symbol":"SPY","type":"call","strike":"470.00"}]}`))
	})
	f := usecase.NewOptionsFetcher(c, metrics.Nop{}, xlogger.Nop(), 1)

	res, err := f.FetchOptionsData(context.Background(), "SPY", "2024-01-02", "2024-01-04", "")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, res.Records, 2)
}

func TestSnippetBoundsLength(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, snippet(long), maxSnippet+3)
	assert.Equal(t, "<empty>", snippet([]byte("  ")))
}
