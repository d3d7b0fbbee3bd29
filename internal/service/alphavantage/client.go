package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"OptionsPull/internal/domain/models"
	drepo "OptionsPull/internal/domain/repository"
	xhttp "OptionsPull/pkg/http"
	xlogger "OptionsPull/pkg/logger"
	xutil "OptionsPull/pkg/util"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co"

	functionHistoricalOptions = "HISTORICAL_OPTIONS"
	functionDailySeries       = "TIME_SERIES_DAILY"

	keyInformation  = "Information"
	keyErrorMessage = "Error Message"
	keyNote         = "Note"
	keyDailySeries  = "Time Series (Daily)"
	keyClose        = "4. close"

	successMessage = "success"
)

// Client implements MarketData against the Alpha Vantage query API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

// New creates an Alpha Vantage client. The API key is sent as a query
// parameter and never logged.
func New(apiKey, baseURL string, httpClient *xhttp.Client, metrics drepo.Metrics, logger *xlogger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchOptionsDay requests the options chain of ticker as of date and
// classifies the payload. Transport and status failures are returned as errors.
func (c *Client) FetchOptionsDay(ctx context.Context, ticker string, date time.Time) (*models.OptionsDay, error) {
	day := xutil.FormatDate(date)
	raw, body, err := c.query(ctx, models.EndpointHistoricalOptions, map[string][]string{
		"function": {functionHistoricalOptions},
		"date":     {day},
		"symbol":   {ticker},
	})
	if err != nil {
		return nil, fmt.Errorf("historical options %s %s: %w", ticker, day, err)
	}

	out := &models.OptionsDay{Date: date}

	if raw == nil {
		out.Status = models.DayUnrecognized
		out.Reason = "not_object"
		out.Message = "body is not a JSON object: " + snippet(body)
		return out, nil
	}

	if info, ok := raw[keyInformation]; ok {
		out.Status = models.DayInformational
		out.Message = rawText(info)
		return out, nil
	}

	var message string
	if m, ok := raw["message"]; ok {
		message = rawText(m)
	}
	if message == successMessage {
		data, ok := raw["data"]
		if !ok {
			out.Status = models.DayUnrecognized
			out.Reason = "no_data"
			out.Message = "success without data"
			return out, nil
		}
		if err := json.Unmarshal(data, &out.Records); err != nil {
			out.Status = models.DayUnrecognized
			out.Reason = "bad_data"
			out.Message = "undecodable data: " + err.Error()
			return out, nil
		}
		out.Status = models.DaySuccess
		return out, nil
	}

	out.Status = models.DayUnrecognized
	switch {
	case raw[keyErrorMessage] != nil:
		out.Reason = "error_message"
		out.Message = "error message: " + rawText(raw[keyErrorMessage])
	case raw[keyNote] != nil:
		out.Reason = "note"
		out.Message = "note: " + rawText(raw[keyNote])
	case message != "":
		out.Reason = "message"
		out.Message = "message: " + message
	default:
		out.Reason = "no_marker"
		out.Message = "no status marker"
	}
	return out, nil
}

// FetchDailyPrices returns the full daily close history of ticker, ascending.
func (c *Client) FetchDailyPrices(ctx context.Context, ticker string) (models.PriceSeries, error) {
	raw, body, err := c.query(ctx, models.EndpointDailySeries, map[string][]string{
		"function":   {functionDailySeries},
		"symbol":     {ticker},
		"outputsize": {"full"},
	})
	if err != nil {
		return nil, fmt.Errorf("daily prices %s: %w", ticker, err)
	}

	if raw == nil {
		return nil, &models.ResponseShapeError{
			Endpoint: models.EndpointDailySeries,
			Reason:   "body is not a JSON object: " + snippet(body),
		}
	}

	series, ok := raw[keyDailySeries]
	if !ok {
		shapeErr := &models.ResponseShapeError{
			Endpoint: models.EndpointDailySeries,
			Reason:   fmt.Sprintf("missing %q", keyDailySeries),
		}
		if v, ok := raw[keyInformation]; ok {
			shapeErr.Information = rawText(v)
		} else if v, ok := raw[keyErrorMessage]; ok {
			shapeErr.Information = rawText(v)
		} else if v, ok := raw[keyNote]; ok {
			shapeErr.Information = rawText(v)
		}
		return nil, shapeErr
	}

	var byDate map[string]map[string]models.FlexString
	if err := json.Unmarshal(series, &byDate); err != nil {
		return nil, &models.ResponseShapeError{
			Endpoint: models.EndpointDailySeries,
			Reason:   "undecodable series: " + err.Error(),
		}
	}

	prices := make([]models.StockPrice, 0, len(byDate))
	for ds, fields := range byDate {
		d, err := xutil.ParseDate(ds)
		if err != nil {
			return nil, &models.ResponseShapeError{Endpoint: models.EndpointDailySeries, Reason: err.Error()}
		}
		closeVal, ok := xutil.ParseFloat(fields[keyClose].String())
		if !ok {
			return nil, &models.ResponseShapeError{
				Endpoint: models.EndpointDailySeries,
				Reason:   fmt.Sprintf("non-numeric close %q on %s", fields[keyClose], ds),
			}
		}
		prices = append(prices, models.StockPrice{Date: d, Close: closeVal})
	}

	return models.NewPriceSeries(prices), nil
}

// query sends one GET and returns the body as a JSON object. raw is nil, with
// a nil error, when the body is anything other than an object.
func (c *Client) query(ctx context.Context, endpoint string, params map[string][]string) (map[string]json.RawMessage, []byte, error) {
	params["apikey"] = []string{c.apiKey}
	url := c.baseURL + "/query"

	start := time.Now()
	c.metrics.RecordRequest(endpoint)

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		QueryParams: params,
	}, &body)
	c.metrics.RecordLatency(endpoint, time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordError(endpoint)
		c.logger.Debug("upstream request failed",
			xlogger.String("endpoint", endpoint),
			xlogger.Strings("symbol", params["symbol"]),
			xlogger.Error(err),
		)
		return nil, nil, err
	}

	c.logger.Debug("upstream response",
		xlogger.String("endpoint", endpoint),
		xlogger.Strings("symbol", params["symbol"]),
		xlogger.Strings("date", params["date"]),
		xlogger.Int("bytes", len(body)),
		xlogger.Duration("duration_ms", time.Since(start)),
	)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, body, nil
	}
	return raw, body, nil
}

// maxSnippet bounds how much of an unusable body ends up in messages.
const maxSnippet = 120

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxSnippet {
		s = s[:maxSnippet] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// rawText renders a JSON value as text, unquoting strings.
func rawText(b json.RawMessage) string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(b))
}
