package models

import (
	"errors"
	"fmt"
)

// Upstream endpoint labels used in errors, logs and metrics.
const (
	EndpointHistoricalOptions = "historical_options"
	EndpointDailySeries       = "time_series_daily"
)

// ErrInvalidRequest marks caller input rejected before any upstream call.
var ErrInvalidRequest = errors.New("invalid request")

// ErrUnexpectedResponse marks an upstream payload without the expected shape.
var ErrUnexpectedResponse = errors.New("unexpected response shape")

// ResponseShapeError describes which endpoint answered with what.
type ResponseShapeError struct {
	Endpoint    string
	Reason      string
	Information string // provider message, if the payload carried one
}

func (e *ResponseShapeError) Error() string {
	msg := fmt.Sprintf("%s: %v: %s", e.Endpoint, ErrUnexpectedResponse, e.Reason)
	if e.Information != "" {
		msg += " (" + e.Information + ")"
	}
	return msg
}

func (e *ResponseShapeError) Unwrap() error { return ErrUnexpectedResponse }
