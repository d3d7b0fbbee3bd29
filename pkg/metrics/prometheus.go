package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	requestsTotal     *prometheus.CounterVec
	skippedResponses  *prometheus.CounterVec
	informationalStop *prometheus.CounterVec
	recordsFetched    prometheus.Counter
	errorsTotal       *prometheus.CounterVec
	latency           *prometheus.HistogramVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionspull_upstream_requests_total",
				Help: "Total number of requests sent to the market data provider",
			},
			[]string{"endpoint"},
		),
		skippedResponses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionspull_skipped_responses_total",
				Help: "Upstream responses ignored because their shape was not recognised",
			},
			[]string{"endpoint", "reason"},
		),
		informationalStop: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionspull_informational_responses_total",
				Help: "Provider informational notices that stopped a fetch loop",
			},
			[]string{"endpoint"},
		),
		// no symbol label, tickers are caller input
		recordsFetched: f.NewCounter(
			prometheus.CounterOpts{
				Name: "optionspull_records_fetched_total",
				Help: "Option records accumulated from the provider",
			},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionspull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "optionspull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRequest records one upstream request.
func (r *Recorder) RecordRequest(endpoint string) {
	r.requestsTotal.WithLabelValues(endpoint).Inc()
}

// RecordSkippedResponse records a response that was neither data nor a notice.
func (r *Recorder) RecordSkippedResponse(endpoint, reason string) {
	r.skippedResponses.WithLabelValues(endpoint, reason).Inc()
}

// RecordInformational records a provider notice that truncated a fetch.
func (r *Recorder) RecordInformational(endpoint string) {
	r.informationalStop.WithLabelValues(endpoint).Inc()
}

// RecordRecords adds n fetched option records.
func (r *Recorder) RecordRecords(n int) {
	r.recordsFetched.Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards all measurements.
type Nop struct{}

func (Nop) RecordRequest(string)                 {}
func (Nop) RecordSkippedResponse(string, string) {}
func (Nop) RecordInformational(string)           {}
func (Nop) RecordRecords(int)                    {}
func (Nop) RecordError(string)                   {}
func (Nop) RecordLatency(string, float64)        {}
