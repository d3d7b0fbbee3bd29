package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	r.RecordRequest("historical_options")
	r.RecordRequest("historical_options")
	r.RecordSkippedResponse("historical_options", "error_message")
	r.RecordInformational("historical_options")
	r.RecordRecords(12)
	r.RecordRecords(3)
	r.RecordError("network")
	r.RecordLatency("fetch_options", 0.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("historical_options")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.skippedResponses.WithLabelValues("historical_options", "error_message")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.informationalStop.WithLabelValues("historical_options")))
	assert.Equal(t, 15.0, testutil.ToFloat64(r.recordsFetched))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("network")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}

func TestRecordsFetchedHasNoPerSymbolSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	for i := 0; i < 50; i++ {
		r.RecordRecords(1)
	}
	assert.Equal(t, 1, testutil.CollectAndCount(r.recordsFetched))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.recordsFetched))
}
