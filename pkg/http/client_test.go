package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndParseDecodesJSONWithQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SPY", r.URL.Query().Get("symbol"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"message":"success"}`))
	}))
	defer srv.Close()

	var out struct {
		Message string `json:"message"`
	}
	err := NewClient().SendAndParse(context.Background(), &RequestOptions{
		URL:         srv.URL,
		QueryParams: map[string][]string{"symbol": {"SPY"}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "success", out.Message)
}

func TestSendAndParseNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, nil)
	require.Error(t, err)
	assert.True(t, IsStatusError(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestSendAndParseTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := NewClient(WithTimeout(20*time.Millisecond)).SendAndParse(context.Background(), &RequestOptions{URL: srv.URL}, nil)
	require.Error(t, err)
	assert.False(t, IsStatusError(err))
}

func TestTransportErrorRedactsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	err := NewClient(WithRedactedQuery("apikey")).SendAndParse(context.Background(), &RequestOptions{
		URL:         addr,
		QueryParams: map[string][]string{"apikey": {"SECRET"}, "symbol": {"SPY"}},
	}, nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
	assert.Contains(t, err.Error(), "apikey=***")
}
