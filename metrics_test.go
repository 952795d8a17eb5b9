package tuteliq

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCollectorIsSafe(t *testing.T) {
	var m *MetricsCollector
	m.recordRequest(http.MethodGet, "/usage", 200, time.Millisecond)
	m.recordRetry(http.MethodGet, "/usage")
	m.recordCacheHit("/usage")
	m.recordCacheMiss("/usage")
	m.recordError(ErrorKindServer, http.MethodGet, "/usage")
}

func TestMetricsRecordedOnSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plan":"pro"}`))
	}), WithMetricsRegistry(reg), WithCacheTTL(time.Minute))

	_, err := client.GetUsage(context.Background())
	require.NoError(t, err)
	_, err = client.GetUsage(context.Background())
	require.NoError(t, err)

	m := client.config.metrics
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/usage", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.cacheMisses.WithLabelValues("/usage")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.cacheHits.WithLabelValues("/usage")))
}

func TestMetricsRecordedOnRetriesAndErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), WithMetricsRegistry(reg), WithMaxRetries(3))

	_, err := client.AnalyzeBullying(context.Background(), &TextAnalysisRequest{Text: "hello"})
	require.Error(t, err)

	m := client.config.metrics
	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.retriesTotal.WithLabelValues("POST", "/analyze/bullying")),
		"two retries after the first attempt")
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.errorsTotal.WithLabelValues("server", "POST", "/analyze/bullying")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/analyze/bullying", "500")))
}

func TestMetricsDisabledByDefault(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plan":"pro"}`))
	}))

	assert.Nil(t, client.config.metrics)
	_, err := client.GetUsage(context.Background())
	require.NoError(t, err)
}
