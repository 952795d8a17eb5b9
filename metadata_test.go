package tuteliq

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headersFrom(pairs map[string]string) http.Header {
	h := make(http.Header, len(pairs))
	for k, v := range pairs {
		h.Set(k, v)
	}
	return h
}

func TestMetadataUpdateBasics(t *testing.T) {
	m := newResponseMetadata()

	m.update(headersFrom(map[string]string{"X-Request-Id": "req_1"}), 120*time.Millisecond)

	id, ok := m.lastRequestID()
	assert.True(t, ok)
	assert.Equal(t, "req_1", id)
	assert.Equal(t, 120*time.Millisecond, m.lastLatency())
}

func TestMetadataRequestIDKeptWhenHeaderMissing(t *testing.T) {
	m := newResponseMetadata()
	m.update(headersFrom(map[string]string{"X-Request-Id": "req_1"}), time.Millisecond)
	m.update(headersFrom(nil), 2*time.Millisecond)

	id, ok := m.lastRequestID()
	assert.True(t, ok)
	assert.Equal(t, "req_1", id, "missing header keeps the previous id")
	assert.Equal(t, 2*time.Millisecond, m.lastLatency(), "latency always overwritten")
}

func TestRateLimitHeadersAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		wantOK  bool
	}{
		{
			name: "complete group",
			headers: map[string]string{
				"X-RateLimit-Limit":     "100",
				"X-RateLimit-Remaining": "42",
				"X-RateLimit-Reset":     "1700000000",
			},
			wantOK: true,
		},
		{
			name: "missing remaining",
			headers: map[string]string{
				"X-RateLimit-Limit": "100",
				"X-RateLimit-Reset": "1700000000",
			},
			wantOK: false,
		},
		{
			name: "malformed reset",
			headers: map[string]string{
				"X-RateLimit-Limit":     "100",
				"X-RateLimit-Remaining": "42",
				"X-RateLimit-Reset":     "tomorrow",
			},
			wantOK: false,
		},
		{
			name:    "no headers at all",
			headers: nil,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, ok := parseRateLimitHeaders(headersFrom(tt.headers))
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, 100, rl.Limit)
				assert.Equal(t, 42, rl.Remaining)
				assert.Equal(t, time.Unix(1700000000, 0).UTC(), rl.Reset)
			}
		})
	}
}

func TestPartialGroupKeepsPreviousValue(t *testing.T) {
	m := newResponseMetadata()
	m.update(headersFrom(map[string]string{
		"X-RateLimit-Limit":     "100",
		"X-RateLimit-Remaining": "42",
		"X-RateLimit-Reset":     "1700000000",
	}), time.Millisecond)

	// Second response carries a broken group: the stored value survives.
	m.update(headersFrom(map[string]string{
		"X-RateLimit-Limit": "100",
	}), time.Millisecond)

	rl, ok := m.rateLimitInfo()
	require.True(t, ok)
	assert.Equal(t, 42, rl.Remaining)
}

func TestUsageHeadersOptionalFields(t *testing.T) {
	required := map[string]string{
		"X-Monthly-Limit":     "10000",
		"X-Monthly-Used":      "8200",
		"X-Monthly-Remaining": "1800",
	}

	u, ok := parseUsageHeaders(headersFrom(required))
	require.True(t, ok)
	assert.Equal(t, 10000, u.Limit)
	assert.Equal(t, 8200, u.Used)
	assert.Equal(t, 1800, u.Remaining)
	assert.True(t, u.ResetDate.IsZero())
	assert.Empty(t, u.Warning)

	full := map[string]string{
		"X-Monthly-Limit":     "10000",
		"X-Monthly-Used":      "8200",
		"X-Monthly-Remaining": "1800",
		"X-Monthly-Reset":     "2026-09-01",
		"X-Usage-Warning":     "82% of monthly quota used",
	}

	u, ok = parseUsageHeaders(headersFrom(full))
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), u.ResetDate)
	assert.Equal(t, "82% of monthly quota used", u.Warning)
}

func TestUsageHeadersMissingRequired(t *testing.T) {
	_, ok := parseUsageHeaders(headersFrom(map[string]string{
		"X-Monthly-Limit": "10000",
		"X-Monthly-Used":  "8200",
	}))
	assert.False(t, ok)
}

func TestMetadataConcurrentAccess(t *testing.T) {
	m := newResponseMetadata()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			m.update(headersFrom(map[string]string{
				"X-Request-Id":          fmt.Sprintf("req_%d", n),
				"X-RateLimit-Limit":     "100",
				"X-RateLimit-Remaining": fmt.Sprintf("%d", n),
				"X-RateLimit-Reset":     "1700000000",
			}), time.Duration(n)*time.Millisecond)
		}(i)
		go func() {
			defer wg.Done()
			m.lastRequestID()
			m.lastLatency()
			m.rateLimitInfo()
			m.usageInfo()
		}()
	}
	wg.Wait()

	rl, ok := m.rateLimitInfo()
	require.True(t, ok)
	assert.Equal(t, 100, rl.Limit)
}
