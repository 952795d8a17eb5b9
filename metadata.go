package tuteliq

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Response headers surfaced through the metadata tracker.
const (
	headerRequestID = "X-Request-Id"

	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"

	headerMonthlyLimit     = "X-Monthly-Limit"
	headerMonthlyUsed      = "X-Monthly-Used"
	headerMonthlyRemaining = "X-Monthly-Remaining"
	headerMonthlyReset     = "X-Monthly-Reset"
	headerUsageWarning     = "X-Usage-Warning"
)

// RateLimitInfo is the per-window rate limit reported by the API.
type RateLimitInfo struct {
	// Limit is the number of requests allowed in the current window.
	Limit int
	// Remaining is the number of requests left in the current window.
	Remaining int
	// Reset is when the window rolls over.
	Reset time.Time
}

// UsageInfo is the monthly usage and quota reported by the API.
type UsageInfo struct {
	// Limit is the monthly request quota.
	Limit int
	// Used is the number of requests consumed this month.
	Used int
	// Remaining is the number of requests left this month.
	Remaining int
	// ResetDate is the day the quota resets. Zero when the API omitted it.
	ResetDate time.Time
	// Warning is a quota warning from the API, e.g. when usage passes 80%.
	// Empty when absent.
	Warning string
}

// responseMetadata tracks diagnostics from the most recently completed
// attempt. A single mutex guards all fields; updates never partially
// interleave and reads return snapshots.
type responseMetadata struct {
	mu        sync.Mutex
	requestID string
	latency   time.Duration
	rateLimit *RateLimitInfo
	usage     *UsageInfo
}

func newResponseMetadata() *responseMetadata {
	return &responseMetadata{}
}

// update records the outcome of one completed attempt. Latency and request id
// are always overwritten. The rate-limit and usage header groups are parsed
// all-or-nothing: if any required header of a group is absent or malformed,
// the previously stored value for that group is left untouched.
func (m *responseMetadata) update(h http.Header, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latency = latency
	if id := h.Get(headerRequestID); id != "" {
		m.requestID = id
	}

	if rl, ok := parseRateLimitHeaders(h); ok {
		m.rateLimit = &rl
	}
	if u, ok := parseUsageHeaders(h); ok {
		m.usage = &u
	}
}

func parseRateLimitHeaders(h http.Header) (RateLimitInfo, bool) {
	limit, err1 := strconv.Atoi(h.Get(headerRateLimitLimit))
	remaining, err2 := strconv.Atoi(h.Get(headerRateLimitRemaining))
	resetUnix, err3 := strconv.ParseInt(h.Get(headerRateLimitReset), 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return RateLimitInfo{}, false
	}
	return RateLimitInfo{
		Limit:     limit,
		Remaining: remaining,
		Reset:     time.Unix(resetUnix, 0).UTC(),
	}, true
}

func parseUsageHeaders(h http.Header) (UsageInfo, bool) {
	limit, err1 := strconv.Atoi(h.Get(headerMonthlyLimit))
	used, err2 := strconv.Atoi(h.Get(headerMonthlyUsed))
	remaining, err3 := strconv.Atoi(h.Get(headerMonthlyRemaining))
	if err1 != nil || err2 != nil || err3 != nil {
		return UsageInfo{}, false
	}

	u := UsageInfo{
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		Warning:   h.Get(headerUsageWarning),
	}

	// Reset date and warning are optional trailing fields: each may be absent
	// independently once the required group parses.
	if raw := h.Get(headerMonthlyReset); raw != "" {
		if reset, err := time.Parse("2006-01-02", raw); err == nil {
			u.ResetDate = reset
		}
	}

	return u, true
}

func (m *responseMetadata) lastRequestID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestID, m.requestID != ""
}

func (m *responseMetadata) lastLatency() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latency
}

func (m *responseMetadata) rateLimitInfo() (RateLimitInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rateLimit == nil {
		return RateLimitInfo{}, false
	}
	return *m.rateLimit, true
}

func (m *responseMetadata) usageInfo() (UsageInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.usage == nil {
		return UsageInfo{}, false
	}
	return *m.usage, true
}
