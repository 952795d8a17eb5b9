package tuteliq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// requestParams describes one logical API request, spanning all retry
// attempts. It lives only for the duration of the call.
type requestParams struct {
	method      string
	path        string
	body        any               // JSON-encoded when non-nil
	rawBody     []byte            // pre-built body bytes (multipart)
	contentType string            // content type for rawBody
	query       url.Values        // appended to the URL
	headers     map[string]string // extra per-request headers
}

// execute runs a JSON request through the retry pipeline and returns the raw
// response bytes of a 2xx response.
func (c *Client) execute(ctx context.Context, method, path string, body any, query url.Values) ([]byte, error) {
	return c.do(ctx, requestParams{method: method, path: path, body: body, query: query})
}

// executeMultipart runs a pre-built multipart/form-data request through the
// retry pipeline.
func (c *Client) executeMultipart(ctx context.Context, path string, body []byte, boundary string) ([]byte, error) {
	return c.do(ctx, requestParams{
		method:      http.MethodPost,
		path:        path,
		rawBody:     body,
		contentType: "multipart/form-data; boundary=" + boundary,
	})
}

func (c *Client) do(ctx context.Context, p requestParams) ([]byte, error) {
	started := time.Now()
	metrics := c.config.metrics

	var encoded []byte
	switch {
	case p.rawBody != nil:
		encoded = p.rawBody
	case p.body != nil:
		data, err := json.Marshal(p.body)
		if err != nil {
			return nil, unknownError(fmt.Sprintf("encode request body: %v", err), err)
		}
		encoded = data
	}

	// Only GETs are cache-eligible, and only when a TTL is configured.
	cacheable := p.method == http.MethodGet && c.config.cacheTTL > 0
	key := cacheKey(p.path, p.query)
	if cacheable {
		if body, ok := c.cache.get(key); ok {
			metrics.recordCacheHit(p.path)
			return body, nil
		}
		metrics.recordCacheMiss(p.path)
	}

	var out []byte
	var lastStatus int
	attempt := 0
	operation := func() error {
		// Cancellation is honored at the top of every attempt. An attempt
		// already past this check runs to completion, so a call may still
		// succeed shortly after the caller cancels; that race is accepted.
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(cancelledError(err))
		}
		if c.config.limiter != nil {
			if err := c.config.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(cancelledError(err))
			}
		}
		if attempt > 0 {
			metrics.recordRetry(p.method, p.path)
		}
		attempt++

		data, status, err := c.doAttempt(ctx, p, encoded)
		if status != 0 {
			lastStatus = status
		}
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.Retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		out = data
		return nil
	}

	if err := backoff.Retry(operation, c.newBackoff(ctx)); err != nil {
		apiErr := asAPIError(err)
		metrics.recordError(apiErr.Kind, p.method, p.path)
		metrics.recordRequest(p.method, p.path, apiErr.StatusCode, time.Since(started))
		return nil, apiErr
	}

	metrics.recordRequest(p.method, p.path, lastStatus, time.Since(started))

	// Cache writes happen only here, after a fully successful response.
	if cacheable {
		c.cache.set(key, out, c.config.cacheTTL)
	}
	return out, nil
}

// newBackoff builds the per-call retry schedule: retryDelay * 2^attempt with
// no jitter, maxRetries total attempts, aborted by context cancellation
// (including mid-sleep).
func (c *Client) newBackoff(ctx context.Context) backoff.BackOffContext {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.config.retryDelay
	expBackoff.Multiplier = 2.0
	expBackoff.RandomizationFactor = 0
	expBackoff.MaxInterval = 30 * time.Second
	expBackoff.MaxElapsedTime = 0 // attempts are bounded by WithMaxRetries

	b := backoff.WithMaxRetries(expBackoff, uint64(c.config.maxRetries-1))
	return backoff.WithContext(b, ctx)
}

// asAPIError guarantees callers always receive a classified error. Context
// errors surfacing from the backoff engine (cancellation during a sleep) map
// to the cancelled kind.
func asAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return cancelledError(err)
	}
	return unknownError(err.Error(), err)
}

// decodeResponse unmarshals a 2xx response body into a typed result.
func decodeResponse(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return unknownError(fmt.Sprintf("decode response: %v", err), err)
	}
	return nil
}
