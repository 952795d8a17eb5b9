package tuteliq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const userAgent = "tuteliq-go/" + Version

// doAttempt performs exactly one network attempt. It returns the raw bytes of
// a 2xx response, or a classified error. The returned status is zero when no
// HTTP response was received. Response headers feed the metadata tracker on
// every completed exchange, success or not.
func (c *Client) doAttempt(ctx context.Context, p requestParams, body []byte) ([]byte, int, error) {
	fullURL := strings.TrimSuffix(c.config.baseURL, "/") + p.path
	if len(p.query) > 0 {
		fullURL += "?" + p.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, fullURL, reader)
	if err != nil {
		return nil, 0, unknownError(fmt.Sprintf("build request: %v", err), err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		ct := p.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	for k, v := range p.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, 0, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)

	// Headers arrived even if the body read failed below.
	c.meta.update(resp.Header, latency)

	if readErr != nil {
		return nil, resp.StatusCode, networkError(readErr)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, resp.StatusCode, nil
	}

	env := parseErrorEnvelope(data)
	apiErr := classifyStatus(resp.StatusCode, env.Error.Code, env.Error.Message, env.Error.Details, env.Error.Suggestion)
	apiErr.Links = env.Error.Links
	return nil, resp.StatusCode, apiErr
}

// classifyTransportError maps failures that produced no HTTP response.
func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.Canceled) {
		return cancelledError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeoutError(err)
	}
	return networkError(err)
}

// errorEnvelope is the API's error body shape.
type errorEnvelope struct {
	Error struct {
		Code       string           `json:"code"`
		Message    string           `json:"message"`
		Details    map[string]Value `json:"details,omitempty"`
		Suggestion string           `json:"suggestion,omitempty"`
		Links      []string         `json:"links,omitempty"`
	} `json:"error"`
}

// parseErrorEnvelope best-effort parses an error body. An unparseable body
// yields a zero envelope; the classifier falls back to a generic message.
func parseErrorEnvelope(data []byte) errorEnvelope {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errorEnvelope{}
	}
	return env
}
