package tuteliq

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAPIKeyRequired = errors.New("API key is required")
	ErrAPIKeyTooShort = errors.New("API key is too short")
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// ErrorKind identifies one member of the closed error taxonomy. Every error
// returned by a client method wraps exactly one kind.
type ErrorKind string

const (
	// ErrorKindValidation means the request was rejected by the API (HTTP 400).
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindAuthentication means the API key was missing, invalid or expired (HTTP 401).
	ErrorKindAuthentication ErrorKind = "authentication"
	// ErrorKindPlanRestricted means the operation is not available on the current plan (HTTP 403).
	ErrorKindPlanRestricted ErrorKind = "plan_restricted"
	// ErrorKindNotFound means the requested resource does not exist (HTTP 404).
	ErrorKindNotFound ErrorKind = "not_found"
	// ErrorKindRateLimit means the rate-limit window was exhausted (HTTP 429).
	ErrorKindRateLimit ErrorKind = "rate_limit"
	// ErrorKindServer means the API failed to process the request (HTTP 5xx).
	ErrorKindServer ErrorKind = "server"
	// ErrorKindTimeout means the request exceeded the configured timeout.
	ErrorKindTimeout ErrorKind = "timeout"
	// ErrorKindNetwork means the request never produced an HTTP response.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindCancelled means the caller cancelled the request.
	ErrorKindCancelled ErrorKind = "cancelled"
	// ErrorKindUnknown covers everything the taxonomy does not recognize.
	ErrorKindUnknown ErrorKind = "unknown"
)

// Sentinel errors, one per taxonomy kind, for errors.Is checks.
var (
	ErrValidation     = errors.New("tuteliq: request validation failed")
	ErrAuthentication = errors.New("tuteliq: authentication failed")
	ErrPlanRestricted = errors.New("tuteliq: plan restriction")
	ErrNotFound       = errors.New("tuteliq: resource not found")
	ErrRateLimited    = errors.New("tuteliq: rate limit exceeded")
	ErrServer         = errors.New("tuteliq: server error")
	ErrTimeout        = errors.New("tuteliq: request timed out")
	ErrNetwork        = errors.New("tuteliq: network error")
	ErrCancelled      = errors.New("tuteliq: request cancelled")
	ErrUnknown        = errors.New("tuteliq: unknown error")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindValidation:     ErrValidation,
	ErrorKindAuthentication: ErrAuthentication,
	ErrorKindPlanRestricted: ErrPlanRestricted,
	ErrorKindNotFound:       ErrNotFound,
	ErrorKindRateLimit:      ErrRateLimited,
	ErrorKindServer:         ErrServer,
	ErrorKindTimeout:        ErrTimeout,
	ErrorKindNetwork:        ErrNetwork,
	ErrorKindCancelled:      ErrCancelled,
	ErrorKindUnknown:        ErrUnknown,
}

// APIError is the single error type surfaced by client methods. It carries the
// taxonomy kind plus whatever the API included in its error envelope.
//
// Use errors.Is against the sentinel errors to branch on the kind:
//
//	_, err := client.AnalyzeBullying(ctx, req)
//	if errors.Is(err, tuteliq.ErrRateLimited) {
//		// back off
//	}
//
// Or extract the full error for the machine code and structured details:
//
//	var apiErr *tuteliq.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("code=%s details=%v", apiErr.Code, apiErr.Details)
//	}
type APIError struct {
	// Kind is the taxonomy member this error belongs to.
	Kind ErrorKind
	// Message is the human-readable message, taken from the API error envelope
	// when one was parseable.
	Message string
	// StatusCode is the HTTP status of the failed response, zero when no
	// response was received.
	StatusCode int
	// Code is the machine-readable error code from the envelope, e.g. "AUTH_1002".
	Code string
	// Details holds structured validation details when the API provided them.
	Details map[string]Value
	// Suggestion is an optional remediation hint from the API.
	Suggestion string
	// Links are optional documentation links from the API.
	Links []string

	cause error
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.StatusCode > 0:
		return fmt.Sprintf("tuteliq: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	case e.StatusCode > 0:
		return fmt.Sprintf("tuteliq: %s (status %d)", e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("tuteliq: %s", e.Message)
	}
}

// Unwrap returns the underlying transport or context error, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Is matches the per-kind sentinel errors, and other *APIError values by kind.
func (e *APIError) Is(target error) bool {
	if sentinel, ok := kindSentinels[e.Kind]; ok && target == sentinel {
		return true
	}
	if other, ok := target.(*APIError); ok {
		return e.Kind == other.Kind
	}
	return false
}

// Retryable reports whether the retry engine may re-attempt a request that
// failed with this error. Authentication, validation, not-found and plan
// restriction failures are final; everything else is considered transient.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case ErrorKindValidation, ErrorKindAuthentication, ErrorKindNotFound,
		ErrorKindPlanRestricted, ErrorKindCancelled:
		return false
	default:
		return true
	}
}

// classifyStatus maps a non-2xx HTTP status plus the parsed error envelope to
// one taxonomy member. It is a pure function: no I/O, no side effects.
func classifyStatus(status int, code, message string, details map[string]Value, suggestion string) *APIError {
	if message == "" {
		message = "Request failed"
	}

	e := &APIError{
		Message:    message,
		StatusCode: status,
		Code:       code,
		Details:    details,
		Suggestion: suggestion,
	}

	switch {
	case status == http.StatusBadRequest:
		e.Kind = ErrorKindValidation
	case status == http.StatusUnauthorized:
		e.Kind = ErrorKindAuthentication
	case status == http.StatusForbidden:
		e.Kind = ErrorKindPlanRestricted
	case status == http.StatusNotFound:
		e.Kind = ErrorKindNotFound
	case status == http.StatusTooManyRequests:
		e.Kind = ErrorKindRateLimit
	case status >= 500:
		e.Kind = ErrorKindServer
	default:
		e.Kind = ErrorKindUnknown
	}

	return e
}

func cancelledError(cause error) *APIError {
	return &APIError{
		Kind:    ErrorKindCancelled,
		Message: "request cancelled",
		cause:   cause,
	}
}

func timeoutError(cause error) *APIError {
	return &APIError{
		Kind:    ErrorKindTimeout,
		Message: "request timed out",
		cause:   cause,
	}
}

func networkError(cause error) *APIError {
	return &APIError{
		Kind:    ErrorKindNetwork,
		Message: fmt.Sprintf("network error: %v", cause),
		cause:   cause,
	}
}

func unknownError(message string, cause error) *APIError {
	return &APIError{
		Kind:    ErrorKindUnknown,
		Message: message,
		cause:   cause,
	}
}
