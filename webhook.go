package tuteliq

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrInvalidSignature is returned when a webhook payload fails signature
// verification.
var ErrInvalidSignature = errors.New("tuteliq: invalid webhook signature")

// WebhookEventType identifies what triggered a webhook delivery.
type WebhookEventType string

const (
	// WebhookEventAnalysisFlagged fires when any detector flags content at or
	// above the webhook's minimum risk level.
	WebhookEventAnalysisFlagged WebhookEventType = "analysis.flagged"
	// WebhookEventReportCreated fires when a report is filed.
	WebhookEventReportCreated WebhookEventType = "report.created"
	// WebhookEventReportUpdated fires when a report changes state.
	WebhookEventReportUpdated WebhookEventType = "report.updated"
	// WebhookEventUsageWarning fires when monthly usage crosses a threshold.
	WebhookEventUsageWarning WebhookEventType = "usage.warning"
)

// Webhook is a configured webhook endpoint.
type Webhook struct {
	ID string `json:"id"`
	// URL receives event deliveries via POST. Must be HTTPS.
	URL string `json:"url"`
	// Events lists the event types delivered to this endpoint.
	Events []WebhookEventType `json:"events"`
	// MinRiskLevel filters analysis.flagged deliveries.
	MinRiskLevel RiskLevel `json:"min_risk_level,omitempty"`
	// Secret signs deliveries; only returned on creation.
	Secret    string    `json:"secret,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateWebhookRequest registers a new webhook endpoint.
type CreateWebhookRequest struct {
	URL          string             `json:"url"`
	Events       []WebhookEventType `json:"events"`
	MinRiskLevel RiskLevel          `json:"min_risk_level,omitempty"`
}

// UpdateWebhookRequest replaces a webhook's configuration.
type UpdateWebhookRequest struct {
	URL          string             `json:"url"`
	Events       []WebhookEventType `json:"events"`
	MinRiskLevel RiskLevel          `json:"min_risk_level,omitempty"`
	Active       *bool              `json:"active,omitempty"`
}

// WebhookEvent is one delivery payload.
type WebhookEvent struct {
	ID        string           `json:"id"`
	Type      WebhookEventType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	// Data is the event payload; its shape depends on Type.
	Data map[string]Value `json:"data"`
}

// CreateWebhook registers a webhook endpoint. The response includes the
// signing secret exactly once; store it for VerifyWebhookSignature.
func (c *Client) CreateWebhook(ctx context.Context, req *CreateWebhookRequest) (*Webhook, error) {
	if req == nil || req.URL == "" {
		return nil, errors.New("tuteliq: webhook URL is required")
	}
	if len(req.Events) == 0 {
		return nil, errors.New("tuteliq: webhook must subscribe to at least one event")
	}
	data, err := c.execute(ctx, http.MethodPost, "/webhooks", req, nil)
	if err != nil {
		return nil, err
	}
	var wh Webhook
	if err := decodeResponse(data, &wh); err != nil {
		return nil, err
	}
	return &wh, nil
}

// GetWebhook retrieves a webhook by id.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	if webhookID == "" {
		return nil, errors.New("tuteliq: webhook id is required")
	}
	data, err := c.execute(ctx, http.MethodGet, "/webhooks/"+webhookID, nil, nil)
	if err != nil {
		return nil, err
	}
	var wh Webhook
	if err := decodeResponse(data, &wh); err != nil {
		return nil, err
	}
	return &wh, nil
}

// ListWebhooks lists all webhook endpoints on the account.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	data, err := c.execute(ctx, http.MethodGet, "/webhooks", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Webhooks []Webhook `json:"webhooks"`
	}
	if err := decodeResponse(data, &resp); err != nil {
		return nil, err
	}
	return resp.Webhooks, nil
}

// UpdateWebhook replaces a webhook's configuration.
func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, req *UpdateWebhookRequest) (*Webhook, error) {
	if webhookID == "" {
		return nil, errors.New("tuteliq: webhook id is required")
	}
	data, err := c.execute(ctx, http.MethodPut, "/webhooks/"+webhookID, req, nil)
	if err != nil {
		return nil, err
	}
	var wh Webhook
	if err := decodeResponse(data, &wh); err != nil {
		return nil, err
	}
	return &wh, nil
}

// DeleteWebhook removes a webhook endpoint.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	if webhookID == "" {
		return errors.New("tuteliq: webhook id is required")
	}
	_, err := c.execute(ctx, http.MethodDelete, "/webhooks/"+webhookID, nil, nil)
	return err
}

// TestWebhook asks the API to deliver a synthetic event to the endpoint.
func (c *Client) TestWebhook(ctx context.Context, webhookID string) error {
	if webhookID == "" {
		return errors.New("tuteliq: webhook id is required")
	}
	_, err := c.execute(ctx, http.MethodPost, "/webhooks/"+webhookID+"/test", nil, nil)
	return err
}

// VerifyWebhookSignature checks a delivery against the X-Tuteliq-Signature
// header value. The signature is the hex-encoded HMAC-SHA256 of the raw
// request body under the webhook's signing secret. Comparison is constant
// time.
func VerifyWebhookSignature(payload []byte, signature, secret string) error {
	if signature == "" {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// ParseWebhookEvent verifies a delivery's signature and decodes the event.
// Use it in your webhook handler with the raw request body.
func ParseWebhookEvent(payload []byte, signature, secret string) (*WebhookEvent, error) {
	if err := VerifyWebhookSignature(payload, signature, secret); err != nil {
		return nil, err
	}
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("tuteliq: decode webhook event: %w", err)
	}
	return &event, nil
}
