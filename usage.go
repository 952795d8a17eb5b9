package tuteliq

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// SubscriptionPlan names the account's pricing tier.
type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanStarter    SubscriptionPlan = "starter"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// UsageSummary reports the current billing period's consumption.
type UsageSummary struct {
	Plan      SubscriptionPlan `json:"plan"`
	Limit     int              `json:"limit"`
	Used      int              `json:"used"`
	Remaining int              `json:"remaining"`
	ResetDate time.Time        `json:"reset_date"`
	// ByEndpoint breaks usage down per API operation.
	ByEndpoint map[string]int `json:"by_endpoint,omitempty"`
}

// UsageHistoryEntry is one day of usage.
type UsageHistoryEntry struct {
	Date     string         `json:"date"`
	Requests int            `json:"requests"`
	Flagged  int            `json:"flagged"`
	ByRisk   map[string]int `json:"by_risk,omitempty"`
}

// UsageHistory is a date-bounded usage report.
type UsageHistory struct {
	From    string              `json:"from"`
	To      string              `json:"to"`
	Entries []UsageHistoryEntry `json:"entries"`
}

// Subscription describes the account's current plan.
type Subscription struct {
	Plan            SubscriptionPlan `json:"plan"`
	Status          string           `json:"status"`
	MonthlyLimit    int              `json:"monthly_limit"`
	PriceCents      int              `json:"price_cents"`
	Currency        string           `json:"currency"`
	PeriodStart     time.Time        `json:"period_start"`
	PeriodEnd       time.Time        `json:"period_end"`
	CancelAtEnd     bool             `json:"cancel_at_period_end"`
	TrialEndsAt     time.Time        `json:"trial_ends_at,omitzero"`
	PaymentProvider string           `json:"payment_provider,omitempty"`
}

// Invoice is one billing document.
type Invoice struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	AmountCents int       `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IssuedAt    time.Time `json:"issued_at"`
	PaidAt      time.Time `json:"paid_at,omitzero"`
	PDFURL      string    `json:"pdf_url,omitempty"`
}

// GetUsage returns the current billing period's usage summary.
func (c *Client) GetUsage(ctx context.Context) (*UsageSummary, error) {
	data, err := c.execute(ctx, http.MethodGet, "/usage", nil, nil)
	if err != nil {
		return nil, err
	}
	var summary UsageSummary
	if err := decodeResponse(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetUsageHistory returns per-day usage between from and to, inclusive.
// Dates use the 2006-01-02 form.
func (c *Client) GetUsageHistory(ctx context.Context, from, to time.Time) (*UsageHistory, error) {
	if to.Before(from) {
		return nil, errors.New("tuteliq: usage history range end precedes start")
	}
	query := url.Values{
		"from": {from.Format("2006-01-02")},
		"to":   {to.Format("2006-01-02")},
	}
	data, err := c.execute(ctx, http.MethodGet, "/usage/history", nil, query)
	if err != nil {
		return nil, err
	}
	var history UsageHistory
	if err := decodeResponse(data, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// GetSubscription returns the account's current subscription.
func (c *Client) GetSubscription(ctx context.Context) (*Subscription, error) {
	data, err := c.execute(ctx, http.MethodGet, "/billing/subscription", nil, nil)
	if err != nil {
		return nil, err
	}
	var sub Subscription
	if err := decodeResponse(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListInvoices returns the account's invoices, newest first.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	data, err := c.execute(ctx, http.MethodGet, "/billing/invoices", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Invoices []Invoice `json:"invoices"`
	}
	if err := decodeResponse(data, &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}
