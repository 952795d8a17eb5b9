package tuteliq

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"analysis.flagged"}`)
	secret := "whsec_test_secret"

	assert.NoError(t, VerifyWebhookSignature(payload, signPayload(payload, secret), secret))
	assert.ErrorIs(t, VerifyWebhookSignature(payload, signPayload(payload, "wrong-secret"), secret), ErrInvalidSignature)
	assert.ErrorIs(t, VerifyWebhookSignature(payload, "", secret), ErrInvalidSignature)
	assert.ErrorIs(t, VerifyWebhookSignature([]byte("tampered"), signPayload(payload, secret), secret), ErrInvalidSignature)
}

func TestParseWebhookEvent(t *testing.T) {
	secret := "whsec_test_secret"
	payload := []byte(`{
		"id": "evt_1",
		"type": "analysis.flagged",
		"created_at": "2026-08-01T10:30:00Z",
		"data": {"risk_level": "high", "session_id": "sess_9"}
	}`)

	event, err := ParseWebhookEvent(payload, signPayload(payload, secret), secret)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, WebhookEventAnalysisFlagged, event.Type)

	risk, ok := event.Data["risk_level"].AsString()
	assert.True(t, ok)
	assert.Equal(t, "high", risk)
}

func TestParseWebhookEventBadSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	_, err := ParseWebhookEvent(payload, "deadbeef", "whsec_test_secret")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCreateWebhook(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webhooks", r.URL.Path)

		var req CreateWebhookRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com/hooks", req.URL)
		assert.Equal(t, []WebhookEventType{WebhookEventAnalysisFlagged}, req.Events)

		w.Write([]byte(`{
			"id": "wh_1",
			"url": "https://example.com/hooks",
			"events": ["analysis.flagged"],
			"secret": "whsec_abc",
			"active": true,
			"created_at": "2026-08-01T10:00:00Z"
		}`))
	}))

	wh, err := client.CreateWebhook(context.Background(), &CreateWebhookRequest{
		URL:    "https://example.com/hooks",
		Events: []WebhookEventType{WebhookEventAnalysisFlagged},
	})
	require.NoError(t, err)
	assert.Equal(t, "wh_1", wh.ID)
	assert.Equal(t, "whsec_abc", wh.Secret)
	assert.True(t, wh.Active)
}

func TestCreateWebhookValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := client.CreateWebhook(context.Background(), nil)
	assert.Error(t, err)

	_, err = client.CreateWebhook(context.Background(), &CreateWebhookRequest{URL: "https://example.com"})
	assert.Error(t, err, "events are required")
}

func TestListWebhooks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/webhooks", r.URL.Path)
		w.Write([]byte(`{"webhooks":[{"id":"wh_1","url":"https://a.example"},{"id":"wh_2","url":"https://b.example"}]}`))
	}))

	hooks, err := client.ListWebhooks(context.Background())
	require.NoError(t, err)
	require.Len(t, hooks, 2)
	assert.Equal(t, "wh_1", hooks[0].ID)
	assert.Equal(t, "wh_2", hooks[1].ID)
}

func TestUpdateAndDeleteWebhook(t *testing.T) {
	active := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/webhooks/wh_1", r.URL.Path)
			var req UpdateWebhookRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Active)
			assert.False(t, *req.Active)
			w.Write([]byte(`{"id":"wh_1","active":false}`))
		case http.MethodDelete:
			assert.Equal(t, "/webhooks/wh_1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	wh, err := client.UpdateWebhook(context.Background(), "wh_1", &UpdateWebhookRequest{
		URL:    "https://example.com/hooks",
		Events: []WebhookEventType{WebhookEventReportCreated},
		Active: &active,
	})
	require.NoError(t, err)
	assert.False(t, wh.Active)

	require.NoError(t, client.DeleteWebhook(context.Background(), "wh_1"))
}

func TestTestWebhook(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webhooks/wh_1/test", r.URL.Path)
		w.Write([]byte(`{"delivered":true}`))
	}))

	assert.NoError(t, client.TestWebhook(context.Background(), "wh_1"))
}
