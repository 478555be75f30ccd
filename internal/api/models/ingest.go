package models

import "github.com/burksnli/kripto-haber-backend/internal/news"

// WebhookResponse is the response body for POST /api/telegram-webhook.
// The provider only needs an acknowledgement; item details stay internal.
type WebhookResponse struct {
	OK bool `json:"ok"`
}

// PollResponse is the response body for GET /api/telegram-poll.
type PollResponse struct {
	OK               bool  `json:"ok"`
	UpdatesProcessed int   `json:"updates_processed"`
	LastUpdateID     int64 `json:"last_update_id"`
}

// TestMessageRequest is the request body for POST /api/telegram-test.
// It injects a synthetic provider message into the ingestion pipeline.
type TestMessageRequest struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text"`
}

// TestMessageResponse echoes the normalized item produced from a synthetic
// message, or ok with a nil item when the message carried no text.
type TestMessageResponse struct {
	OK   bool       `json:"ok"`
	News *news.Item `json:"news,omitempty"`
}
