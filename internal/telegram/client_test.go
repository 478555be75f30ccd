package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burksnli/kripto-haber-backend/internal/provider/resilience"
	"github.com/burksnli/kripto-haber-backend/internal/telegram"
)

func TestClient_GetUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getUpdates", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("offset"))

		response := map[string]interface{}{
			"ok": true,
			"result": []map[string]interface{}{
				{
					"update_id": 7,
					"message": map[string]interface{}{
						"message_id": 1,
						"text":       "BTC breaks 100k\nmarkets react",
						"date":       1700000000,
						"chat":       map[string]interface{}{"id": 42, "type": "channel"},
					},
				},
				{
					"update_id": 8,
					"channel_post": map[string]interface{}{
						"message_id": 2,
						"text":       "ETH merge anniversary",
						"date":       1700000100,
						"chat":       map[string]interface{}{"id": 42, "type": "channel"},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := telegram.NewClient(telegram.ClientConfig{
		BotToken:   "test-token",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	updates, err := client.GetUpdates(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, int64(7), updates[0].UpdateID)
	require.NotNil(t, updates[0].Content())
	assert.Equal(t, "BTC breaks 100k\nmarkets react", updates[0].Content().Text)

	// Channel posts carry the message in a different field.
	require.NotNil(t, updates[1].Content())
	assert.Equal(t, int64(2), updates[1].Content().MessageID)
}

func TestClient_GetUpdates_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": []interface{}{}})
	}))
	defer server.Close()

	client := telegram.NewClient(telegram.ClientConfig{
		BotToken:   "test-token",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	updates, err := client.GetUpdates(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestClient_GetUpdates_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "description": "Unauthorized"})
	}))
	defer server.Close()

	client := telegram.NewClient(telegram.ClientConfig{
		BotToken:   "bad-token",
		BaseURL:    server.URL,
		HTTPClient: resilience.NewClient(resilience.DefaultClientConfig("test")),
	})

	_, err := client.GetUpdates(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestClient_Configured(t *testing.T) {
	assert.False(t, telegram.NewClient(telegram.ClientConfig{}).Configured())
	assert.True(t, telegram.NewClient(telegram.ClientConfig{BotToken: "x"}).Configured())
}
