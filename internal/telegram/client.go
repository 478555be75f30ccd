package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/provider/resilience"
)

const (
	// ProviderName identifies the Telegram Bot API provider.
	ProviderName = "telegram"

	// DefaultBaseURL is the Telegram Bot API base URL.
	DefaultBaseURL = "https://api.telegram.org"
)

// ClientConfig holds configuration for the Telegram client.
type ClientConfig struct {
	// BotToken is the Telegram bot token (required).
	BotToken string

	// BaseURL is the API base URL (optional, defaults to the Bot API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Telegram Bot API client.
type Client struct {
	botToken   string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Telegram client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		botToken:   cfg.BotToken,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Configured reports whether a bot token is set.
func (c *Client) Configured() bool {
	return c.botToken != ""
}

// GetUpdates fetches pending updates from the Bot API starting at the given
// offset cursor. A response with zero results is not an error.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d", c.baseURL, c.botToken, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope getUpdatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if !envelope.OK {
		return nil, fmt.Errorf("telegram api error: %s", envelope.Description)
	}

	return envelope.Result, nil
}
