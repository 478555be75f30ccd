// Package push provides the Expo push gateway client and the best-effort
// fan-out of new feed items to registered devices.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/provider/resilience"
)

const (
	// ProviderName identifies the Expo push gateway provider.
	ProviderName = "expo-push"

	// DefaultGatewayURL is the Expo push send endpoint.
	DefaultGatewayURL = "https://exp.host/--/api/v2/push/send"
)

// Message is a single push notification addressed to one device token.
type Message struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Sound string            `json:"sound,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// Ticket is the gateway's per-message receipt.
type Ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// sendResponse is the gateway envelope for a batch send.
type sendResponse struct {
	Data []Ticket `json:"data"`
}

// ClientConfig holds configuration for the Expo push client.
type ClientConfig struct {
	// GatewayURL is the push send endpoint (optional, defaults to Expo).
	GatewayURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Expo push gateway client.
type Client struct {
	gatewayURL string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Expo push client.
func NewClient(cfg ClientConfig) *Client {
	gatewayURL := cfg.GatewayURL
	if gatewayURL == "" {
		gatewayURL = DefaultGatewayURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		gatewayURL: gatewayURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// SendBatch submits all messages to the gateway in a single call and returns
// the per-message tickets.
func (c *Client) SendBatch(ctx context.Context, messages []Message) ([]Ticket, error) {
	body, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("encoding push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return envelope.Data, nil
}
