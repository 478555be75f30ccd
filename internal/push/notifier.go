package push

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/device"
	"github.com/burksnli/kripto-haber-backend/internal/news"
)

// AnnouncementTitle is the fixed push caption for new feed items.
const AnnouncementTitle = "Kripto Haber 📰"

// Gateway is the outbound push transport used by the notifier.
type Gateway interface {
	SendBatch(ctx context.Context, messages []Message) ([]Ticket, error)
}

// Notifier fans a newly stored item out to every registered device.
//
// Delivery is best-effort and at-most-logged: gateway failures are swallowed
// here so that fan-out can never fail the ingestion request that triggered
// it. Notify deliberately returns nothing.
type Notifier struct {
	registry *device.Registry
	gateway  Gateway
	logger   zerolog.Logger
}

// NotifierConfig holds configuration for the notifier.
type NotifierConfig struct {
	Registry *device.Registry
	Gateway  Gateway
	Logger   zerolog.Logger
}

// NewNotifier creates a new notifier.
func NewNotifier(cfg NotifierConfig) *Notifier {
	return &Notifier{
		registry: cfg.Registry,
		gateway:  cfg.Gateway,
		logger:   cfg.Logger,
	}
}

// Notify delivers the item to all registered devices as a single batch call.
// An empty registry is a no-op.
func (n *Notifier) Notify(ctx context.Context, item *news.Item) {
	tokens := n.registry.Tokens()
	if len(tokens) == 0 {
		n.logger.Debug().Str("item_id", item.ID).Msg("no devices registered, skipping fan-out")
		return
	}

	messages := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, Message{
			To:    token,
			Title: AnnouncementTitle,
			Body:  item.Title,
			Sound: "default",
			Data: map[string]string{
				"id":    item.ID,
				"title": item.Title,
				"body":  item.Body,
			},
		})
	}

	tickets, err := n.gateway.SendBatch(ctx, messages)
	if err != nil {
		n.logger.Error().
			Err(err).
			Str("item_id", item.ID).
			Int("devices", len(tokens)).
			Msg("push fan-out failed")
		return
	}

	failed := 0
	for _, ticket := range tickets {
		if ticket.Status != "ok" {
			failed++
		}
	}

	n.logger.Info().
		Str("item_id", item.ID).
		Int("devices", len(tokens)).
		Int("failed", failed).
		Msg("push fan-out completed")
}
