package push_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/device"
	"github.com/burksnli/kripto-haber-backend/internal/news"
	"github.com/burksnli/kripto-haber-backend/internal/push"
)

// mockGateway is a mock push gateway for testing.
type mockGateway struct {
	batches [][]push.Message
	err     error
}

func (m *mockGateway) SendBatch(_ context.Context, messages []push.Message) ([]push.Ticket, error) {
	m.batches = append(m.batches, messages)
	if m.err != nil {
		return nil, m.err
	}
	tickets := make([]push.Ticket, len(messages))
	for i := range tickets {
		tickets[i] = push.Ticket{Status: "ok", ID: "ticket"}
	}
	return tickets, nil
}

func newItem() *news.Item {
	return &news.Item{
		ID:        "tg-1-1700000000000",
		Title:     "BTC breaks 100k",
		Body:      "markets react",
		Timestamp: time.Unix(1700000000, 0),
		Source:    "telegram",
		Emoji:     news.DefaultEmoji,
	}
}

func TestNotifier_SendsOneMessagePerToken(t *testing.T) {
	registry := device.NewRegistry()
	for _, token := range []string{"tok-A", "tok-B"} {
		if err := registry.Register(token); err != nil {
			t.Fatalf("registration failed: %v", err)
		}
	}

	gateway := &mockGateway{}
	notifier := push.NewNotifier(push.NotifierConfig{
		Registry: registry,
		Gateway:  gateway,
		Logger:   zerolog.Nop(),
	})

	notifier.Notify(context.Background(), newItem())

	if len(gateway.batches) != 1 {
		t.Fatalf("expected a single batch call, got %d", len(gateway.batches))
	}

	batch := gateway.batches[0]
	if len(batch) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(batch))
	}

	for _, msg := range batch {
		if msg.Title != push.AnnouncementTitle {
			t.Errorf("expected fixed announcement title, got %q", msg.Title)
		}
		if msg.Body != "BTC breaks 100k" {
			t.Errorf("expected item title as body, got %q", msg.Body)
		}
		if msg.Data["id"] != "tg-1-1700000000000" || msg.Data["body"] != "markets react" {
			t.Errorf("expected item payload in data, got %v", msg.Data)
		}
	}
}

func TestNotifier_EmptyRegistryIsNoOp(t *testing.T) {
	gateway := &mockGateway{}
	notifier := push.NewNotifier(push.NotifierConfig{
		Registry: device.NewRegistry(),
		Gateway:  gateway,
		Logger:   zerolog.Nop(),
	})

	notifier.Notify(context.Background(), newItem())

	if len(gateway.batches) != 0 {
		t.Errorf("expected no gateway calls for empty registry, got %d", len(gateway.batches))
	}
}

func TestNotifier_GatewayFailureIsSwallowed(t *testing.T) {
	registry := device.NewRegistry()
	if err := registry.Register("tok-A"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	gateway := &mockGateway{err: errors.New("gateway unreachable")}
	notifier := push.NewNotifier(push.NotifierConfig{
		Registry: registry,
		Gateway:  gateway,
		Logger:   zerolog.Nop(),
	})

	// Must not panic or surface the gateway error.
	notifier.Notify(context.Background(), newItem())

	if len(gateway.batches) != 1 {
		t.Errorf("expected one attempted batch, got %d", len(gateway.batches))
	}
}
