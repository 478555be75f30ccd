package telegram_test

import (
	"testing"
	"time"

	"github.com/burksnli/kripto-haber-backend/internal/telegram"
)

func TestNormalize_MultiLineMessage(t *testing.T) {
	msg := &telegram.Message{
		MessageID: 1,
		Text:      "Title\nLine2\nLine3",
		Date:      1700000000,
	}

	item := telegram.Normalize(msg, time.Now())
	if item == nil {
		t.Fatal("expected item, got nil")
	}

	if item.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", item.Title)
	}
	if item.Body != "Line2\nLine3" {
		t.Errorf("expected body %q, got %q", "Line2\nLine3", item.Body)
	}
	if got := item.Timestamp.Unix(); got != 1700000000 {
		t.Errorf("expected timestamp 1700000000, got %d", got)
	}
	if item.Source != telegram.SourceName {
		t.Errorf("expected source %q, got %q", telegram.SourceName, item.Source)
	}
}

func TestNormalize_SingleLineMessage(t *testing.T) {
	msg := &telegram.Message{
		MessageID: 2,
		Text:      "OnlyLine",
		Date:      1700000000,
	}

	item := telegram.Normalize(msg, time.Now())
	if item == nil {
		t.Fatal("expected item, got nil")
	}

	if item.Title != "OnlyLine" {
		t.Errorf("expected title %q, got %q", "OnlyLine", item.Title)
	}
	if item.Body != "OnlyLine" {
		t.Errorf("expected body to fall back to full text, got %q", item.Body)
	}
}

func TestNormalize_EmptyTextYieldsNothing(t *testing.T) {
	if item := telegram.Normalize(nil, time.Now()); item != nil {
		t.Errorf("expected nil for nil message, got %+v", item)
	}

	msg := &telegram.Message{MessageID: 3, Text: "   ", Date: 1700000000}
	if item := telegram.Normalize(msg, time.Now()); item != nil {
		t.Errorf("expected nil for blank text, got %+v", item)
	}
}

func TestNormalize_BlankFirstLineUsesDefaultTitle(t *testing.T) {
	msg := &telegram.Message{
		MessageID: 4,
		Text:      "\nbody after blank line",
		Date:      1700000000,
	}

	item := telegram.Normalize(msg, time.Now())
	if item == nil {
		t.Fatal("expected item, got nil")
	}
	if item.Title != telegram.DefaultTitle {
		t.Errorf("expected default title %q, got %q", telegram.DefaultTitle, item.Title)
	}
	if item.Body != "body after blank line" {
		t.Errorf("unexpected body %q", item.Body)
	}
}

func TestNormalize_CaptionFallback(t *testing.T) {
	msg := &telegram.Message{
		MessageID: 5,
		Caption:   "Photo caption",
		Date:      1700000000,
	}

	item := telegram.Normalize(msg, time.Now())
	if item == nil {
		t.Fatal("expected item from caption, got nil")
	}
	if item.Title != "Photo caption" {
		t.Errorf("expected caption title, got %q", item.Title)
	}
}

func TestNormalize_IDIncludesMessageIDAndInstant(t *testing.T) {
	msg := &telegram.Message{MessageID: 42, Text: "hello", Date: 1700000000}
	now := time.UnixMilli(1700000123456)

	item := telegram.Normalize(msg, now)
	if item == nil {
		t.Fatal("expected item, got nil")
	}

	want := "tg-42-1700000123456"
	if item.ID != want {
		t.Errorf("expected id %q, got %q", want, item.ID)
	}
	if item.Emoji == "" {
		t.Error("expected default emoji to be set")
	}
	if item.RawMessage == "" {
		t.Error("expected raw message to be retained")
	}
}
