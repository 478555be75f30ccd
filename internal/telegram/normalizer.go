package telegram

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/burksnli/kripto-haber-backend/internal/news"
)

const (
	// SourceName is the provenance tag stamped on every normalized item.
	SourceName = "telegram"

	// DefaultTitle is used when the first line of the message is empty.
	DefaultTitle = "New Item"
)

// Normalize maps a raw Telegram message into a canonical news item. It is
// pure: the caller supplies the ingestion instant. A message without text
// yields nil, which means "nothing to ingest" and is not an error.
//
// The first line of the text becomes the title (or DefaultTitle when blank),
// the remaining lines joined by newline become the body; a single-line
// message uses the full text as both. The ID is synthesized from the
// provider's message identifier plus the ingestion instant, so redelivered
// webhooks collapse onto the same row only at the storage upsert level.
func Normalize(msg *Message, now time.Time) *news.Item {
	if msg == nil {
		return nil
	}

	text := msg.Body()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	title := strings.TrimSpace(lines[0])
	if title == "" {
		title = DefaultTitle
	}

	body := text
	if len(lines) > 1 {
		body = strings.Join(lines[1:], "\n")
	}

	raw, _ := json.Marshal(msg)

	return &news.Item{
		ID:         fmt.Sprintf("tg-%d-%d", msg.MessageID, now.UnixMilli()),
		Title:      title,
		Body:       body,
		Timestamp:  time.Unix(msg.Date, 0).UTC(),
		Source:     SourceName,
		Emoji:      news.DefaultEmoji,
		RawMessage: string(raw),
	}
}
