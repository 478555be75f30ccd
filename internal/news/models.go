// Package news provides the bounded crypto-news feed: the canonical item
// model, durable repositories, and the Store that owns the in-memory mirror.
package news

import (
	"errors"
	"time"
)

// Repository errors.
var (
	ErrItemNotFound = errors.New("news item not found")
)

// MaxItems is the maximum number of items the feed holds. Older items are
// evicted from both the durable table and the mirror once the bound is hit.
const MaxItems = 50

// DefaultEmoji is the display glyph assigned to freshly ingested items.
const DefaultEmoji = "📰"

// Item is the canonical unit of the feed.
type Item struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
	Emoji      string    `json:"emoji"`
	RawMessage string    `json:"rawMessage,omitempty"`
}

// UpdateFields carries the admin-mutable fields. A nil field is left
// untouched; a non-nil field overwrites the stored value.
type UpdateFields struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
	Emoji *string `json:"emoji,omitempty"`
}

// Empty reports whether no field is set.
func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Body == nil && f.Emoji == nil
}

// Apply overwrites the supplied fields on the item.
func (f UpdateFields) Apply(item *Item) {
	if f.Title != nil {
		item.Title = *f.Title
	}
	if f.Body != nil {
		item.Body = *f.Body
	}
	if f.Emoji != nil {
		item.Emoji = *f.Emoji
	}
}
