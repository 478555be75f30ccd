// Package telegram provides the Telegram Bot API client and the normalizer
// that maps raw bot messages into canonical news items.
package telegram

// Update is a single entry from the Bot API update stream.
type Update struct {
	UpdateID    int64    `json:"update_id"`
	Message     *Message `json:"message,omitempty"`
	ChannelPost *Message `json:"channel_post,omitempty"`
}

// Content returns the message carried by the update, preferring direct
// messages over channel posts. Returns nil if the update carries neither.
func (u *Update) Content() *Message {
	if u.Message != nil {
		return u.Message
	}
	return u.ChannelPost
}

// Message is a raw Telegram message payload.
type Message struct {
	MessageID int64  `json:"message_id"`
	Text      string `json:"text,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Date      int64  `json:"date"`
	Chat      Chat   `json:"chat"`
}

// Body returns the textual content of the message. Media messages carry
// their text in the caption field instead.
func (m *Message) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID    int64  `json:"id"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// getUpdatesResponse is the Bot API envelope for getUpdates.
type getUpdatesResponse struct {
	OK          bool     `json:"ok"`
	Result      []Update `json:"result"`
	Description string   `json:"description,omitempty"`
}
