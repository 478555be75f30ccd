package models

import "github.com/burksnli/kripto-haber-backend/internal/news"

// UpdateNewsRequest is the request body for PUT /api/news/{id}.
// All fields are optional; only supplied fields are applied.
type UpdateNewsRequest struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
	Emoji *string `json:"emoji,omitempty"`
}

// Fields converts the request into the partial-update value applied by the
// feed store.
func (r *UpdateNewsRequest) Fields() news.UpdateFields {
	return news.UpdateFields{
		Title: r.Title,
		Body:  r.Body,
		Emoji: r.Emoji,
	}
}

// NewsListResponse is the response body for GET /api/news.
type NewsListResponse struct {
	OK    bool         `json:"ok"`
	Count int          `json:"count"`
	News  []*news.Item `json:"news"`
}

// NewsItemResponse is the response body for PUT /api/news/{id}.
type NewsItemResponse struct {
	OK   bool       `json:"ok"`
	ID   string     `json:"id"`
	News *news.Item `json:"news"`
}

// NewsDeletedResponse is the response body for DELETE /api/news/{id}.
type NewsDeletedResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}
