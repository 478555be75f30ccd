package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/burksnli/kripto-haber-backend/internal/api/models"
	"github.com/burksnli/kripto-haber-backend/internal/api/response"
	"github.com/burksnli/kripto-haber-backend/internal/news"
)

// NewsHandler handles feed read and admin mutation endpoints.
type NewsHandler struct {
	store *news.Store
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(store *news.Store) *NewsHandler {
	return &NewsHandler{store: store}
}

// ListNews handles GET /api/news - returns the feed, newest first.
func (h *NewsHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	items := h.store.List()
	response.JSON(w, r, http.StatusOK, models.NewsListResponse{
		OK:    true,
		Count: len(items),
		News:  items,
	})
}

// UpdateNews handles PUT /api/news/{id} - partial update of title, body
// and/or emoji. Omitted fields keep their stored values.
func (h *NewsHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	item, err := h.store.Update(r.Context(), id, req.Fields())
	if err != nil {
		if errors.Is(err, news.ErrItemNotFound) {
			response.NotFound(w, r, "news item not found")
			return
		}
		response.InternalError(w, r, "failed to update news item")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewsItemResponse{
		OK:   true,
		ID:   id,
		News: item,
	})
}

// DeleteNews handles DELETE /api/news/{id}.
func (h *NewsHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, news.ErrItemNotFound) {
			response.NotFound(w, r, "news item not found")
			return
		}
		response.InternalError(w, r, "failed to delete news item")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewsDeletedResponse{
		OK: true,
		ID: id,
	})
}
