package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/burksnli/kripto-haber-backend/internal/api/models"
	"github.com/burksnli/kripto-haber-backend/internal/api/response"
	"github.com/burksnli/kripto-haber-backend/internal/ingest"
	"github.com/burksnli/kripto-haber-backend/internal/telegram"
)

// IngestHandler handles both ingestion ingress paths: provider webhook
// pushes and manually triggered polling.
type IngestHandler struct {
	service *ingest.Service
	logger  zerolog.Logger
	// botConfigured reports whether a provider bot token was supplied at
	// startup; polling is rejected without one.
	botConfigured bool
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(service *ingest.Service, logger zerolog.Logger, botConfigured bool) *IngestHandler {
	return &IngestHandler{
		service:       service,
		logger:        logger,
		botConfigured: botConfigured,
	}
}

// Webhook handles POST /api/telegram-webhook - push ingestion. The provider
// redelivers on any non-2xx, so a malformed or empty update is acknowledged
// with ok as a no-op rather than rejected; only internal failures surface.
func (h *IngestHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn().Err(err).Msg("discarding malformed webhook update")
		response.JSON(w, r, http.StatusOK, models.WebhookResponse{OK: true})
		return
	}

	if _, err := h.service.IngestMessage(r.Context(), update.Content()); err != nil {
		response.InternalError(w, r, "failed to ingest update")
		return
	}

	response.JSON(w, r, http.StatusOK, models.WebhookResponse{OK: true})
}

// Poll handles GET /api/telegram-poll - pull ingestion from the provider's
// update queue, advancing the offset cursor.
func (h *IngestHandler) Poll(w http.ResponseWriter, r *http.Request) {
	if !h.botConfigured {
		response.BadRequest(w, r, "provider bot token is not configured", nil)
		return
	}

	result, err := h.service.Poll(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to poll provider updates")
		return
	}

	response.JSON(w, r, http.StatusOK, models.PollResponse{
		OK:               true,
		UpdatesProcessed: result.Processed,
		LastUpdateID:     result.LastUpdateID,
	})
}

// Test handles POST /api/telegram-test - synthetic ingestion that exercises
// the same normalize-store-notify pipeline as real provider traffic and
// echoes the resulting item.
func (h *IngestHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req models.TestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	msg := &telegram.Message{
		MessageID: req.MessageID,
		Text:      req.Text,
		Date:      time.Now().Unix(),
	}

	item, err := h.service.IngestMessage(r.Context(), msg)
	if err != nil {
		response.InternalError(w, r, "failed to ingest test message")
		return
	}

	response.JSON(w, r, http.StatusOK, models.TestMessageResponse{
		OK:   true,
		News: item,
	})
}
