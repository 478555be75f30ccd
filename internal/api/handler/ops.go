// Package handler provides HTTP handlers for the Kripto Haber API.
package handler

import (
	"net/http"
	"time"

	"github.com/burksnli/kripto-haber-backend/internal/api/models"
	"github.com/burksnli/kripto-haber-backend/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version string
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version string) *OpsHandler {
	return &OpsHandler{version: version}
}

// HealthCheck handles GET /health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.HealthResponse{
		OK:        true,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}
