package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/burksnli/kripto-haber-backend/internal/api/models"
	"github.com/burksnli/kripto-haber-backend/internal/api/response"
	"github.com/burksnli/kripto-haber-backend/internal/device"
)

// DeviceHandler handles push token registration.
type DeviceHandler struct {
	registry *device.Registry
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(registry *device.Registry) *DeviceHandler {
	return &DeviceHandler{registry: registry}
}

// RegisterToken handles POST /api/register-push-token. Registering an
// already-known token succeeds without growing the registry.
func (h *DeviceHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	if err := h.registry.Register(req.Token); err != nil {
		if errors.Is(err, device.ErrTokenMissing) {
			response.BadRequest(w, r, "token is required", []models.FieldError{
				{Field: "token", Message: "must not be empty", Code: "required"},
			})
			return
		}
		response.InternalError(w, r, "failed to register push token")
		return
	}

	response.JSON(w, r, http.StatusOK, models.RegisterTokenResponse{
		OK:           true,
		TotalDevices: h.registry.Count(),
	})
}
