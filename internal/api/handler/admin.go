package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/burksnli/kripto-haber-backend/internal/admin"
	"github.com/burksnli/kripto-haber-backend/internal/api/middleware"
	"github.com/burksnli/kripto-haber-backend/internal/api/models"
	"github.com/burksnli/kripto-haber-backend/internal/api/response"
)

// AdminHandler handles admin session endpoints.
type AdminHandler struct {
	sessions *admin.SessionManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sessions *admin.SessionManager) *AdminHandler {
	return &AdminHandler{sessions: sessions}
}

// Login handles POST /admin/login - exchanges the admin password for an
// opaque session token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	token, err := h.sessions.Login(req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidPassword) {
			response.Unauthorized(w, r, "invalid admin password")
			return
		}
		response.InternalError(w, r, "failed to create admin session")
		return
	}

	response.JSON(w, r, http.StatusOK, models.LoginResponse{
		OK:        true,
		Token:     token,
		ExpiresIn: int64(h.sessions.TTL().Seconds()),
	})
}

// Logout handles POST /admin/logout - revokes the presented session token
// immediately, independent of its remaining lifetime. The route sits behind
// AdminAuth, so the token is known to be active when we get here.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.AdminTokenHeader)

	if err := h.sessions.Logout(token); err != nil {
		response.Unauthorized(w, r, "invalid or expired admin session")
		return
	}

	response.JSON(w, r, http.StatusOK, models.LogoutResponse{OK: true})
}
