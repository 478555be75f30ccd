package middleware

import (
	"net/http"

	"github.com/burksnli/kripto-haber-backend/internal/admin"
	"github.com/burksnli/kripto-haber-backend/internal/api/models"
)

// AdminTokenHeader carries the admin session token on mutating requests.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth creates middleware that gates a route behind an active admin
// session. Only tokens minted by a successful login that have not been
// logged out or expired pass verification.
func AdminAuth(sessions *admin.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AdminTokenHeader)
			if token == "" {
				writeUnauthorized(w, r, "missing admin token")
				return
			}

			if err := sessions.Verify(token); err != nil {
				writeUnauthorized(w, r, "invalid or expired admin session")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized writes a 401 Unauthorized response.
// This is implemented directly here to avoid import cycle with response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}
