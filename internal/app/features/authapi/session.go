// internal/app/features/authapi/session.go
package authapi

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleMe handles GET /api/auth/me.
//
// Returns the full record of the authenticated group. The route is behind
// RequireGroup, so a missing session never reaches here.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	sg, ok := auth.CurrentGroup(r)
	if !ok {
		httpapi.Unauthorized(w, "Not authorized to access this route")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, sg.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.Unauthorized(w, "Not authorized to access this route")
			return
		}
		h.ErrLog.LogServerError(w, r, "me: group lookup failed", err)
		return
	}
	httpapi.OK(w, g)
}

// HandleLogout handles POST /api/auth/logout.
//
// Deletes the presented session. Logging out with an unknown or already
// deleted token still succeeds; the end state is the same.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r)
	if token != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		if err := h.Sessions.Delete(ctx, token); err != nil {
			h.ErrLog.LogServerError(w, r, "logout: session delete failed", err)
			return
		}
	}
	httpapi.OK(w, map[string]any{})
}
