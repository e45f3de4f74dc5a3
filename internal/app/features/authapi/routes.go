// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints under whatever base path the caller
// chooses (typically "/api/auth" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Get("/logout", h.HandleLogout)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireGroup)
		pr.Get("/me", h.HandleMe)
	})

	return r
}
