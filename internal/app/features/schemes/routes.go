// internal/app/features/schemes/routes.go
package schemes

import (
	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the scheme catalog endpoints under whatever base path the
// caller chooses (typically "/api/schemes" from bootstrap). Browsing is
// public; maintenance requires an authenticated group.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireGroup)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
