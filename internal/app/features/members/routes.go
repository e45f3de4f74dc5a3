// internal/app/features/members/routes.go
package members

import (
	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the member registry endpoints under whatever base path the
// caller chooses (typically "/api/users" from bootstrap).
//
// Registration is public; reading and mutating existing members requires
// the owning group's session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleRegister)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireGroup)

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
