// internal/app/features/groups/routes.go
package groups

import (
	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the group directory endpoints under whatever base path the
// caller chooses (typically "/api/groups" from bootstrap).
//
// Lookup, registration and the member listing are public; only updating a
// group requires its own session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/code/{code}", h.HandleGetByCode)
	r.Get("/{id}", h.HandleGet)
	// The {id} segment carries the group code here; chi wants a single
	// param name per position.
	r.Get("/{id}/users", h.HandleListMembers)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireGroup)
		pr.Put("/{id}", h.HandleUpdate)
	})

	return r
}
