// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleList handles GET /api/groups.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Groups.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "group list failed", err)
		return
	}
	httpapi.OKList(w, list, len(list))
}

// HandleGet handles GET /api/groups/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.URLObjectID(r, "id")
	if !ok {
		httpapi.NotFound(w, "Group not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "group get failed", err)
		return
	}
	httpapi.OK(w, g)
}

// HandleGetByCode handles GET /api/groups/code/{code}.
//
// The lookup ignores case, so MUS001 and mus001 find the same group.
func (h *Handler) HandleGetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		httpapi.NotFound(w, "Group not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByCode(ctx, code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "group code lookup failed", err)
		return
	}
	httpapi.OK(w, g)
}
