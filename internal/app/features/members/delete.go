// internal/app/features/members/delete.go
package members

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/policy/grouppolicy"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /api/users/{id}.
//
// Removes the member, decrements the owning group's member count, and
// cleans up the stored photo. Photo cleanup is best effort: a failed file
// delete never resurrects the record.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.URLObjectID(r, "id")
	if !ok {
		httpapi.NotFound(w, "Member not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Member not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "member delete: lookup failed", err)
		return
	}
	if !grouppolicy.OwnsMember(r, m) {
		httpapi.Forbidden(w, "Not authorized to delete this member")
		return
	}

	if err := h.Members.Delete(ctx, m); err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost a race with a concurrent delete; the member is gone
			// either way.
			httpapi.NotFound(w, "Member not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "member delete failed", err)
		return
	}

	if m.HasPhoto() {
		h.Uploader.Remove(ctx, m.Photo)
	}

	h.Log.Info("member deleted", zap.String("member", m.ID.Hex()))
	httpapi.OK(w, map[string]any{})
}
