// internal/app/features/members/update.go
package members

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/policy/grouppolicy"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"github.com/sayamjn/SHG/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate handles PUT /api/users/{id}.
//
// Only the owning group may update a member; the group binding itself never
// changes. A new photo replaces the old one, and the old file is removed
// best effort after the record is rewritten.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
		h.ErrLog.LogServerError(w, r, "member update: lookup failed", err)
		return
	}
	if !grouppolicy.OwnsMember(r, m) {
		httpapi.Forbidden(w, "Not authorized to update this member")
		return
	}

	f, ok := parseMemberForm(w, r)
	if !ok {
		return
	}
	if v := f.validate(); !v.OK() {
		httpapi.ValidationFailed(w, v.Errors())
		return
	}

	oldPhoto := m.Photo
	f.apply(&m)

	if f.photo != nil {
		info, err := h.Uploader.PutPhoto(ctx, f.photo)
		if err != nil {
			switch err {
			case uploads.ErrPhotoTooLarge, uploads.ErrPhotoType:
				httpapi.BadRequest(w, err.Error())
			default:
				h.ErrLog.LogServerError(w, r, "member update: photo upload failed", err)
			}
			return
		}
		m.Photo = info.Path
	}

	if err := h.Members.Update(ctx, id, m); err != nil {
		if f.photo != nil {
			h.Uploader.Remove(ctx, m.Photo)
		}
		h.ErrLog.LogServerError(w, r, "member update failed", err)
		return
	}

	if f.photo != nil && oldPhoto != "" && oldPhoto != models.DefaultPhoto {
		h.Uploader.Remove(ctx, oldPhoto)
	}

	updated, err := h.Members.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "member reload failed", err)
		return
	}
	httpapi.OK(w, updated)
}
