// internal/app/features/members/register.go
package members

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"github.com/sayamjn/SHG/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleRegister handles POST /api/users.
//
// Registration is public: anyone with a valid group code can enroll a
// member into that group, so the request must carry the code in its
// "group" field and a photo attachment. The photo is stored before the
// record is written and removed again if the write fails, so a rejected
// registration leaves nothing behind.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	f, ok := parseMemberForm(w, r)
	if !ok {
		return
	}

	v := f.validate()
	v.Require("group", f.Group, "Please add a group code")
	if f.photo == nil {
		v.Add("photo", "Please add a photo")
	}
	if !v.OK() {
		httpapi.ValidationFailed(w, v.Errors())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Groups.GetByCode(ctx, f.Group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "member register: group lookup failed", err)
		return
	}

	m := models.Member{
		GroupID: g.ID,
		Active:  true,
	}
	f.apply(&m)

	info, err := h.Uploader.PutPhoto(ctx, f.photo)
	if err != nil {
		switch err {
		case uploads.ErrPhotoTooLarge, uploads.ErrPhotoType:
			httpapi.BadRequest(w, err.Error())
		default:
			h.ErrLog.LogServerError(w, r, "member register: photo upload failed", err)
		}
		return
	}
	m.Photo = info.Path

	created, err := h.Members.Create(ctx, m)
	if err != nil {
		// Roll back the stored photo so a failed insert leaves no orphan.
		h.Uploader.Remove(ctx, m.Photo)
		h.ErrLog.LogServerError(w, r, "member register failed", err)
		return
	}

	h.Log.Info("member registered",
		zap.String("member", created.ID.Hex()),
		zap.String("group", g.Code))
	httpapi.Created(w, created)
}
