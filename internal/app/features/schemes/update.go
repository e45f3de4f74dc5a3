// internal/app/features/schemes/update.go
package schemes

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate handles PUT /api/schemes/{id}.
//
// Content fields are replaced with the submitted values. Newly attached
// documents replace the existing list and the superseded files are
// removed; a request without attachments keeps the current documents.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.URLObjectID(r, "id")
	if !ok {
		httpapi.NotFound(w, "Scheme not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sc, err := h.Schemes.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Scheme not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "scheme update: lookup failed", err)
		return
	}

	f, ok := parseSchemeForm(w, r)
	if !ok {
		return
	}
	f.sanitize()
	if v := f.validate(); !v.OK() {
		httpapi.ValidationFailed(w, v.Errors())
		return
	}
	if len(f.documents) > uploads.MaxDocuments {
		httpapi.BadRequest(w, uploads.ErrTooManyDocuments.Error())
		return
	}

	docs, stored, ok := h.storeDocuments(ctx, w, r, f.documents)
	if !ok {
		return
	}

	f.apply(&sc)
	var superseded []string
	if len(f.documents) > 0 {
		for _, d := range sc.Documents {
			superseded = append(superseded, d.File)
		}
		sc.Documents = docs
	}

	if err := h.Schemes.Update(ctx, id, sc); err != nil {
		for _, p := range stored {
			h.Uploader.Remove(ctx, p)
		}
		h.ErrLog.LogServerError(w, r, "scheme update failed", err)
		return
	}

	// The record now references the new files only.
	for _, p := range superseded {
		h.Uploader.Remove(ctx, p)
	}

	updated, err := h.Schemes.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "scheme reload failed", err)
		return
	}
	httpapi.OK(w, updated)
}
