// internal/app/features/schemes/create.go
package schemes

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"github.com/sayamjn/SHG/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/schemes.
//
// Attached documents are stored first; if the record insert then fails,
// the stored files are removed again.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	docs, stored, ok := h.storeDocuments(ctx, w, r, f.documents)
	if !ok {
		return
	}

	sc := models.Scheme{Documents: docs}
	f.apply(&sc)

	created, err := h.Schemes.Create(ctx, sc)
	if err != nil {
		for _, p := range stored {
			h.Uploader.Remove(ctx, p)
		}
		h.ErrLog.LogServerError(w, r, "scheme create failed", err)
		return
	}

	h.Log.Info("scheme created", zap.String("scheme", created.ID.Hex()), zap.String("title", created.Title))
	httpapi.Created(w, created)
}

// storeDocuments uploads every attached document. On any failure the files
// stored so far are removed and the response is already written; callers
// just return.
func (h *Handler) storeDocuments(ctx context.Context, w http.ResponseWriter, r *http.Request, fhs []*multipart.FileHeader) ([]models.SchemeDocument, []string, bool) {
	docs := []models.SchemeDocument{}
	var stored []string
	for _, fh := range fhs {
		info, err := h.Uploader.PutDocument(ctx, fh)
		if err != nil {
			for _, p := range stored {
				h.Uploader.Remove(ctx, p)
			}
			if err == uploads.ErrDocumentTooLarge {
				httpapi.BadRequest(w, err.Error())
			} else {
				httpapi.BadRequest(w, "Could not store document "+fh.Filename)
			}
			return nil, nil, false
		}
		stored = append(stored, info.Path)
		docs = append(docs, models.SchemeDocument{
			Name:     fh.Filename,
			File:     info.Path,
			FileType: info.ContentType,
			FileSize: info.Size,
		})
	}
	return docs, stored, true
}
