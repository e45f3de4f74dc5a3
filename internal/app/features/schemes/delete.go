// internal/app/features/schemes/delete.go
package schemes

import (
	"context"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /api/schemes/{id}.
//
// The record goes first, then the attached files, best effort. A file that
// refuses to die is logged and left for a cleanup sweep.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
		h.ErrLog.LogServerError(w, r, "scheme delete: lookup failed", err)
		return
	}

	n, err := h.Schemes.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "scheme delete failed", err)
		return
	}
	if n == 0 {
		httpapi.NotFound(w, "Scheme not found")
		return
	}

	for _, d := range sc.Documents {
		h.Uploader.Remove(ctx, d.File)
	}

	h.Log.Info("scheme deleted", zap.String("scheme", sc.ID.Hex()))
	httpapi.OK(w, map[string]any{})
}
