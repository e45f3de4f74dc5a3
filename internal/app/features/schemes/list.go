// internal/app/features/schemes/list.go
package schemes

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	schemestore "github.com/sayamjn/SHG/internal/app/store/schemes"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// HandleList handles GET /api/schemes.
//
// Query parameters:
//
//	search      free-text search over title, description, eligibility, tags
//	            ("q" is accepted as an alias)
//	department  exact match
//	tags        comma-separated; matches schemes carrying any listed tag
//	page, limit pagination (defaults 1 and 10)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "search")
	if q == "" {
		q = query.Get(r, "q")
	}
	f := schemestore.SearchFilter{
		Query:      q,
		Department: query.Get(r, "department"),
	}
	if raw := query.Get(r, "tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, total, err := h.Schemes.Search(ctx, f, page, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "scheme search failed", err)
		return
	}
	if list == nil {
		list = []models.Scheme{}
	}
	httpapi.OKPage(w, list, len(list), httpapi.NewPageInfo(page, limit, total))
}

// HandleGet handles GET /api/schemes/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.URLObjectID(r, "id")
	if !ok {
		httpapi.NotFound(w, "Scheme not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sc, err := h.Schemes.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Scheme not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "scheme get failed", err)
		return
	}
	httpapi.OK(w, sc)
}

func queryInt(r *http.Request, name string, def int) int {
	s := query.Get(r, name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
