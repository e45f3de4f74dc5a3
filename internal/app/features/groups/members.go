// internal/app/features/groups/members.go
package groups

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// HandleListMembers handles GET /api/groups/{code}/users. The code match
// is case-insensitive, like the rest of the code lookups. The route
// registers the segment as {id} to share chi's param slot with the lookup
// routes.
//
// Query parameters:
//
//	name    substring filter on member name, case-insensitive
//	gender  exact match
//	role    exact match
//	sort    name | age | joinDate (default: insertion order)
//	order   asc | desc (default asc)
//	page    1-based page number
//	limit   page size, capped at 100
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByCode(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "member list: group lookup failed", err)
		return
	}

	f := memberstore.ListFilter{
		Name:   query.Get(r, "name"),
		Gender: query.Get(r, "gender"),
		Role:   query.Get(r, "role"),
	}
	o := memberstore.ListOptions{
		SortBy:   query.Get(r, "sort"),
		SortDesc: strings.EqualFold(query.Get(r, "order"), "desc"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", defaultPageLimit),
	}
	if o.Limit > maxPageLimit {
		o.Limit = maxPageLimit
	}

	list, total, err := h.Members.ListByGroup(ctx, g.ID, f, o)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "member list failed", err)
		return
	}
	if list == nil {
		list = []models.Member{}
	}

	httpapi.OKPage(w, list, len(list), httpapi.NewPageInfo(o.Page, o.Limit, total))
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
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
