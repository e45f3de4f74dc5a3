// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sayamjn/SHG/internal/app/policy/grouppolicy"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	"github.com/sayamjn/SHG/internal/app/system/auth"
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

// HandleList handles GET /api/users.
//
// The listing is scoped to the caller's own group and supports the same
// filter, sort and pagination parameters as the public group member
// listing.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sg, ok := auth.CurrentGroup(r)
	if !ok {
		httpapi.Unauthorized(w, "Not authorized to access this route")
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, total, err := h.Members.ListByGroup(ctx, sg.ID, f, o)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "member list failed", err)
		return
	}
	if list == nil {
		list = []models.Member{}
	}
	httpapi.OKPage(w, list, len(list), httpapi.NewPageInfo(o.Page, o.Limit, total))
}

// HandleGet handles GET /api/users/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.URLObjectID(r, "id")
	if !ok {
		httpapi.NotFound(w, "Member not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Member not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "member get failed", err)
		return
	}
	if !grouppolicy.OwnsMember(r, m) {
		httpapi.Forbidden(w, "Not authorized to view this member")
		return
	}
	httpapi.OK(w, m)
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
