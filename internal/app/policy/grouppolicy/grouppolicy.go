// Package grouppolicy decides which group records an authenticated group may
// mutate.
//
// Authorization rules:
//   - A group manages only its own record. There is no admin override role.
//   - Members belong to exactly one group; only that group may update or
//     delete them.
//   - Scheme maintenance requires authentication but is not group-scoped.
package grouppolicy

import (
	"net/http"

	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/sayamjn/SHG/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanManageGroup reports whether the current request's group can modify the
// group with the given id.
func CanManageGroup(r *http.Request, groupID primitive.ObjectID) bool {
	sg, ok := auth.CurrentGroup(r)
	if !ok {
		return false
	}
	return sg.ID == groupID
}

// OwnsMember reports whether the current request's group owns the member.
func OwnsMember(r *http.Request, m models.Member) bool {
	return CanManageGroup(r, m.GroupID)
}
