// internal/app/features/groups/update.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sayamjn/SHG/internal/app/policy/grouppolicy"
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/inputval"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type updateRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Country       string  `json:"country"`
	State         string  `json:"state"`
	District      string  `json:"district"`
	Taluka        string  `json:"taluka"`
	Ward          string  `json:"ward"`
	Village       string  `json:"village"`
	ContactPerson string  `json:"contactPerson"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	Password      string  `json:"password"`
}

// HandleUpdate handles PUT /api/groups/{id}.
//
// A group can only update its own record; the registration code is fixed at
// creation. Changing the password revokes every other session the group
// holds, so a stolen token dies with the old password.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.URLObjectID(r, "id")
	if !ok {
		httpapi.NotFound(w, "Group not found")
		return
	}
	if !grouppolicy.CanManageGroup(r, id) {
		httpapi.Forbidden(w, "Not authorized to update this group")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}

	v := inputval.New()
	if req.Password != "" {
		v.MinLen("password", req.Password, 6, "Password must be at least 6 characters")
	}
	if req.Email != nil {
		v.Email("email", *req.Email, "Please add a valid email")
	}
	if !v.OK() {
		httpapi.ValidationFailed(w, v.Errors())
		return
	}

	u := groupstore.InfoUpdate{
		Name:          req.Name,
		Address:       req.Address,
		Country:       req.Country,
		State:         req.State,
		District:      req.District,
		Taluka:        req.Taluka,
		Ward:          req.Ward,
		Village:       req.Village,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	}

	passwordChanged := false
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "group update: password hash failed", err)
			return
		}
		u.PasswordHash = string(hash)
		passwordChanged = true
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Groups.UpdateInfo(ctx, id, u); err != nil {
		h.ErrLog.LogServerError(w, r, "group update failed", err)
		return
	}

	if passwordChanged {
		if n, err := h.Sessions.DeleteByGroup(ctx, id); err != nil {
			h.Log.Warn("session revocation after password change failed", zap.Error(err))
		} else {
			h.Log.Info("password changed, sessions revoked", zap.Int64("sessions", n))
		}
	}

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.NotFound(w, "Group not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "group reload failed", err)
		return
	}
	httpapi.OK(w, g)
}
