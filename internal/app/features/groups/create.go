// internal/app/features/groups/create.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/inputval"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"github.com/sayamjn/SHG/internal/domain/models"
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type createRequest struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	Password      string `json:"password"`
	Address       string `json:"address"`
	Country       string `json:"country"`
	State         string `json:"state"`
	District      string `json:"district"`
	Taluka        string `json:"taluka"`
	Ward          string `json:"ward"`
	Village       string `json:"village"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	FormationDate string `json:"formationDate"`
}

// HandleCreate handles POST /api/groups.
//
// Registration is public; the created group can immediately log in with its
// code and password. All field violations come back in one response.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}
	req.Code = strings.TrimSpace(req.Code)

	v := inputval.New()
	v.Require("name", req.Name, "Please add a group name")
	v.Require("code", req.Code, "Please add a group code")
	v.MaxLen("code", req.Code, 20, "Group code can not be more than 20 characters")
	if req.Password == "" {
		v.Add("password", "Please add a password")
	} else {
		v.MinLen("password", req.Password, 6, "Password must be at least 6 characters")
	}
	v.Require("address", req.Address, "Please add an address")
	v.Require("country", req.Country, "Please add a country")
	v.Require("state", req.State, "Please add a state")
	v.Require("district", req.District, "Please add a district")
	v.Require("taluka", req.Taluka, "Please add a taluka")
	v.Require("contactPerson", req.ContactPerson, "Please add a contact person")
	v.Require("phone", req.Phone, "Please add a phone number")
	v.Email("email", req.Email, "Please add a valid email")

	var formation time.Time
	if req.FormationDate != "" {
		var err error
		formation, err = time.Parse("2006-01-02", req.FormationDate)
		if err != nil {
			v.Add("formationDate", "Formation date must be YYYY-MM-DD")
		}
	}
	if !v.OK() {
		httpapi.ValidationFailed(w, v.Errors())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "group create: password hash failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.Create(ctx, models.Group{
		Name:          req.Name,
		Code:          req.Code,
		PasswordHash:  string(hash),
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
		FormationDate: formation,
	})
	if err != nil {
		if err == groupstore.ErrDuplicateCode {
			httpapi.BadRequest(w, "A group with this code already exists")
			return
		}
		h.ErrLog.LogServerError(w, r, "group create failed", err)
		return
	}

	h.Log.Info("group registered", zap.String("code", g.Code))
	httpapi.Created(w, g)
}
