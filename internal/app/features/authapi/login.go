// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/auth/login.
//
// Credentials are the group code (case-insensitive) and password. Unknown
// code and wrong password answer with the same 401 so callers cannot probe
// which codes are registered.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.BadRequest(w, "Invalid request body")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" || req.Password == "" {
		httpapi.BadRequest(w, "Please provide a group code and password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByCode(ctx, req.Code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.Unauthorized(w, "Invalid credentials")
			return
		}
		h.ErrLog.LogServerError(w, r, "login: group lookup failed", err)
		return
	}
	if !g.Active {
		httpapi.Unauthorized(w, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(req.Password)); err != nil {
		httpapi.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.Sessions.Create(ctx, g.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login: session create failed", err)
		return
	}

	h.Log.Info("group logged in", zap.String("code", g.Code))
	httpapi.OKToken(w, token, g)
}
