// internal/app/features/authapi/handler.go
package authapi

import (
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	"github.com/sayamjn/SHG/internal/app/store/sessions"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// Handler owns the login, current-session and logout endpoints.
//
// It is constructed once at startup in bootstrap, using the shared group
// and session stores.
type Handler struct {
	Groups   *groupstore.Store
	Sessions *sessions.Store
	Log      *zap.Logger
	ErrLog   *httpapi.ErrorLogger
}

// NewHandler constructs an auth Handler bound to the given stores.
func NewHandler(groups *groupstore.Store, sess *sessions.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:   groups,
		Sessions: sess,
		Log:      logger,
		ErrLog:   httpapi.NewErrorLogger(logger),
	}
}
