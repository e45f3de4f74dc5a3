// internal/app/features/members/handler.go
package members

import (
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"go.uber.org/zap"
)

// Handler owns the member registry endpoints. Registration is open to the
// public against a valid group code; beyond that a group only ever sees
// and mutates its own members.
type Handler struct {
	Members  *memberstore.Store
	Groups   *groupstore.Store
	Uploader *uploads.Uploader
	Log      *zap.Logger
	ErrLog   *httpapi.ErrorLogger
}

// NewHandler constructs a members Handler bound to the given stores.
func NewHandler(members *memberstore.Store, groups *groupstore.Store, up *uploads.Uploader, logger *zap.Logger) *Handler {
	return &Handler{
		Members:  members,
		Groups:   groups,
		Uploader: up,
		Log:      logger,
		ErrLog:   httpapi.NewErrorLogger(logger),
	}
}
