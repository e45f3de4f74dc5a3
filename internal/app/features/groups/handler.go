// internal/app/features/groups/handler.go
package groups

import (
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	"github.com/sayamjn/SHG/internal/app/store/sessions"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"go.uber.org/zap"
)

// DefaultBcryptCost is used when bootstrap does not configure a cost.
const DefaultBcryptCost = 12

// Handler owns the group directory endpoints: public lookup and
// registration, plus self-service updates for authenticated groups.
type Handler struct {
	Groups     *groupstore.Store
	Members    *memberstore.Store
	Sessions   *sessions.Store
	BcryptCost int
	Log        *zap.Logger
	ErrLog     *httpapi.ErrorLogger
}

// NewHandler constructs a groups Handler bound to the given stores.
func NewHandler(groups *groupstore.Store, members *memberstore.Store, sess *sessions.Store, bcryptCost int, logger *zap.Logger) *Handler {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &Handler{
		Groups:     groups,
		Members:    members,
		Sessions:   sess,
		BcryptCost: bcryptCost,
		Log:        logger,
		ErrLog:     httpapi.NewErrorLogger(logger),
	}
}
