// internal/app/features/schemes/handler.go
package schemes

import (
	schemestore "github.com/sayamjn/SHG/internal/app/store/schemes"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"go.uber.org/zap"
)

// Handler owns the scheme catalog endpoints: public browsing and search,
// authenticated maintenance.
type Handler struct {
	Schemes  *schemestore.Store
	Uploader *uploads.Uploader
	Log      *zap.Logger
	ErrLog   *httpapi.ErrorLogger
}

// NewHandler constructs a schemes Handler bound to the given store.
func NewHandler(schemes *schemestore.Store, up *uploads.Uploader, logger *zap.Logger) *Handler {
	return &Handler{
		Schemes:  schemes,
		Uploader: up,
		Log:      logger,
		ErrLog:   httpapi.NewErrorLogger(logger),
	}
}
