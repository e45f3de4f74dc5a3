// internal/app/system/httpapi/errlog.go
package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs server-side error logging with the opaque client
// response. Handlers call it wherever a storage or transport failure must
// not leak details to the caller.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger over the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the failure with request context and writes the
// generic 500 envelope.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)
	e.log.Error(msg, all...)
	ServerError(w)
}
