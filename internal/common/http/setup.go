package http

import (
	"net/http"

	"github.com/taskboard/backend/internal/common/constants"
	"github.com/taskboard/backend/internal/common/httpmetrics"
	"github.com/taskboard/backend/internal/common/logger"
)

// BuildBaseHandler wraps the application handler with the ambient middleware
// stack shared by every route.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
