package middleware

import (
	"crypto/subtle"
	"net/http"

	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

// StaffKey guards the admin routes with the shared staff API key from
// config. Identity management proper lives in an external service; this
// only separates staff actions from requester-facing ones.
func StaffKey(config utils.StaffConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.APIKey == "" {
				logger.Error("Staff API key not configured, refusing admin request",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Staff access not configured")
				return
			}

			key := r.Header.Get("X-Staff-Key")
			if subtle.ConstantTimeCompare([]byte(key), []byte(config.APIKey)) != 1 {
				logger.Warn("Staff key rejected",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseForbidden(w, "Staff access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
