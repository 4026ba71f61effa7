// Package mwadmin guards admin routes with a shared secret passed as ?key=.
// The key is a placeholder gate, not an authentication scheme.
package mwadmin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"slotBooker/internal/lib/api/response"
)

func New(log *slog.Logger, adminKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/admin"),
		)

		if adminKey == "" {
			log.Warn("admin key is not configured, admin routes are disabled")
		}

		fn := func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("key")

			if adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
				log.Warn("admin access denied",
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
