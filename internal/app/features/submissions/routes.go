// internal/app/features/submissions/routes.go
package submissions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/scivishub/internal/app/features/shared"
	"github.com/dalemusser/scivishub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes wires the submission endpoints under the mount point chosen by
// the top-level router (e.g., "/api/submissions").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.With(h.throttle).Post("/", h.ServeCreate)
	return r
}

// throttle answers 429 with Retry-After once a client exceeds the create
// limit.
func (h *Handler) throttle(next http.Handler) http.Handler {
	if h.Limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ratelimit.ClientIP(r)
		if !h.Limiter.Allow(ip) {
			secs := int(h.Limiter.RetryAfter(ip).Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			h.Log.Warn("submission rate limited", zap.String("ip", ip))
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			shared.WriteError(w, http.StatusTooManyRequests, "too many submissions; try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
