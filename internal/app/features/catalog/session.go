package catalog

import (
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// DefaultSessionName is the browse cookie name when none is configured.
const DefaultSessionName = "scivishub-browse"

// NewCookieStore returns the cookie store holding browse criteria. Cookies
// are HttpOnly, Lax, and live for a week.
func NewCookieStore(key string, secure bool, logger *zap.Logger) *sessions.CookieStore {
	if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
