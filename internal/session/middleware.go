package session

import (
	"context"
	"net/http"
	"time"

	"github.com/taskboard/backend/internal/common/constants"
	commonhttp "github.com/taskboard/backend/internal/common/http"
	"github.com/taskboard/backend/internal/common/logger"
)

type contextKey string

const identityKey contextKey = "session_identity"

// Middleware resolves the session cookie once per request and injects the
// identity into the context. A missing or invalid token is rejected with 401
// before any data lookup, so nothing about record existence leaks to
// unauthenticated callers.
func Middleware(codec *Codec, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingToken, "unauthorized", nil, "")
				return
			}

			identity, ok := codec.Verify(cookie.Value)
			if !ok {
				log.Warnf("session auth failed path=%s: invalid token", r.URL.Path)
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidToken, "unauthorized", nil, "")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Identity, bool) {
	val := ctx.Value(identityKey)
	identity, ok := val.(Identity)
	return identity, ok
}

// WithIdentity is a test seam for handlers that read the identity from the
// context without going through the middleware.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func SetCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	if token == "" {
		return
	}

	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	}

	http.SetCookie(w, cookie)
}

func ClearCookie(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	}

	http.SetCookie(w, cookie)
}
