package middleware

import (
	"context"
	"net/http"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/transport/http/envelope"
)

type contextKey string

const payloadKey contextKey = "sessionPayload"

// SessionCookie is the cookie carrying the session JWT.
const SessionCookie = "token"

// Auth returns middleware that validates the session cookie and injects the
// verified payload into the request context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}
			payload, err := jwtinfra.Verify(cookie.Value, secret)
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), payloadKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PayloadFromContext extracts the verified session payload from the request context.
func PayloadFromContext(ctx context.Context) (domain.SessionPayload, bool) {
	p, ok := ctx.Value(payloadKey).(domain.SessionPayload)
	return p, ok
}

func unauthorized(w http.ResponseWriter) {
	envelope.WriteError(w, http.StatusUnauthorized, "unauthorized")
}
