// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/akoreshkov/taskkeeper/internal/token"
)

type ctxKey string

const identityKey ctxKey = "identity"

// bearerPrefix is the credential scheme expected in the Authorization header.
const bearerPrefix = "Bearer "

// Identity is the verified subject extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// TokenVerifier validates a bearer token string and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// A missing Authorization header or a non-Bearer scheme is rejected without
// attempting verification. Otherwise the token is verified and the resulting
// identity is stored in the request context for downstream handlers. Every
// failure collapses to 401; the reason is logged but never surfaced.
// Nothing is cached across requests.
func BearerAuth(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				unauthorized(w, "authorization token required")
				return
			}

			claims, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				logger.Debug("token rejected", zap.Error(err))
				unauthorized(w, "invalid or expired token")
				return
			}

			identity := Identity{UserID: claims.UserID, Email: claims.Email}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext extracts the verified identity placed in the
// context by BearerAuth. ok is false if no identity is present.
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
