package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const (
	emailKey contextKeyType = "email"
	nameKey  contextKeyType = "name"
)

// SessionCookieName is the cookie that carries the signed token for
// browser clients.
const SessionCookieName = "session"

// Claims represents the identity extracted from a verified token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenValidator validates a signed token and returns the caller's identity.
type TokenValidator func(token string) (*Claims, error)

// Auth validates the caller's token and injects the identity into context.
// The token is read from the Authorization header (Bearer scheme) or, for
// browser clients, from the session cookie.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractToken(r)
			if !ok {
				writeAuthError(w, "missing credentials")
				return
			}

			claims, err := validate(token)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), emailKey, claims.Email)
			ctx = context.WithValue(ctx, nameKey, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the raw token from the Authorization header or the
// session cookie.
func extractToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// EmailFromContext extracts the authenticated caller's email from the
// request context.
func EmailFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(emailKey).(string); ok {
		return email
	}
	return ""
}

// NameFromContext extracts the authenticated caller's display name from the
// request context.
func NameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(nameKey).(string); ok {
		return name
	}
	return ""
}

// WithIdentity returns a context carrying the given identity. Used by tests
// and by the session handler after verifying a fresh token.
func WithIdentity(ctx context.Context, email, name string) context.Context {
	ctx = context.WithValue(ctx, emailKey, email)
	return context.WithValue(ctx, nameKey, name)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
