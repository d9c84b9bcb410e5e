// Package middleware carries the HTTP middleware for the public and
// operator surfaces: request logging, per-surface rate limiting, and
// operator JWT auth.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

// AdminAudience is the audience claim an operator token must carry to
// reach the audit and stats endpoints.
const AdminAudience = "clinicflow-admin"

// AdminJWT guards the operator endpoints with an HMAC-signed JWT scoped
// to AdminAudience. An empty secret disables operator access entirely
// rather than leaving the audit trail open.
func AdminJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "operator access disabled", http.StatusUnauthorized)
				return
			}

			tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || tokenString == "" {
				http.Error(w, "operator token required", http.StatusUnauthorized)
				return
			}

			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			}, jwt.WithAudience(AdminAudience))
			if err != nil || !token.Valid {
				http.Error(w, "invalid operator token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminSubject returns the subject of the operator token on the
// request context, empty when no token was validated.
func AdminSubject(ctx context.Context) string {
	claims, ok := ctx.Value(adminClaimsKey).(jwt.RegisteredClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}
