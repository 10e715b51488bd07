package handler

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/service"
)

type contextKey string

const sessionKey contextKey = "session"

// JWTAuthMiddleware validates Bearer tokens locally and injects the session
// plus the raw token into context so the data layer forwards the caller's
// credential downstream.
func JWTAuthMiddleware(verifier *service.TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			session, err := verifier.Verify(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			ctx = domain.WithAccessToken(ctx, session.AccessToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnlyMiddleware verifies the authenticated user's admin flag against
// the canonical profile. A signed-in non-admin gets an explicit access-denied
// response; a failed check never grants access.
func AdminOnlyMiddleware(resolver *service.SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			if session == nil {
				writeError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			isAdmin, err := resolver.CheckAdmin(r.Context(), session)
			if err != nil {
				logger.Error("authz: admin check failed, denying access",
					zap.String("user_id", session.UserID),
					zap.Error(err),
				)
				writeError(w, http.StatusForbidden, "access denied: admin verification failed")
				return
			}
			if !isAdmin {
				logger.Warn("authz: non-admin access attempt",
					zap.String("user_id", session.UserID),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusForbidden, "access denied: admin privileges required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext extracts the authenticated session from context.
func SessionFromContext(ctx context.Context) *domain.Session {
	v, _ := ctx.Value(sessionKey).(*domain.Session)
	return v
}
