package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/sonuarjun3120/krishpafoods/internal/auth"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

// AdminAuthMiddleware guards the back-office routes with a bearer token
// issued by the admin login endpoint.
func AdminAuthMiddleware(jwtManager *auth.JWTManager, logger logs.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				web.RespondWithError(w, logger, r, http.StatusUnauthorized, "Unauthorized", "Missing authorization header.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				web.RespondWithError(w, logger, r, http.StatusUnauthorized, "Unauthorized", "Invalid authorization header format.")
				return
			}

			claims, err := jwtManager.ValidateToken(parts[1])
			if err != nil {
				logger.Warn("invalid admin token", "error", err)
				web.RespondWithError(w, logger, r, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAdminClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(adminClaimsKey).(*auth.Claims)
	return claims, ok
}
