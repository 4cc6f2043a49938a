package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/avlasov/sneakerhub/pkg/web"
)

// Middleware verifies the Authorization bearer token and stores the caller's
// user ID in the request context. A missing token is rejected with 401, an
// invalid or expired one with 403.
func Middleware(tokens *Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if authHeader == "" || tokenString == authHeader {
				web.RespondError(w, logger, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				web.RespondError(w, logger, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := web.WithUserID(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
