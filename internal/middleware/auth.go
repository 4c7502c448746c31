package middleware

import (
	"context"
	"net/http"

	"lokamart-be/internal/auth"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/transport"
	"lokamart-be/internal/utils"

	"go.uber.org/zap"
)

// UserLookup reports whether an account still exists.
type UserLookup interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// RequireUser protects a resource. Missing, invalid or expired tokens are
// rejected with 401 here, unlike the cart-owner resolver which treats the
// same conditions as a fall-through to the guest flow.
func RequireUser(manager *auth.Manager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				transport.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := manager.Parse(token)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("access token rejected", zap.Error(err))
				transport.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			exists, err := users.ExistsByID(r.Context(), claims.UserID)
			if err != nil {
				logger.FromCtx(r.Context()).Error("user lookup failed", zap.Error(err))
				transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if !exists {
				transport.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
