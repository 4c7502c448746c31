package middleware

import (
	"net/http"

	"lokamart-be/internal/identity"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/transport"

	"go.uber.org/zap"
)

// CartOwnerMiddleware resolves the request's CartOwner exactly once and
// stores it in the context for the cart handlers. Credential failures
// never abort here; only a storage failure during user lookup does.
func CartOwnerMiddleware(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, cookie, err := resolver.Resolve(r.Context(), r)
			if err != nil {
				logger.FromCtx(r.Context()).Error("cart owner resolution failed", zap.Error(err))
				transport.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			if cookie != nil {
				http.SetCookie(w, cookie)
			}

			ctx := identity.WithOwner(r.Context(), owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
