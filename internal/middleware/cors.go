package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORS builds the CORS middleware for the storefront origin. Credentials
// must be allowed so the browser sends the auth and cart session cookies.
func NewCORS(frontendURL string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID", "X-Device-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}
