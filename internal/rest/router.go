package rest

import (
	"net/http"

	"lokamart-be/internal/middleware"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Cart      *CartHandler
	Product   *ProductHandler
	Dashboard *DashboardHandler
	Auth      *AuthHandler
	User      *UserHandler
	Stats     *StatsHandler

	CartOwner   func(http.Handler) http.Handler
	RequireUser func(http.Handler) http.Handler
	CORS        func(http.Handler) http.Handler
}

// NewRouter wires the route table and the middleware chain. CORS sits
// outermost so preflights are answered before the limiter runs; request ID
// and logging middleware are layered on by the caller.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", deps.Dashboard.GetDashboard)
	mux.HandleFunc("GET /products/get-products", deps.Product.GetProducts)

	mux.Handle("GET /cart/get-carts", deps.CartOwner(http.HandlerFunc(deps.Cart.GetCarts)))
	mux.Handle("POST /cart/add-to-cart", deps.CartOwner(http.HandlerFunc(deps.Cart.AddToCart)))

	mux.HandleFunc("GET /auth/google", deps.Auth.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", deps.Auth.GoogleCallback)

	mux.Handle("GET /user/me", deps.RequireUser(http.HandlerFunc(deps.User.Me)))

	mux.HandleFunc("GET /internal/stats", deps.Stats.GetStats)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = deps.CORS(handler)

	return handler
}
