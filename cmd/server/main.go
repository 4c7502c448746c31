package main

import (
	"log"
	"net/http"

	"lokamart-be/internal/auth"
	"lokamart-be/internal/cache"
	"lokamart-be/internal/cart"
	"lokamart-be/internal/config"
	"lokamart-be/internal/dashboard"
	"lokamart-be/internal/db"
	"lokamart-be/internal/identity"
	"lokamart-be/internal/logger"
	"lokamart-be/internal/metrics"
	"lokamart-be/internal/middleware"
	"lokamart-be/internal/product"
	"lokamart-be/internal/rest"
	"lokamart-be/internal/transport"
	"lokamart-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	stats := metrics.NewStats()

	store := cache.New(cfg.RedisAddr, cfg.RedisPassword, stats)
	if store != nil {
		defer store.Close()
	}

	tokenManager, err := auth.NewManager(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to init token manager: %v", err)
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, store)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo, stats)

	dashboardRepo := dashboard.NewRepository(database)
	dashboardSvc := dashboard.NewService(dashboardRepo, store)

	resolver := identity.NewResolver(tokenManager, userSvc)

	googleProvider := rest.NewGoogleProvider(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		"http://localhost:"+cfg.AppPort+"/auth/google/callback",
	)

	secureCookies := cfg.AppEnv == "production"

	router := rest.NewRouter(rest.RouterDeps{
		Cart:      rest.NewCartHandler(cartSvc),
		Product:   rest.NewProductHandler(productSvc),
		Dashboard: rest.NewDashboardHandler(dashboardSvc),
		Auth:      rest.NewAuthHandler(googleProvider, userSvc, tokenManager, cfg.FrontendURL, secureCookies),
		User:      rest.NewUserHandler(userSvc),
		Stats:     rest.NewStatsHandler(stats),

		CartOwner:   middleware.CartOwnerMiddleware(resolver),
		RequireUser: middleware.RequireUser(tokenManager, userSvc),
		CORS:        middleware.NewCORS(cfg.FrontendURL),
	})

	handler := setupServer(router)

	log.Printf("🚀 Server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, handler))
}

// setupServer layers the observability middleware and the health probe
// around the API router.
func setupServer(router http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		transport.WriteJSON(w, http.StatusOK, transport.Envelope{Success: true, Message: "OK"})
	})
	mux.Handle("/", router)

	var handler http.Handler = mux
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}
