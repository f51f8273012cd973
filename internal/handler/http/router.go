package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nuvoshop/wishlist-service/pkg/health"
	"github.com/nuvoshop/wishlist-service/pkg/middleware"

	"github.com/nuvoshop/wishlist-service/internal/auth"
	"github.com/nuvoshop/wishlist-service/internal/service"
)

// NewRouter creates a chi router with all wishlist service routes registered.
func NewRouter(
	wishlistService *service.WishlistService,
	verifier *auth.Verifier,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("wishlist"))
	r.Use(middleware.Tracing("wishlist"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(corsConfig))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Wishlist API endpoints
	wishlistHandler := NewWishlistHandler(wishlistService, logger)

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(ResolveSession(verifier))

		r.Get("/", wishlistHandler.GetWishlist)
		r.Post("/", wishlistHandler.AddItem)
		r.Delete("/", wishlistHandler.ClearWishlist)

		r.Delete("/{productId}", wishlistHandler.RemoveItem)
		r.Get("/items/{productId}", wishlistHandler.ContainsItem)
		r.Post("/sync", wishlistHandler.SyncWishlist)
	})

	return r
}
