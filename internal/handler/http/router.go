package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxemarket/marketplace/internal/service"
	"github.com/luxemarket/marketplace/pkg/health"
	"github.com/luxemarket/marketplace/pkg/middleware"
)

// RouterConfig carries the dependencies and settings for the HTTP router.
type RouterConfig struct {
	Catalog       *service.CatalogService
	Orders        *service.OrderService
	Ratings       *service.RatingService
	Health        *health.Handler
	TokenValidate middleware.TokenValidator
	CORS          middleware.CORSConfig
	PprofCIDRs    []string
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all marketplace routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Tracing("marketplace"))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("marketplace"))

	// Operational endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	orderHandler := NewOrderHandler(cfg.Orders, cfg.Logger)
	ratingHandler := NewRatingHandler(cfg.Ratings, cfg.Logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
		r.Get("/{id}/ratings", productHandler.ListProductRatings)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.TokenValidate))
			r.Use(middleware.RequireRole("seller", "admin"))
			r.Post("/", productHandler.CreateProduct)
		})
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(cfg.TokenValidate))

		r.Post("/", orderHandler.PlaceOrder)
		r.Get("/", orderHandler.ListOrders)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))
			r.Put("/{id}/status", orderHandler.UpdateOrderStatus)
		})
	})

	r.Route("/api/v1/ratings", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(cfg.TokenValidate))

		r.Post("/", ratingHandler.SubmitRating)
	})

	r.Get("/api/v1/sellers/{id}/rating", ratingHandler.GetSellerSummary)

	return r
}
