package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OtlotlengMajuja/storefront/internal/auth"
	"github.com/OtlotlengMajuja/storefront/internal/service"
	"github.com/OtlotlengMajuja/storefront/pkg/health"
	"github.com/OtlotlengMajuja/storefront/pkg/middleware"
)

// RouterConfig bundles the collaborators the router needs.
type RouterConfig struct {
	Catalog       *service.CatalogService
	Categories    *service.CategoryService
	Reviews       *service.ReviewService
	JWT           *auth.JWTManager
	Health        *health.Handler
	CORS          middleware.CORSConfig
	SecureCookies bool
	CategoryTTL   int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	validate := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.JWT.ValidateSessionToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{Email: claims.Email, Name: claims.Name}, nil
	}

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := NewProductHandler(cfg.Catalog, logger)
	categoryHandler := NewCategoryHandler(cfg.Categories, logger)
	reviewHandler := NewReviewHandler(cfg.Reviews, logger)
	sessionHandler := NewSessionHandler(cfg.JWT, cfg.SecureCookies, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{id}", productHandler.GetProduct)

			r.Route("/{id}/reviews", func(r chi.Router) {
				r.Get("/", reviewHandler.ListReviews)
				r.Get("/summary", reviewHandler.GetSummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.Auth(validate))
					r.Post("/", reviewHandler.CreateReview)
					r.Put("/{reviewId}", reviewHandler.UpdateReview)
					r.Delete("/{reviewId}", reviewHandler.DeleteReview)
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CategoryTTL))
			r.Get("/categories", categoryHandler.ListCategories)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoCache)
			r.Post("/session", sessionHandler.CreateSession)
			r.Post("/logout", sessionHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(validate))
				r.Get("/user", sessionHandler.GetUser)
			})
		})
	})

	return r
}
