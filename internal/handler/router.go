package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/observability"
	"github.com/rupsadmin/storefront-admin-go/internal/service"
)

var tracer = otel.Tracer("handler")

// Deps bundles everything the router needs.
type Deps struct {
	Verifier    *service.TokenVerifier
	Resolver    *service.SessionResolver
	Coordinator *service.StatusCoordinator
	Catalog     *service.Catalog
	Orders      *service.Orders
	Reviews     *service.Reviews
	Users       *service.Users
	Wishlists   *service.Wishlists
	Pincodes    *service.Pincodes
	Dashboard   *service.Dashboard

	Metrics *observability.Metrics
	Logger  *zap.Logger

	AllowedOrigins []string
	// Buckets accepted by the upload endpoint, keyed by URL segment.
	UploadBuckets map[string]string
	// HealthProbe checks backend reachability for /healthz.
	HealthProbe func(context.Context) error
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(d.Logger))
	r.Use(observability.MetricsMiddleware(d.Metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(d.HealthProbe, d.Logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JWTAuthMiddleware(d.Verifier, d.Logger))

		// Session endpoints need authentication, not admin rights: a
		// signed-in non-admin must still be able to see (and leave) their
		// denied state.
		r.Route("/auth", func(r chi.Router) {
			r.Get("/state", authStateHandler(d.Resolver))
			r.Post("/events", authEventHandler(d.Resolver, d.Logger))
			r.Post("/signout", signOutHandler(d.Resolver, d.Logger))
		})

		// Everything else is admin-only.
		r.Group(func(r chi.Router) {
			r.Use(AdminOnlyMiddleware(d.Resolver, d.Logger))

			r.Get("/dashboard/stats", dashboardStatsHandler(d.Dashboard, d.Logger))
			r.Get("/dashboard/metrics", dashboardMetricsHandler(d.Dashboard))

			r.Get("/categories", listCategoriesHandler(d.Catalog, d.Logger))
			r.Post("/categories", createCategoryHandler(d.Catalog, d.Logger))
			r.Patch("/categories/{categoryID}", updateCategoryHandler(d.Catalog, d.Logger))
			r.Delete("/categories/{categoryID}", deleteCategoryHandler(d.Catalog, d.Logger))

			r.Get("/products", listProductsHandler(d.Catalog, d.Logger))
			r.Post("/products", createProductHandler(d.Catalog, d.Logger))
			r.Post("/products/bulk-delete", bulkDeleteProductsHandler(d.Catalog, d.Logger))
			r.Patch("/products/{productID}", updateProductHandler(d.Catalog, d.Logger))
			r.Delete("/products/{productID}", deleteProductHandler(d.Catalog, d.Logger))

			r.Get("/banners", listBannersHandler(d.Catalog, d.Logger))
			r.Post("/banners", createBannerHandler(d.Catalog, d.Logger))
			r.Patch("/banners/{bannerID}", updateBannerHandler(d.Catalog, d.Logger))
			r.Delete("/banners/{bannerID}", deleteBannerHandler(d.Catalog, d.Logger))

			r.Post("/uploads/{bucket}", uploadImageHandler(d.Catalog, d.UploadBuckets, d.Logger))

			r.Get("/orders", listOrdersHandler(d.Orders, d.Logger))
			r.Get("/orders/{orderID}", getOrderHandler(d.Orders, d.Logger))
			r.Post("/orders/{orderID}/status", orderStatusHandler(d.Coordinator, d.Logger))

			r.Get("/returns", listReturnsHandler(d.Orders, d.Logger))
			r.Get("/returns/{returnID}", getReturnHandler(d.Orders, d.Logger))
			r.Post("/returns/{returnID}/status", returnStatusHandler(d.Coordinator, d.Logger))

			r.Get("/reviews", listReviewsHandler(d.Reviews, d.Logger))
			r.Post("/reviews/{reviewID}/moderate", moderateReviewHandler(d.Reviews, d.Logger))

			r.Get("/users", listUsersHandler(d.Users, d.Logger))
			r.Post("/users/{userID}/admin", setAdminHandler(d.Users, d.Logger))

			r.Get("/wishlists", listWishlistsHandler(d.Wishlists, d.Logger))
			r.Delete("/wishlists/{wishlistID}", deleteWishlistHandler(d.Wishlists, d.Logger))

			r.Get("/pincodes", listPincodesHandler(d.Pincodes, d.Logger))
			r.Post("/pincodes", createPincodeHandler(d.Pincodes, d.Logger))
			r.Patch("/pincodes/{pincodeID}", updatePincodeHandler(d.Pincodes, d.Logger))
			r.Delete("/pincodes/{pincodeID}", deletePincodeHandler(d.Pincodes, d.Logger))
		})
	})

	return r
}

// --- Operational handlers ---

func healthzHandler(probe func(context.Context) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		err := probe(ctx)
		latency := time.Since(start)

		status := domain.HealthStatus{
			Status: "ok",
			Services: []domain.ServiceHealth{{
				Name:        "supabase",
				Status:      "ok",
				LatencyMs:   latency.Milliseconds(),
				LastChecked: time.Now().UTC().Format(time.RFC3339),
			}},
		}
		code := http.StatusOK
		if err != nil {
			logger.Warn("healthz: backend probe failed", zap.Error(err))
			status.Status = "degraded"
			status.Services[0].Status = "unreachable"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, status)
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
