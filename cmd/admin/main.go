package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/config"
	"github.com/rupsadmin/storefront-admin-go/internal/handler"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/cache"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/observability"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/resilience"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/supabase"
	"github.com/rupsadmin/storefront-admin-go/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("supabase_url", cfg.SupabaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("admin_flag_ttl", cfg.AdminFlagTTL),
		zap.Duration("auth_init_timeout", cfg.AuthInitTimeout),
	)

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		logger.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	if cfg.SupabaseJWTSecret == "" {
		logger.Fatal("SUPABASE_JWT_SECRET is required")
	}

	// --- Tracing ---
	ctx := context.Background()
	shutdownTracer, err := observability.InitTracer(ctx, "storefront-admin", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	adminCache := cache.New[bool](cfg.AdminFlagTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	supabaseClient := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cb,
		resilienceCfg,
		logger,
	)
	statusNotifier := supabase.NewFunctionInvoker(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.StatusFunctionName,
		logger,
	)

	// --- Services ---
	verifier := service.NewTokenVerifier(cfg.SupabaseJWTSecret)
	resolver := service.NewSessionResolver(supabaseClient, supabaseClient, adminCache, metrics, logger, cfg.AuthInitTimeout)
	resolver.Start(ctx, "")
	defer resolver.Stop()

	coordinator := service.NewStatusCoordinator(supabaseClient, supabaseClient, statusNotifier, metrics, logger)
	catalogSvc := service.NewCatalog(supabaseClient, supabaseClient, logger)
	ordersSvc := service.NewOrders(supabaseClient, supabaseClient, logger)
	reviewsSvc := service.NewReviews(supabaseClient, supabaseClient, logger)
	usersSvc := service.NewUsers(supabaseClient, adminCache, logger)
	wishlistsSvc := service.NewWishlists(supabaseClient, logger)
	pincodesSvc := service.NewPincodes(supabaseClient, logger)
	dashboardSvc := service.NewDashboard(
		supabaseClient,
		supabaseClient,
		supabaseClient,
		supabaseClient,
		supabaseClient,
		supabaseClient,
		metrics,
		logger,
	)

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Verifier:    verifier,
		Resolver:    resolver,
		Coordinator: coordinator,
		Catalog:     catalogSvc,
		Orders:      ordersSvc,
		Reviews:     reviewsSvc,
		Users:       usersSvc,
		Wishlists:   wishlistsSvc,
		Pincodes:    pincodesSvc,
		Dashboard:   dashboardSvc,
		Metrics:     metrics,
		Logger:      logger,

		AllowedOrigins: cfg.AllowedOrigins,
		UploadBuckets: map[string]string{
			"categories": cfg.CategoryBucket,
			"products":   cfg.ProductBucket,
			"banners":    cfg.BannerBucket,
		},
		HealthProbe: func(ctx context.Context) error {
			_, err := supabaseClient.CountPincodes(ctx)
			return err
		},
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
