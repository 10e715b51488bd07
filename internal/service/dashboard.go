package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/observability"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

const recentLimit = 5

// Dashboard aggregates the landing page statistics with one concurrent
// fan-out across every store.
type Dashboard struct {
	catalog  port.CatalogStore
	profiles port.ProfileStore
	orders   port.OrderStore
	reviews  port.ReviewStore
	returns  port.ReturnStore
	pincodes port.PincodeStore
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewDashboard creates the dashboard service with all dependencies injected.
func NewDashboard(
	catalog port.CatalogStore,
	profiles port.ProfileStore,
	orders port.OrderStore,
	reviews port.ReviewStore,
	returns port.ReturnStore,
	pincodes port.PincodeStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Dashboard {
	return &Dashboard{
		catalog:  catalog,
		profiles: profiles,
		orders:   orders,
		reviews:  reviews,
		returns:  returns,
		pincodes: pincodes,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetStats runs all count and recent-item queries concurrently and joins the
// results. Any single failure fails the whole snapshot; the dashboard never
// shows a mix of fresh and missing numbers.
func (d *Dashboard) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	ctx, span := tracer.Start(ctx, "Dashboard.GetStats")
	defer span.End()

	start := time.Now()
	defer func() {
		d.metrics.RecordRequestDuration("dashboard_stats", time.Since(start))
	}()

	stats := &domain.DashboardStats{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		stats.Products, err = d.catalog.CountProducts(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Categories, err = d.catalog.CountCategories(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Users, err = d.profiles.CountProfiles(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Orders, err = d.orders.CountOrders(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Reviews, err = d.reviews.CountReviews(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Returns, err = d.returns.CountReturns(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Pincodes, err = d.pincodes.CountPincodes(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		stats.RecentOrders, err = d.orders.ListRecentOrders(gCtx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats.RecentReviews, err = d.reviews.ListRecentReviews(gCtx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats.RecentReturns, err = d.returns.ListRecentReturns(gCtx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats.RecentPincodes, err = d.pincodes.ListRecentPincodes(gCtx, recentLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		d.logger.Error("dashboard: stats fan-out failed", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// GetOpsMetrics exposes the operational counter snapshot.
func (d *Dashboard) GetOpsMetrics() *domain.OpsMetrics {
	return d.metrics.GetOpsSnapshot()
}
