package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// Wishlists gives admins a read view of customer wishlists with pruning.
type Wishlists struct {
	store  port.WishlistStore
	logger *zap.Logger
}

// NewWishlists creates the wishlist inspection service.
func NewWishlists(store port.WishlistStore, logger *zap.Logger) *Wishlists {
	return &Wishlists{store: store, logger: logger}
}

func (w *Wishlists) ListWishlists(ctx context.Context) ([]domain.WishlistItem, error) {
	ctx, span := tracer.Start(ctx, "Wishlists.ListWishlists")
	defer span.End()
	return w.store.ListWishlists(ctx)
}

func (w *Wishlists) DeleteItem(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Wishlists.DeleteItem")
	defer span.End()
	span.SetAttributes(attribute.String("wishlist.id", id))

	if err := w.store.DeleteWishlistItem(ctx, id); err != nil {
		return err
	}
	w.logger.Info("wishlists: entry removed", zap.String("wishlist_id", id))
	return nil
}
