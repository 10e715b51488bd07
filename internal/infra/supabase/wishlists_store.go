package supabase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// ============================================================
// Wishlists store: inspection + pruning
// ============================================================

// wishlistRow maps the wishlists table with embedded product and owner.
type wishlistRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	Products  *struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		ThumbnailURL string `json:"thumbnail_url"`
	} `json:"products"`
	Profiles *struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	} `json:"profiles"`
}

func (r wishlistRow) toDomain() domain.WishlistItem {
	item := domain.WishlistItem{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		CreatedAt: r.CreatedAt,
	}
	if r.Products != nil {
		item.Product = &domain.ProductRef{
			ID:           r.Products.ID,
			Name:         r.Products.Name,
			ThumbnailURL: r.Products.ThumbnailURL,
		}
	}
	if r.Profiles != nil {
		item.UserEmail = r.Profiles.Email
		item.UserName = r.Profiles.FullName
	}
	return item
}

// ListWishlists returns every wishlist entry with its product and owner.
func (c *Client) ListWishlists(ctx context.Context) ([]domain.WishlistItem, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListWishlists")
	defer span.End()

	rows := []wishlistRow{}
	path := "wishlists?select=*,products(id,name,thumbnail_url),profiles(email,full_name)&order=created_at.desc"
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/wishlists", Err: err}
	}

	items := make([]domain.WishlistItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toDomain())
	}
	return items, nil
}

// DeleteWishlistItem removes one wishlist entry.
func (c *Client) DeleteWishlistItem(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteWishlistItem")
	defer span.End()
	span.SetAttributes(attribute.String("wishlist.id", id))

	return c.doDelete(ctx, fmt.Sprintf("wishlists?id=eq.%s", id))
}
