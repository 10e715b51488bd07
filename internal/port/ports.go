// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// IdentityProvider wraps the external auth service: resolving a bearer token
// to a session and invalidating sessions.
type IdentityProvider interface {
	GetSession(ctx context.Context, accessToken string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ProfileStore manages the local profile records keyed by provider user id.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	CountProfiles(ctx context.Context) (int64, error)
	CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
}

// OrderStore reads orders; this console never writes the orders table
// directly, status changes go through the StatusNotifier.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
}

// ReturnStore manages return request records.
type ReturnStore interface {
	ListReturns(ctx context.Context) ([]domain.Return, error)
	GetReturn(ctx context.Context, returnID string) (*domain.Return, error)
	UpdateReturnStatus(ctx context.Context, returnID string, status domain.ReturnStatus, adminRemark string) (*domain.Return, error)
	CountReturns(ctx context.Context) (int64, error)
	ListRecentReturns(ctx context.Context, limit int) ([]domain.Return, error)
}

// StatusNotifier invokes the remote status-change function with the admin's
// own bearer credential.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, accessToken string, req *domain.StatusChangeRequest) error
}

// CatalogStore manages categories, products and hero banners.
type CatalogStore interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CountCategories(ctx context.Context) (int64, error)
	CountProductsInCategory(ctx context.Context, categoryID string) (int64, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductRefs(ctx context.Context, ids []string) ([]domain.ProductRef, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	DeleteProducts(ctx context.Context, ids []string) error
	CountProducts(ctx context.Context) (int64, error)

	ListBanners(ctx context.Context) ([]domain.Banner, error)
	CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error)
	UpdateBanner(ctx context.Context, id string, updates map[string]any) (*domain.Banner, error)
	DeleteBanner(ctx context.Context, id string) error
}

// ReviewStore manages product review moderation.
type ReviewStore interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
	ModerateReview(ctx context.Context, reviewID string, status domain.ReviewStatus) error
	CountReviews(ctx context.Context) (int64, error)
	ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error)
	GetProfileRefs(ctx context.Context, ids []string) ([]domain.Profile, error)
}

// WishlistStore inspects and prunes customer wishlists.
type WishlistStore interface {
	ListWishlists(ctx context.Context) ([]domain.WishlistItem, error)
	DeleteWishlistItem(ctx context.Context, id string) error
}

// PincodeStore manages serviceable delivery pincodes.
type PincodeStore interface {
	ListPincodes(ctx context.Context) ([]domain.Pincode, error)
	CreatePincode(ctx context.Context, p *domain.Pincode) (*domain.Pincode, error)
	UpdatePincode(ctx context.Context, id string, updates map[string]any) (*domain.Pincode, error)
	DeletePincode(ctx context.Context, id string) error
	CountPincodes(ctx context.Context) (int64, error)
	ListRecentPincodes(ctx context.Context, limit int) ([]domain.Pincode, error)
}

// ObjectStore uploads blobs to a public bucket.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (*domain.UploadResult, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
