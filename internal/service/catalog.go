package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/imaging"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// Catalog manages categories, products and hero banners, plus the image
// upload pipeline feeding their media fields.
type Catalog struct {
	store   port.CatalogStore
	objects port.ObjectStore
	logger  *zap.Logger
}

// NewCatalog creates the catalog service with all dependencies injected.
func NewCatalog(store port.CatalogStore, objects port.ObjectStore, logger *zap.Logger) *Catalog {
	return &Catalog{store: store, objects: objects, logger: logger}
}

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// --- Categories ---

func (c *Catalog) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Catalog.ListCategories")
	defer span.End()
	return c.store.ListCategories(ctx, activeOnly)
}

func (c *Catalog) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Catalog.CreateCategory")
	defer span.End()

	if strings.TrimSpace(cat.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if cat.Slug == "" {
		cat.Slug = Slugify(cat.Name)
	}
	return c.store.CreateCategory(ctx, cat)
}

func (c *Catalog) UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Catalog.UpdateCategory")
	defer span.End()

	if name, ok := updates["name"].(string); ok {
		if _, hasSlug := updates["slug"]; !hasSlug {
			updates["slug"] = Slugify(name)
		}
	}
	return c.store.UpdateCategory(ctx, id, updates)
}

// DeleteCategory removes a category. When products still reference it, the
// foreign key conflict is rephrased with the product count so the admin knows
// what is blocking the delete.
func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Catalog.DeleteCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	err := c.store.DeleteCategory(ctx, id)
	if err == nil {
		return nil
	}

	var conflict *domain.ErrConflict
	if errors.As(err, &conflict) && conflict.Code == "23503" {
		n, countErr := c.store.CountProductsInCategory(ctx, id)
		if countErr != nil {
			c.logger.Warn("catalog: failed to count referencing products",
				zap.String("category_id", id),
				zap.Error(countErr),
			)
			return &domain.ErrConflict{
				Code:    conflict.Code,
				Message: "Cannot delete this category because products still reference it",
			}
		}
		return &domain.ErrConflict{
			Code:    conflict.Code,
			Message: fmt.Sprintf("Cannot delete this category: %d product(s) still reference it", n),
		}
	}
	return err
}

// --- Products ---

func (c *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Catalog.ListProducts")
	defer span.End()
	return c.store.ListProducts(ctx)
}

func (c *Catalog) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Catalog.CreateProduct")
	defer span.End()

	if strings.TrimSpace(p.Name) == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if p.CategoryID == "" {
		return nil, &domain.ErrValidation{Field: "category_id", Message: "category is required"}
	}
	if p.Price < 0 {
		return nil, &domain.ErrValidation{Field: "price", Message: "price cannot be negative"}
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return c.store.CreateProduct(ctx, p)
}

func (c *Catalog) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Catalog.UpdateProduct")
	defer span.End()

	if name, ok := updates["name"].(string); ok {
		if _, hasSlug := updates["slug"]; !hasSlug {
			updates["slug"] = Slugify(name)
		}
	}
	return c.store.UpdateProduct(ctx, id, updates)
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Catalog.DeleteProduct")
	defer span.End()
	return c.store.DeleteProduct(ctx, id)
}

// DeleteProducts removes a selection of products in one storage call.
func (c *Catalog) DeleteProducts(ctx context.Context, ids []string) error {
	ctx, span := tracer.Start(ctx, "Catalog.DeleteProducts")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(ids)))

	if len(ids) == 0 {
		return &domain.ErrValidation{Field: "ids", Message: "no products selected"}
	}
	return c.store.DeleteProducts(ctx, ids)
}

// --- Hero banners ---

func (c *Catalog) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	ctx, span := tracer.Start(ctx, "Catalog.ListBanners")
	defer span.End()
	return c.store.ListBanners(ctx)
}

func (c *Catalog) CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	ctx, span := tracer.Start(ctx, "Catalog.CreateBanner")
	defer span.End()

	if strings.TrimSpace(b.Title) == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "title is required"}
	}
	if b.ImageURL == "" {
		return nil, &domain.ErrValidation{Field: "image_url", Message: "image is required"}
	}
	return c.store.CreateBanner(ctx, b)
}

func (c *Catalog) UpdateBanner(ctx context.Context, id string, updates map[string]any) (*domain.Banner, error) {
	ctx, span := tracer.Start(ctx, "Catalog.UpdateBanner")
	defer span.End()
	return c.store.UpdateBanner(ctx, id, updates)
}

func (c *Catalog) DeleteBanner(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Catalog.DeleteBanner")
	defer span.End()
	return c.store.DeleteBanner(ctx, id)
}

// --- Image upload ---

// UploadImage compresses the raw upload and stores it under a random key in
// the given bucket. Every stored object is a JPEG regardless of input format.
func (c *Catalog) UploadImage(ctx context.Context, bucket string, data []byte) (*domain.UploadResult, error) {
	ctx, span := tracer.Start(ctx, "Catalog.UploadImage")
	defer span.End()
	span.SetAttributes(
		attribute.String("storage.bucket", bucket),
		attribute.Int("upload.bytes", len(data)),
	)

	if len(data) == 0 {
		return nil, &domain.ErrValidation{Field: "file", Message: "empty upload"}
	}

	compressed, err := imaging.Compress(data)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "file", Message: err.Error()}
	}

	key := uuid.NewString() + ".jpg"
	result, err := c.objects.Upload(ctx, bucket, key, compressed.Data, compressed.ContentType)
	if err != nil {
		return nil, err
	}

	c.logger.Info("catalog: image uploaded",
		zap.String("bucket", bucket),
		zap.String("path", key),
		zap.Int("original_bytes", len(data)),
		zap.Int("stored_bytes", len(compressed.Data)),
	)
	return result, nil
}
