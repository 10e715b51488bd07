package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// ============================================================
// Catalog store: categories, products, hero banners
// ============================================================

// ListCategories returns categories ordered for storefront display.
func (c *Client) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCategories")
	defer span.End()

	path := "categories?order=order.asc"
	if activeOnly {
		path += "&is_active=eq.true"
	}

	rows := []domain.Category{}
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/categories", Err: err}
	}
	return rows, nil
}

// CreateCategory inserts a category and returns the stored row.
func (c *Client) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCategory")
	defer span.End()

	data := map[string]any{
		"name":        cat.Name,
		"slug":        cat.Slug,
		"description": cat.Description,
		"image_url":   cat.ImageURL,
		"is_active":   cat.IsActive,
		"order":       cat.Order,
	}

	body, err := c.doPost(ctx, "categories", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Category
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if len(rows) == 0 {
		return cat, nil
	}
	return &rows[0], nil
}

// UpdateCategory patches a category with the given column updates.
func (c *Client) UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	path := fmt.Sprintf("categories?id=eq.%s", id)
	body, err := c.doPatch(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var rows []domain.Category
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "category", ID: id}
	}
	return &rows[0], nil
}

// DeleteCategory removes a category. Referencing products surface as a
// foreign key conflict.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	return c.doDelete(ctx, fmt.Sprintf("categories?id=eq.%s", id))
}

// CountCategories returns the total number of categories.
func (c *Client) CountCategories(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountCategories")
	defer span.End()

	n, err := c.countRows(ctx, "categories")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/categories", Err: err}
	}
	return n, nil
}

// CountProductsInCategory returns how many products reference a category.
func (c *Client) CountProductsInCategory(ctx context.Context, categoryID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountProductsInCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", categoryID))

	n, err := c.countRows(ctx, fmt.Sprintf("products?category_id=eq.%s", categoryID))
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/products", Err: err}
	}
	return n, nil
}

// ListProducts returns all products, newest first.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProducts")
	defer span.End()

	rows := []domain.Product{}
	if err := c.getList(ctx, "products?order=created_at.desc", &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/products", Err: err}
	}
	return rows, nil
}

// GetProductRefs fetches trimmed product projections by id set.
func (c *Client) GetProductRefs(ctx context.Context, ids []string) ([]domain.ProductRef, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProductRefs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	rows := []domain.ProductRef{}
	path := fmt.Sprintf("products?id=in.(%s)&select=id,name,thumbnail_url", joinIDs(ids))
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/products", Err: err}
	}
	return rows, nil
}

// CreateProduct inserts a product and returns the stored row.
func (c *Client) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProduct")
	defer span.End()

	data := map[string]any{
		"name":          p.Name,
		"slug":          p.Slug,
		"description":   p.Description,
		"category_id":   p.CategoryID,
		"price":         p.Price,
		"mrp":           p.MRP,
		"stock":         p.Stock,
		"thumbnail_url": p.ThumbnailURL,
		"images":        p.Images,
		"is_active":     p.IsActive,
	}

	body, err := c.doPost(ctx, "products", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Product
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if len(rows) == 0 {
		return p, nil
	}
	return &rows[0], nil
}

// UpdateProduct patches a product with the given column updates.
func (c *Client) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	path := fmt.Sprintf("products?id=eq.%s", id)
	body, err := c.doPatch(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var rows []domain.Product
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "product", ID: id}
	}
	return &rows[0], nil
}

// DeleteProduct removes a single product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	return c.doDelete(ctx, fmt.Sprintf("products?id=eq.%s", id))
}

// DeleteProducts removes a set of products in one call.
func (c *Client) DeleteProducts(ctx context.Context, ids []string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteProducts")
	defer span.End()
	span.SetAttributes(attribute.Int("product.count", len(ids)))

	if len(ids) == 0 {
		return nil
	}
	return c.doDelete(ctx, fmt.Sprintf("products?id=in.(%s)", joinIDs(ids)))
}

// CountProducts returns the total number of products.
func (c *Client) CountProducts(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountProducts")
	defer span.End()

	n, err := c.countRows(ctx, "products")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/products", Err: err}
	}
	return n, nil
}

// ListBanners returns hero banners in display order.
func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListBanners")
	defer span.End()

	rows := []domain.Banner{}
	if err := c.getList(ctx, "hero_banners?order=order.asc", &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/banners", Err: err}
	}
	return rows, nil
}

// CreateBanner inserts a hero banner and returns the stored row.
func (c *Client) CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateBanner")
	defer span.End()

	data := map[string]any{
		"title":     b.Title,
		"subtitle":  b.Subtitle,
		"image_url": b.ImageURL,
		"link_url":  b.LinkURL,
		"is_active": b.IsActive,
		"order":     b.Order,
	}

	body, err := c.doPost(ctx, "hero_banners", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Banner
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode hero_banners: %w", err)
	}
	if len(rows) == 0 {
		return b, nil
	}
	return &rows[0], nil
}

// UpdateBanner patches a hero banner with the given column updates.
func (c *Client) UpdateBanner(ctx context.Context, id string, updates map[string]any) (*domain.Banner, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateBanner")
	defer span.End()
	span.SetAttributes(attribute.String("banner.id", id))

	path := fmt.Sprintf("hero_banners?id=eq.%s", id)
	body, err := c.doPatch(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var rows []domain.Banner
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode hero_banners: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "banner", ID: id}
	}
	return &rows[0], nil
}

// DeleteBanner removes a hero banner.
func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteBanner")
	defer span.End()
	span.SetAttributes(attribute.String("banner.id", id))

	return c.doDelete(ctx, fmt.Sprintf("hero_banners?id=eq.%s", id))
}
