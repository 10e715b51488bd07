package supabase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// ============================================================
// Reviews store: list + moderation
// ============================================================

// ListReviews returns all product reviews, newest first. Enrichment with
// product and reviewer details happens in the service layer.
func (c *Client) ListReviews(ctx context.Context) ([]domain.Review, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListReviews")
	defer span.End()

	rows := []domain.Review{}
	if err := c.getList(ctx, "product_reviews?order=created_at.desc", &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/reviews", Err: err}
	}
	return rows, nil
}

// ModerateReview sets the moderation status of a review.
func (c *Client) ModerateReview(ctx context.Context, reviewID string, status domain.ReviewStatus) error {
	ctx, span := tracer.Start(ctx, "Supabase.ModerateReview")
	defer span.End()
	span.SetAttributes(
		attribute.String("review.id", reviewID),
		attribute.String("status", string(status)),
	)

	path := fmt.Sprintf("product_reviews?id=eq.%s", reviewID)
	body, err := c.doPatch(ctx, path, map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if string(body) == "[]" {
		return &domain.ErrNotFound{Resource: "review", ID: reviewID}
	}
	return nil
}

// CountReviews returns the total number of reviews.
func (c *Client) CountReviews(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountReviews")
	defer span.End()

	n, err := c.countRows(ctx, "product_reviews")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/reviews", Err: err}
	}
	return n, nil
}

// ListRecentReviews returns the newest reviews for the dashboard.
func (c *Client) ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecentReviews")
	defer span.End()

	rows := []domain.Review{}
	path := fmt.Sprintf("product_reviews?order=created_at.desc&limit=%d", limit)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/reviews", Err: err}
	}
	return rows, nil
}
