package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// Reviews handles product review moderation and display enrichment.
type Reviews struct {
	store  port.ReviewStore
	refs   port.CatalogStore
	logger *zap.Logger
}

// NewReviews creates the reviews service.
func NewReviews(store port.ReviewStore, refs port.CatalogStore, logger *zap.Logger) *Reviews {
	return &Reviews{store: store, refs: refs, logger: logger}
}

// ListReviews returns all reviews enriched with product and reviewer details.
// The two id-set lookups run concurrently. Enrichment is best-effort: a
// failed lookup leaves the display fields empty instead of failing the list.
func (r *Reviews) ListReviews(ctx context.Context) ([]domain.Review, error) {
	ctx, span := tracer.Start(ctx, "Reviews.ListReviews")
	defer span.End()

	reviews, err := r.store.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return reviews, nil
	}

	productIDs := uniqueIDs(reviews, func(rv domain.Review) string { return rv.ProductID })
	userIDs := uniqueIDs(reviews, func(rv domain.Review) string { return rv.UserID })

	var (
		products []domain.ProductRef
		profiles []domain.Profile
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = r.refs.GetProductRefs(gCtx, productIDs)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = r.store.GetProfileRefs(gCtx, userIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Warn("reviews: enrichment lookup failed", zap.Error(err))
		return reviews, nil
	}

	productByID := make(map[string]domain.ProductRef, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}
	profileByID := make(map[string]domain.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	for i := range reviews {
		if p, ok := productByID[reviews[i].ProductID]; ok {
			reviews[i].ProductName = p.Name
			reviews[i].ProductThumbnail = p.ThumbnailURL
		}
		if u, ok := profileByID[reviews[i].UserID]; ok {
			reviews[i].ReviewerName = u.FullName
			reviews[i].ReviewerEmail = u.Email
		}
	}
	return reviews, nil
}

// Moderate sets a review's moderation status.
func (r *Reviews) Moderate(ctx context.Context, reviewID string, status domain.ReviewStatus) error {
	ctx, span := tracer.Start(ctx, "Reviews.Moderate")
	defer span.End()
	span.SetAttributes(
		attribute.String("review.id", reviewID),
		attribute.String("status", string(status)),
	)

	if status != domain.ReviewApproved && status != domain.ReviewRejected {
		return &domain.ErrValidation{Field: "status", Message: "status must be approved or rejected"}
	}
	return r.store.ModerateReview(ctx, reviewID, status)
}

// uniqueIDs collects the distinct non-empty keys of a review list.
func uniqueIDs(reviews []domain.Review, key func(domain.Review) string) []string {
	seen := make(map[string]struct{}, len(reviews))
	out := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		k := key(rv)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
