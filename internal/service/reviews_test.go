package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

func TestListReviewsEnrichesProductAndReviewer(t *testing.T) {
	store := newMockReviews()
	store.reviews = []domain.Review{
		{ID: "rv1", ProductID: "p1", UserID: "u1", Rating: 5},
		{ID: "rv2", ProductID: "p2", UserID: "u1", Rating: 2},
	}
	store.profiles = []domain.Profile{
		{ID: "u1", Email: "jo@example.com", FullName: "Jo Smith"},
	}
	catalog := newMockCatalog()
	catalog.productRefs = []domain.ProductRef{
		{ID: "p1", Name: "Basmati Rice", ThumbnailURL: "https://cdn/p1.jpg"},
	}

	svc := NewReviews(store, catalog, zap.NewNop())

	reviews, err := svc.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("len = %d, want 2", len(reviews))
	}
	if reviews[0].ProductName != "Basmati Rice" || reviews[0].ProductThumbnail != "https://cdn/p1.jpg" {
		t.Errorf("review p1 not enriched: %+v", reviews[0])
	}
	if reviews[0].ReviewerName != "Jo Smith" || reviews[0].ReviewerEmail != "jo@example.com" {
		t.Errorf("reviewer not enriched: %+v", reviews[0])
	}
	// p2 has no matching ref; display fields stay empty.
	if reviews[1].ProductName != "" {
		t.Errorf("review p2 unexpectedly enriched: %+v", reviews[1])
	}
}

func TestListReviewsEnrichmentFailureDegrades(t *testing.T) {
	store := newMockReviews()
	store.reviews = []domain.Review{{ID: "rv1", ProductID: "p1", UserID: "u1"}}
	catalog := newMockCatalog()
	catalog.refsErr = errors.New("lookup down")

	svc := NewReviews(store, catalog, zap.NewNop())

	reviews, err := svc.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("enrichment failure must not fail the list, got %v", err)
	}
	if len(reviews) != 1 || reviews[0].ProductName != "" {
		t.Errorf("reviews = %+v, want bare list", reviews)
	}
}

func TestModerateAcceptsOnlyDecisions(t *testing.T) {
	store := newMockReviews()
	svc := NewReviews(store, newMockCatalog(), zap.NewNop())

	if err := svc.Moderate(context.Background(), "rv1", domain.ReviewApproved); err != nil {
		t.Fatalf("Moderate approved: %v", err)
	}
	if store.moderated["rv1"] != domain.ReviewApproved {
		t.Error("approved decision not persisted")
	}

	err := svc.Moderate(context.Background(), "rv1", domain.ReviewPending)
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, pending is not a moderation decision", err)
	}
}
