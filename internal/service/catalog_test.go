package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Fresh Vegetables", "fresh-vegetables"},
		{"  Dairy & Eggs  ", "dairy-eggs"},
		{"100% Organic!", "100-organic"},
		{"UPPER", "upper"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	store := newMockCatalog()
	svc := NewCatalog(store, &mockObjects{}, zap.NewNop())

	created, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "Fresh Fruits"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.Slug != "fresh-fruits" {
		t.Errorf("slug = %q, want fresh-fruits", created.Slug)
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := NewCatalog(newMockCatalog(), &mockObjects{}, zap.NewNop())

	_, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "   "})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeleteCategoryPhrasesForeignKeyConflict(t *testing.T) {
	store := newMockCatalog()
	store.deleteCategoryErr = &domain.ErrConflict{Code: "23503", Message: "violates foreign key constraint"}
	store.productsInCat = 7
	svc := NewCatalog(store, &mockObjects{}, zap.NewNop())

	err := svc.DeleteCategory(context.Background(), "cat1")
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if !strings.Contains(conflict.Message, "7 product(s)") {
		t.Errorf("message = %q, want the referencing product count", conflict.Message)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewCatalog(newMockCatalog(), &mockObjects{}, zap.NewNop())

	cases := []struct {
		name string
		p    domain.Product
	}{
		{"missing name", domain.Product{CategoryID: "c1", Price: 10}},
		{"missing category", domain.Product{Name: "Apple", Price: 10}},
		{"negative price", domain.Product{Name: "Apple", CategoryID: "c1", Price: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), &tc.p)
			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestDeleteProductsRejectsEmptySelection(t *testing.T) {
	svc := NewCatalog(newMockCatalog(), &mockObjects{}, zap.NewNop())

	err := svc.DeleteProducts(context.Background(), nil)
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDeleteProductsBulk(t *testing.T) {
	store := newMockCatalog()
	store.products["p1"] = &domain.Product{ID: "p1"}
	store.products["p2"] = &domain.Product{ID: "p2"}
	svc := NewCatalog(store, &mockObjects{}, zap.NewNop())

	if err := svc.DeleteProducts(context.Background(), []string{"p1", "p2"}); err != nil {
		t.Fatalf("DeleteProducts: %v", err)
	}
	if len(store.products) != 0 {
		t.Errorf("products left = %d, want 0", len(store.products))
	}
}

func TestUploadImageRejectsGarbage(t *testing.T) {
	svc := NewCatalog(newMockCatalog(), &mockObjects{}, zap.NewNop())

	_, err := svc.UploadImage(context.Background(), "product-images", []byte("not an image"))
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
