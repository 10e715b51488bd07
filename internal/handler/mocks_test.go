package handler

import (
	"context"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// stubBackend implements every store port in memory, just enough to exercise
// routing, middleware and error mapping.
type stubBackend struct {
	profiles map[string]*domain.Profile
	orders   map[string]*domain.Order
	returns  map[string]*domain.Return
	pincodes map[string]*domain.Pincode

	createPincodeErr error
	notifyErr        error
	notifyCalls      int
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		profiles: map[string]*domain.Profile{},
		orders:   map[string]*domain.Order{},
		returns:  map[string]*domain.Return{},
		pincodes: map[string]*domain.Pincode{},
	}
}

// --- IdentityProvider ---

func (s *stubBackend) GetSession(ctx context.Context, accessToken string) (*domain.Session, error) {
	return nil, &domain.ErrUnauthorized{}
}

func (s *stubBackend) SignOut(ctx context.Context, accessToken string) error { return nil }

// --- ProfileStore ---

func (s *stubBackend) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	return p, nil
}

func (s *stubBackend) CountProfiles(ctx context.Context) (int64, error) {
	return int64(len(s.profiles)), nil
}

func (s *stubBackend) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	s.profiles[p.ID] = p
	return p, nil
}

func (s *stubBackend) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubBackend) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	p, ok := s.profiles[userID]
	if !ok {
		return &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	p.IsAdmin = isAdmin
	return nil
}

// --- OrderStore ---

func (s *stubBackend) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubBackend) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "order", ID: orderID}
	}
	return o, nil
}

func (s *stubBackend) CountOrders(ctx context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func (s *stubBackend) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.ListOrders(ctx)
}

// --- ReturnStore ---

func (s *stubBackend) ListReturns(ctx context.Context) ([]domain.Return, error) {
	var out []domain.Return
	for _, r := range s.returns {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubBackend) GetReturn(ctx context.Context, returnID string) (*domain.Return, error) {
	r, ok := s.returns[returnID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	return r, nil
}

func (s *stubBackend) UpdateReturnStatus(ctx context.Context, returnID string, status domain.ReturnStatus, adminRemark string) (*domain.Return, error) {
	r, ok := s.returns[returnID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	r.Status = status
	r.AdminRemark = adminRemark
	return r, nil
}

func (s *stubBackend) CountReturns(ctx context.Context) (int64, error) {
	return int64(len(s.returns)), nil
}

func (s *stubBackend) ListRecentReturns(ctx context.Context, limit int) ([]domain.Return, error) {
	return s.ListReturns(ctx)
}

// --- StatusNotifier ---

func (s *stubBackend) NotifyStatusChange(ctx context.Context, accessToken string, req *domain.StatusChangeRequest) error {
	s.notifyCalls++
	return s.notifyErr
}

// --- CatalogStore ---

func (s *stubBackend) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubBackend) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return c, nil
}

func (s *stubBackend) UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.Category, error) {
	return &domain.Category{ID: id}, nil
}

func (s *stubBackend) DeleteCategory(ctx context.Context, id string) error { return nil }

func (s *stubBackend) CountCategories(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubBackend) CountProductsInCategory(ctx context.Context, categoryID string) (int64, error) {
	return 0, nil
}

func (s *stubBackend) ListProducts(ctx context.Context) ([]domain.Product, error) { return nil, nil }

func (s *stubBackend) GetProductRefs(ctx context.Context, ids []string) ([]domain.ProductRef, error) {
	return nil, nil
}

func (s *stubBackend) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	return p, nil
}

func (s *stubBackend) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.Product, error) {
	return &domain.Product{ID: id}, nil
}

func (s *stubBackend) DeleteProduct(ctx context.Context, id string) error { return nil }

func (s *stubBackend) DeleteProducts(ctx context.Context, ids []string) error { return nil }

func (s *stubBackend) CountProducts(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubBackend) ListBanners(ctx context.Context) ([]domain.Banner, error) { return nil, nil }

func (s *stubBackend) CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	return b, nil
}

func (s *stubBackend) UpdateBanner(ctx context.Context, id string, updates map[string]any) (*domain.Banner, error) {
	return &domain.Banner{ID: id}, nil
}

func (s *stubBackend) DeleteBanner(ctx context.Context, id string) error { return nil }

// --- ReviewStore ---

func (s *stubBackend) ListReviews(ctx context.Context) ([]domain.Review, error) { return nil, nil }

func (s *stubBackend) ModerateReview(ctx context.Context, reviewID string, status domain.ReviewStatus) error {
	return nil
}

func (s *stubBackend) CountReviews(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubBackend) ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	return nil, nil
}

func (s *stubBackend) GetProfileRefs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	return nil, nil
}

// --- WishlistStore ---

func (s *stubBackend) ListWishlists(ctx context.Context) ([]domain.WishlistItem, error) {
	return nil, nil
}

func (s *stubBackend) DeleteWishlistItem(ctx context.Context, id string) error { return nil }

// --- PincodeStore ---

func (s *stubBackend) ListPincodes(ctx context.Context) ([]domain.Pincode, error) {
	var out []domain.Pincode
	for _, p := range s.pincodes {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubBackend) CreatePincode(ctx context.Context, p *domain.Pincode) (*domain.Pincode, error) {
	if s.createPincodeErr != nil {
		return nil, s.createPincodeErr
	}
	s.pincodes[p.Pincode] = p
	return p, nil
}

func (s *stubBackend) UpdatePincode(ctx context.Context, id string, updates map[string]any) (*domain.Pincode, error) {
	return &domain.Pincode{ID: id}, nil
}

func (s *stubBackend) DeletePincode(ctx context.Context, id string) error { return nil }

func (s *stubBackend) CountPincodes(ctx context.Context) (int64, error) {
	return int64(len(s.pincodes)), nil
}

func (s *stubBackend) ListRecentPincodes(ctx context.Context, limit int) ([]domain.Pincode, error) {
	return s.ListPincodes(ctx)
}

// --- ObjectStore ---

func (s *stubBackend) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (*domain.UploadResult, error) {
	return &domain.UploadResult{Bucket: bucket, Path: path, PublicURL: "https://cdn/" + bucket + "/" + path}, nil
}
