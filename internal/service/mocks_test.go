package service

import (
	"context"
	"sync"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// Hand-rolled mocks for the ports the services depend on.

type mockIdentity struct {
	mu       sync.Mutex
	session  *domain.Session
	err      error
	signOuts []string
}

func (m *mockIdentity) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockIdentity) SignOut(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signOuts = append(m.signOuts, token)
	return nil
}

type mockProfiles struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	countErr error
	getErr   error

	created []*domain.Profile
}

func newMockProfiles() *mockProfiles {
	return &mockProfiles{profiles: make(map[string]*domain.Profile)}
}

func (m *mockProfiles) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	return p, nil
}

func (m *mockProfiles) CountProfiles(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.profiles)), nil
}

func (m *mockProfiles) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	m.created = append(m.created, p)
	return p, nil
}

func (m *mockProfiles) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProfiles) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	p.IsAdmin = isAdmin
	return nil
}

// mockCache is a plain map cache without TTL.
type mockCache[T any] struct {
	mu    sync.Mutex
	items map[string]T
}

func newMockCache[T any]() *mockCache[T] {
	return &mockCache[T]{items: make(map[string]T)}
}

func (c *mockCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *mockCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *mockCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

type mockOrders struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newMockOrders() *mockOrders {
	return &mockOrders{orders: make(map[string]*domain.Order)}
}

func (m *mockOrders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrders) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "order", ID: orderID}
	}
	return o, nil
}

func (m *mockOrders) CountOrders(ctx context.Context) (int64, error) {
	return int64(len(m.orders)), nil
}

func (m *mockOrders) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return m.ListOrders(ctx)
}

type mockReturns struct {
	mu        sync.Mutex
	returns   map[string]*domain.Return
	updateErr error
	updates   []string
}

func newMockReturns() *mockReturns {
	return &mockReturns{returns: make(map[string]*domain.Return)}
}

func (m *mockReturns) ListReturns(ctx context.Context) ([]domain.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Return, 0, len(m.returns))
	for _, r := range m.returns {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockReturns) GetReturn(ctx context.Context, returnID string) (*domain.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.returns[returnID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	return r, nil
}

func (m *mockReturns) UpdateReturnStatus(ctx context.Context, returnID string, status domain.ReturnStatus, adminRemark string) (*domain.Return, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	r, ok := m.returns[returnID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	r.Status = status
	if adminRemark != "" {
		r.AdminRemark = adminRemark
	}
	m.updates = append(m.updates, returnID)
	return r, nil
}

func (m *mockReturns) CountReturns(ctx context.Context) (int64, error) {
	return int64(len(m.returns)), nil
}

func (m *mockReturns) ListRecentReturns(ctx context.Context, limit int) ([]domain.Return, error) {
	return m.ListReturns(ctx)
}

type mockCatalog struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
	products   map[string]*domain.Product
	banners    map[string]*domain.Banner

	deleteCategoryErr error
	productRefs       []domain.ProductRef
	refsErr           error
	productsInCat     int64
	deletedProducts   []string
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		categories: make(map[string]*domain.Category),
		products:   make(map[string]*domain.Product),
		banners:    make(map[string]*domain.Banner),
	}
}

func (m *mockCatalog) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCatalog) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = "cat-" + c.Slug
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCatalog) UpdateCategory(ctx context.Context, id string, updates map[string]any) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "category", ID: id}
	}
	if v, ok := updates["name"].(string); ok {
		c.Name = v
	}
	if v, ok := updates["slug"].(string); ok {
		c.Slug = v
	}
	return c, nil
}

func (m *mockCatalog) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteCategoryErr != nil {
		return m.deleteCategoryErr
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCatalog) CountCategories(ctx context.Context) (int64, error) {
	return int64(len(m.categories)), nil
}

func (m *mockCatalog) CountProductsInCategory(ctx context.Context, categoryID string) (int64, error) {
	return m.productsInCat, nil
}

func (m *mockCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockCatalog) GetProductRefs(ctx context.Context, ids []string) ([]domain.ProductRef, error) {
	if m.refsErr != nil {
		return nil, m.refsErr
	}
	return m.productRefs, nil
}

func (m *mockCatalog) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = "prod-" + p.Slug
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockCatalog) UpdateProduct(ctx context.Context, id string, updates map[string]any) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "product", ID: id}
	}
	return p, nil
}

func (m *mockCatalog) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	m.deletedProducts = append(m.deletedProducts, id)
	return nil
}

func (m *mockCatalog) DeleteProducts(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.products, id)
	}
	m.deletedProducts = append(m.deletedProducts, ids...)
	return nil
}

func (m *mockCatalog) CountProducts(ctx context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockCatalog) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Banner, 0, len(m.banners))
	for _, b := range m.banners {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockCatalog) CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = "ban-" + b.Title
	}
	m.banners[b.ID] = b
	return b, nil
}

func (m *mockCatalog) UpdateBanner(ctx context.Context, id string, updates map[string]any) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banners[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "banner", ID: id}
	}
	return b, nil
}

func (m *mockCatalog) DeleteBanner(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.banners, id)
	return nil
}

type mockObjects struct {
	mu      sync.Mutex
	uploads []string
}

func (m *mockObjects) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (*domain.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, bucket+"/"+path)
	return &domain.UploadResult{
		Bucket:    bucket,
		Path:      path,
		PublicURL: "https://cdn.example.com/" + bucket + "/" + path,
	}, nil
}

type mockReviews struct {
	mu       sync.Mutex
	reviews  []domain.Review
	profiles []domain.Profile
	refsErr  error

	moderated map[string]domain.ReviewStatus
}

func newMockReviews() *mockReviews {
	return &mockReviews{moderated: make(map[string]domain.ReviewStatus)}
}

func (m *mockReviews) ListReviews(ctx context.Context) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Review, len(m.reviews))
	copy(out, m.reviews)
	return out, nil
}

func (m *mockReviews) ModerateReview(ctx context.Context, reviewID string, status domain.ReviewStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moderated[reviewID] = status
	return nil
}

func (m *mockReviews) CountReviews(ctx context.Context) (int64, error) {
	return int64(len(m.reviews)), nil
}

func (m *mockReviews) ListRecentReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	return m.ListReviews(ctx)
}

func (m *mockReviews) GetProfileRefs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	if m.refsErr != nil {
		return nil, m.refsErr
	}
	return m.profiles, nil
}

type mockPincodes struct {
	mu       sync.Mutex
	pincodes  map[string]*domain.Pincode
	createErr error
}

func newMockPincodes() *mockPincodes {
	return &mockPincodes{pincodes: make(map[string]*domain.Pincode)}
}

func (m *mockPincodes) ListPincodes(ctx context.Context) ([]domain.Pincode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Pincode, 0, len(m.pincodes))
	for _, p := range m.pincodes {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPincodes) CreatePincode(ctx context.Context, p *domain.Pincode) (*domain.Pincode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	if p.ID == "" {
		p.ID = "pin-" + p.Pincode
	}
	m.pincodes[p.ID] = p
	return p, nil
}

func (m *mockPincodes) UpdatePincode(ctx context.Context, id string, updates map[string]any) (*domain.Pincode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pincodes[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "pincode", ID: id}
	}
	return p, nil
}

func (m *mockPincodes) DeletePincode(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pincodes, id)
	return nil
}

func (m *mockPincodes) CountPincodes(ctx context.Context) (int64, error) {
	return int64(len(m.pincodes)), nil
}

func (m *mockPincodes) ListRecentPincodes(ctx context.Context, limit int) ([]domain.Pincode, error) {
	return m.ListPincodes(ctx)
}

type mockNotifier struct {
	mu       sync.Mutex
	err      error
	requests []*domain.StatusChangeRequest
	tokens   []string
}

func (m *mockNotifier) NotifyStatusChange(ctx context.Context, accessToken string, req *domain.StatusChangeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	m.tokens = append(m.tokens, accessToken)
	return m.err
}
