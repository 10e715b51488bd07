package supabase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// ============================================================
// Orders store: read-only; status changes go through the
// edge function, never a direct table write
// ============================================================

// orderRow maps the orders table with its embedded items. The nested
// products(name) relation carries the display name for each line.
type orderRow struct {
	ID            string         `json:"id"`
	OrderCode     string         `json:"order_code"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	Amount        float64        `json:"amount"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"payment_method"`
	CreatedAt     time.Time      `json:"created_at"`
	OrderItems    []orderItemRow `json:"order_items"`
}

type orderItemRow struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Products  *struct {
		Name string `json:"name"`
	} `json:"products"`
}

func (r orderRow) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(r.OrderItems))
	for _, it := range r.OrderItems {
		item := domain.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Qty:       it.Qty,
			Price:     it.Price,
		}
		if it.Products != nil {
			item.ProductName = it.Products.Name
		}
		items = append(items, item)
	}
	return domain.Order{
		ID:            r.ID,
		OrderCode:     r.OrderCode,
		Name:          r.Name,
		Phone:         r.Phone,
		Address:       r.Address,
		Amount:        r.Amount,
		Status:        domain.OrderStatus(r.Status),
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
		Items:         items,
	}
}

const orderSelect = "select=*,order_items(*,products(name))"

// ListOrders returns all orders with their items, newest first.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListOrders")
	defer span.End()

	rows := []orderRow{}
	path := fmt.Sprintf("orders?%s&order=created_at.desc", orderSelect)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.toDomain())
	}
	return orders, nil
}

// GetOrder fetches a single order with its items.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID))

	rows := []orderRow{}
	path := fmt.Sprintf("orders?id=eq.%s&%s&limit=1", orderID, orderSelect)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "order", ID: orderID}
	}
	order := rows[0].toDomain()
	return &order, nil
}

// CountOrders returns the total number of orders.
func (c *Client) CountOrders(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountOrders")
	defer span.End()

	n, err := c.countRows(ctx, "orders")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}
	return n, nil
}

// ListRecentOrders returns the newest orders for the dashboard.
func (c *Client) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecentOrders")
	defer span.End()

	rows := []orderRow{}
	path := fmt.Sprintf("orders?%s&order=created_at.desc&limit=%d", orderSelect, limit)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/orders", Err: err}
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, r.toDomain())
	}
	return orders, nil
}
