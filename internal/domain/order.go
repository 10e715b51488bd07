package domain

import "time"

// OrderStatus is the closed set of states an order moves through.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every valid order status in display order.
var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderShipped,
	OrderOutForDelivery,
	OrderDelivered,
	OrderCancelled,
}

// Valid reports whether s is a member of the closed enum.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionOrder is the allowed-transitions predicate for orders. The
// storage side enforces no graph; every status is reachable from every other
// except re-selecting the current one, which would be a pointless no-op write.
func CanTransitionOrder(from, to OrderStatus) bool {
	return to.Valid() && from != to
}

// Order is created by the customer-facing storefront and only ever mutated
// here through status updates.
type Order struct {
	ID            string      `json:"id"`
	OrderCode     string      `json:"order_code,omitempty"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Amount        float64     `json:"amount"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"order_items,omitempty"`
}

// OrderItem is a single line of an order. ProductName is resolved through the
// embedded products relation.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
}

// StatusChangeRequest is the body posted to the remote status-change function.
// OrderItemID is only set for return-driven notifications.
type StatusChangeRequest struct {
	OrderID     string `json:"order_id"`
	OrderItemID string `json:"order_item_id,omitempty"`
	Status      string `json:"status"`
	Note        string `json:"note"`
}
