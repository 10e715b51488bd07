package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/observability"
)

func newTestCoordinator(orders *mockOrders, returns *mockReturns, notifier *mockNotifier) *StatusCoordinator {
	return NewStatusCoordinator(orders, returns, notifier, observability.NewMetrics(), zap.NewNop())
}

func TestUpdateOrderStatusPostsFunctionPayload(t *testing.T) {
	orders := newMockOrders()
	orders.orders["ORD123"] = &domain.Order{ID: "ORD123", Status: domain.OrderShipped}
	notifier := &mockNotifier{}

	c := newTestCoordinator(orders, newMockReturns(), notifier)

	err := c.UpdateOrderStatus(context.Background(), "admin-token", "ORD123", domain.OrderDelivered, "")
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	if len(notifier.requests) != 1 {
		t.Fatalf("notifier calls = %d, want exactly 1 (no retry)", len(notifier.requests))
	}
	req := notifier.requests[0]
	if req.OrderID != "ORD123" || req.Status != "delivered" {
		t.Errorf("payload = %+v, want order ORD123 delivered", req)
	}
	if req.Note != "Status updated to delivered by admin" {
		t.Errorf("note = %q, want default admin note", req.Note)
	}
	if req.OrderItemID != "" {
		t.Errorf("order_item_id = %q, must be empty for order updates", req.OrderItemID)
	}
	if notifier.tokens[0] != "admin-token" {
		t.Errorf("token = %q, want the admin's own credential", notifier.tokens[0])
	}
}

func TestUpdateOrderStatusKeepsCustomNote(t *testing.T) {
	orders := newMockOrders()
	orders.orders["o1"] = &domain.Order{ID: "o1", Status: domain.OrderPending}
	notifier := &mockNotifier{}

	c := newTestCoordinator(orders, newMockReturns(), notifier)

	if err := c.UpdateOrderStatus(context.Background(), "t", "o1", domain.OrderConfirmed, "packed by warehouse B"); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if notifier.requests[0].Note != "packed by warehouse B" {
		t.Errorf("note = %q, custom note must pass through", notifier.requests[0].Note)
	}
}

func TestUpdateOrderStatusRejectsSameStatus(t *testing.T) {
	orders := newMockOrders()
	orders.orders["o1"] = &domain.Order{ID: "o1", Status: domain.OrderShipped}
	notifier := &mockNotifier{}

	c := newTestCoordinator(orders, newMockReturns(), notifier)

	err := c.UpdateOrderStatus(context.Background(), "t", "o1", domain.OrderShipped, "")
	var invalid *domain.ErrInvalidTransition
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if len(notifier.requests) != 0 {
		t.Error("rejected transition must not reach the function")
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	orders := newMockOrders()
	orders.orders["o1"] = &domain.Order{ID: "o1", Status: domain.OrderPending}

	c := newTestCoordinator(orders, newMockReturns(), &mockNotifier{})

	err := c.UpdateOrderStatus(context.Background(), "t", "o1", domain.OrderStatus("teleported"), "")
	var invalid *domain.ErrInvalidTransition
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateOrderStatusFunctionFailureSurfacesError(t *testing.T) {
	orders := newMockOrders()
	orders.orders["o1"] = &domain.Order{ID: "o1", Status: domain.OrderPending}
	notifier := &mockNotifier{err: errors.New("insufficient stock for confirmation")}

	c := newTestCoordinator(orders, newMockReturns(), notifier)

	err := c.UpdateOrderStatus(context.Background(), "t", "o1", domain.OrderConfirmed, "")
	if err == nil {
		t.Fatal("expected function failure to surface")
	}
	if len(notifier.requests) != 1 {
		t.Errorf("notifier calls = %d, want exactly 1 (no retry on failure)", len(notifier.requests))
	}
}

func TestUpdateReturnStatusTwoPhaseSuccess(t *testing.T) {
	returns := newMockReturns()
	returns.returns["r1"] = &domain.Return{ID: "r1", OrderID: "o1", OrderItemID: "oi1", Status: domain.ReturnRequested}
	notifier := &mockNotifier{}

	c := newTestCoordinator(newMockOrders(), returns, notifier)

	result, err := c.UpdateReturnStatus(context.Background(), "t", "r1", domain.ReturnApproved, "looks valid")
	if err != nil {
		t.Fatalf("UpdateReturnStatus: %v", err)
	}
	if !result.Synced || result.Warning != "" {
		t.Errorf("result = %+v, want synced with no warning", result)
	}
	if result.Return.Status != domain.ReturnApproved {
		t.Errorf("status = %s, want return_approved", result.Return.Status)
	}
	if result.Return.AdminRemark != "looks valid" {
		t.Errorf("admin remark = %q, want persisted", result.Return.AdminRemark)
	}

	req := notifier.requests[0]
	if req.OrderID != "o1" || req.OrderItemID != "oi1" {
		t.Errorf("payload = %+v, want order o1 item oi1", req)
	}
}

func TestUpdateReturnStatusNotifyFailureIsWarningNotError(t *testing.T) {
	returns := newMockReturns()
	returns.returns["r1"] = &domain.Return{ID: "r1", OrderID: "o1", Status: domain.ReturnRequested}
	notifier := &mockNotifier{err: errors.New("function unreachable")}

	c := newTestCoordinator(newMockOrders(), returns, notifier)

	result, err := c.UpdateReturnStatus(context.Background(), "t", "r1", domain.ReturnApproved, "")
	if err != nil {
		t.Fatalf("notify failure must not fail the update, got %v", err)
	}
	if result.Synced {
		t.Error("Synced = true, want false when the notification failed")
	}
	if result.Warning == "" {
		t.Error("warning must explain the partial outcome")
	}
	// Phase 1 stuck.
	if returns.returns["r1"].Status != domain.ReturnApproved {
		t.Errorf("local status = %s, the write must survive the failed notify", returns.returns["r1"].Status)
	}
}

func TestUpdateReturnStatusLocalWriteFailureIsError(t *testing.T) {
	returns := newMockReturns()
	returns.returns["r1"] = &domain.Return{ID: "r1", OrderID: "o1", Status: domain.ReturnRequested}
	returns.updateErr = errors.New("row locked")
	notifier := &mockNotifier{}

	c := newTestCoordinator(newMockOrders(), returns, notifier)

	if _, err := c.UpdateReturnStatus(context.Background(), "t", "r1", domain.ReturnApproved, ""); err == nil {
		t.Fatal("failed local write must fail the whole update")
	}
	if len(notifier.requests) != 0 {
		t.Error("notification must not fire when the local write failed")
	}
}

func TestUpdateReturnStatusRejectsSameStatus(t *testing.T) {
	returns := newMockReturns()
	returns.returns["r1"] = &domain.Return{ID: "r1", Status: domain.ReturnQCPassed}

	c := newTestCoordinator(newMockOrders(), returns, &mockNotifier{})

	_, err := c.UpdateReturnStatus(context.Background(), "t", "r1", domain.ReturnQCPassed, "")
	var invalid *domain.ErrInvalidTransition
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}
