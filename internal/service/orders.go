package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// Orders serves the read-side of the order and return views. All mutation
// goes through the StatusCoordinator.
type Orders struct {
	orders  port.OrderStore
	returns port.ReturnStore
	logger  *zap.Logger
}

// NewOrders creates the orders view service.
func NewOrders(orders port.OrderStore, returns port.ReturnStore, logger *zap.Logger) *Orders {
	return &Orders{orders: orders, returns: returns, logger: logger}
}

func (o *Orders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Orders.ListOrders")
	defer span.End()
	return o.orders.ListOrders(ctx)
}

func (o *Orders) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "Orders.GetOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID))
	return o.orders.GetOrder(ctx, orderID)
}

func (o *Orders) ListReturns(ctx context.Context) ([]domain.Return, error) {
	ctx, span := tracer.Start(ctx, "Orders.ListReturns")
	defer span.End()
	return o.returns.ListReturns(ctx)
}

// GetReturnDetail loads a return together with its parent order. A missing
// order degrades to the bare return rather than failing the detail view.
func (o *Orders) GetReturnDetail(ctx context.Context, returnID string) (*domain.ReturnDetail, error) {
	ctx, span := tracer.Start(ctx, "Orders.GetReturnDetail")
	defer span.End()
	span.SetAttributes(attribute.String("return.id", returnID))

	ret, err := o.returns.GetReturn(ctx, returnID)
	if err != nil {
		return nil, err
	}

	detail := &domain.ReturnDetail{Return: *ret}
	order, err := o.orders.GetOrder(ctx, ret.OrderID)
	if err != nil {
		o.logger.Warn("orders: return detail missing parent order",
			zap.String("return_id", returnID),
			zap.String("order_id", ret.OrderID),
			zap.Error(err),
		)
		return detail, nil
	}
	detail.Order = order
	return detail, nil
}
