package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/infra/observability"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// StatusCoordinator drives order and return status changes. The two flows are
// intentionally asymmetric:
//
//   - Orders: the remote function owns the write and the customer
//     notification. No local mutation, no retry; a failure leaves the order
//     untouched.
//   - Returns: the local returns row is patched first and is authoritative.
//     The function invoke afterwards is best-effort; its failure downgrades
//     the result to success-with-warning.
type StatusCoordinator struct {
	orders   port.OrderStore
	returns  port.ReturnStore
	notifier port.StatusNotifier
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewStatusCoordinator creates the coordinator with all dependencies injected.
func NewStatusCoordinator(
	orders port.OrderStore,
	returns port.ReturnStore,
	notifier port.StatusNotifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *StatusCoordinator {
	return &StatusCoordinator{
		orders:   orders,
		returns:  returns,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// defaultNote is what the customer sees when the admin leaves the note empty.
func defaultNote(status string) string {
	return fmt.Sprintf("Status updated to %s by admin", status)
}

// UpdateOrderStatus validates the transition and delegates the write to the
// remote function using the admin's own credential.
func (s *StatusCoordinator) UpdateOrderStatus(ctx context.Context, accessToken, orderID string, status domain.OrderStatus, note string) error {
	ctx, span := tracer.Start(ctx, "StatusCoordinator.UpdateOrderStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.String("status", string(status)),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("order_status_update", time.Since(start))
	}()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		s.metrics.IncrStatusUpdate("order", "error")
		return err
	}

	if !domain.CanTransitionOrder(order.Status, status) {
		s.metrics.IncrStatusUpdate("order", "error")
		return &domain.ErrInvalidTransition{
			Entity: "order",
			From:   string(order.Status),
			To:     string(status),
		}
	}

	if note == "" {
		note = defaultNote(string(status))
	}

	err = s.notifier.NotifyStatusChange(ctx, accessToken, &domain.StatusChangeRequest{
		OrderID: orderID,
		Status:  string(status),
		Note:    note,
	})
	if err != nil {
		s.metrics.IncrStatusUpdate("order", "error")
		s.metrics.IncrExternalError("status-function")
		s.logger.Error("status coordinator: order status change failed",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return err
	}

	s.metrics.IncrStatusUpdate("order", "success")
	s.logger.Info("status coordinator: order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(status)),
	)
	return nil
}

// UpdateReturnStatus runs the two-phase return flow. The returned result
// reports whether the downstream notification landed; Synced=false is not an
// error, the local write already stuck.
func (s *StatusCoordinator) UpdateReturnStatus(ctx context.Context, accessToken, returnID string, status domain.ReturnStatus, adminRemark string) (*domain.ReturnUpdateResult, error) {
	ctx, span := tracer.Start(ctx, "StatusCoordinator.UpdateReturnStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("return.id", returnID),
		attribute.String("status", string(status)),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("return_status_update", time.Since(start))
	}()

	current, err := s.returns.GetReturn(ctx, returnID)
	if err != nil {
		s.metrics.IncrStatusUpdate("return", "error")
		return nil, err
	}

	if !domain.CanTransitionReturn(current.Status, status) {
		s.metrics.IncrStatusUpdate("return", "error")
		return nil, &domain.ErrInvalidTransition{
			Entity: "return",
			From:   string(current.Status),
			To:     string(status),
		}
	}

	// Phase 1: authoritative local write.
	updated, err := s.returns.UpdateReturnStatus(ctx, returnID, status, adminRemark)
	if err != nil {
		s.metrics.IncrStatusUpdate("return", "error")
		return nil, err
	}

	// Phase 2: best-effort notification. Never rolls back phase 1.
	err = s.notifier.NotifyStatusChange(ctx, accessToken, &domain.StatusChangeRequest{
		OrderID:     updated.OrderID,
		OrderItemID: updated.OrderItemID,
		Status:      string(status),
		Note:        defaultNote(string(status)),
	})
	if err != nil {
		s.metrics.IncrStatusUpdate("return", "partial")
		s.metrics.IncrExternalError("status-function")
		s.logger.Warn("status coordinator: return updated but notification failed",
			zap.String("return_id", returnID),
			zap.String("order_id", updated.OrderID),
			zap.Error(err),
		)
		return &domain.ReturnUpdateResult{
			Return:  updated,
			Synced:  false,
			Warning: fmt.Sprintf("Status was updated, but the order sync failed: %v", err),
		}, nil
	}

	s.metrics.IncrStatusUpdate("return", "success")
	s.logger.Info("status coordinator: return status changed",
		zap.String("return_id", returnID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)
	return &domain.ReturnUpdateResult{Return: updated, Synced: true}, nil
}
