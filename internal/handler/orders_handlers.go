package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/service"
)

// ============================================================
// Orders & returns
// ============================================================

func listOrdersHandler(svc *service.Orders, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListOrders")
		defer span.End()

		orders, err := svc.ListOrders(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func getOrderHandler(svc *service.Orders, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.GetOrder")
		defer span.End()

		id := chi.URLParam(r, "orderID")
		span.SetAttributes(attribute.String("order.id", id))

		order, err := svc.GetOrder(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func orderStatusHandler(svc *service.StatusCoordinator, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.OrderStatus")
		defer span.End()

		id := chi.URLParam(r, "orderID")
		span.SetAttributes(attribute.String("order.id", id))

		var req struct {
			Status string `json:"status"`
			Note   string `json:"note"`
		}
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		session := SessionFromContext(ctx)
		err := svc.UpdateOrderStatus(ctx, session.AccessToken, id, domain.OrderStatus(req.Status), req.Note)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func listReturnsHandler(svc *service.Orders, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListReturns")
		defer span.End()

		returns, err := svc.ListReturns(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, returns)
	}
}

func getReturnHandler(svc *service.Orders, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.GetReturn")
		defer span.End()

		id := chi.URLParam(r, "returnID")
		span.SetAttributes(attribute.String("return.id", id))

		detail, err := svc.GetReturnDetail(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	}
}

func returnStatusHandler(svc *service.StatusCoordinator, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ReturnStatus")
		defer span.End()

		id := chi.URLParam(r, "returnID")
		span.SetAttributes(attribute.String("return.id", id))

		var req struct {
			Status      string `json:"status"`
			AdminRemark string `json:"admin_remark"`
		}
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		session := SessionFromContext(ctx)
		result, err := svc.UpdateReturnStatus(ctx, session.AccessToken, id, domain.ReturnStatus(req.Status), req.AdminRemark)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
