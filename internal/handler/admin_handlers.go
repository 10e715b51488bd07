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
// Dashboard
// ============================================================

func dashboardStatsHandler(svc *service.Dashboard, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.DashboardStats")
		defer span.End()

		stats, err := svc.GetStats(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func dashboardMetricsHandler(svc *service.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.GetOpsMetrics())
	}
}

// ============================================================
// Reviews
// ============================================================

func listReviewsHandler(svc *service.Reviews, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListReviews")
		defer span.End()

		reviews, err := svc.ListReviews(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

func moderateReviewHandler(svc *service.Reviews, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ModerateReview")
		defer span.End()

		id := chi.URLParam(r, "reviewID")
		span.SetAttributes(attribute.String("review.id", id))

		var req struct {
			Status string `json:"status"`
		}
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.Moderate(ctx, id, domain.ReviewStatus(req.Status)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}

// ============================================================
// Users
// ============================================================

func listUsersHandler(svc *service.Users, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListUsers")
		defer span.End()

		users, err := svc.ListUsers(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

func setAdminHandler(svc *service.Users, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.SetAdmin")
		defer span.End()

		id := chi.URLParam(r, "userID")
		span.SetAttributes(attribute.String("user.id", id))

		var req struct {
			IsAdmin bool `json:"is_admin"`
		}
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		session := SessionFromContext(ctx)
		if err := svc.SetAdmin(ctx, session.UserID, id, req.IsAdmin); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user_id": id, "is_admin": req.IsAdmin})
	}
}

// ============================================================
// Wishlists
// ============================================================

func listWishlistsHandler(svc *service.Wishlists, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListWishlists")
		defer span.End()

		items, err := svc.ListWishlists(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func deleteWishlistHandler(svc *service.Wishlists, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.DeleteWishlist")
		defer span.End()

		id := chi.URLParam(r, "wishlistID")
		if err := svc.DeleteItem(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ============================================================
// Serviceable pincodes
// ============================================================

func listPincodesHandler(svc *service.Pincodes, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListPincodes")
		defer span.End()

		pincodes, err := svc.ListPincodes(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, pincodes)
	}
}

func createPincodeHandler(svc *service.Pincodes, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.CreatePincode")
		defer span.End()

		var pc domain.Pincode
		if err := decodeBody(r, &pc); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		created, err := svc.CreatePincode(ctx, &pc)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updatePincodeHandler(svc *service.Pincodes, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.UpdatePincode")
		defer span.End()

		id := chi.URLParam(r, "pincodeID")
		var updates map[string]any
		if err := decodeBody(r, &updates); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.UpdatePincode(ctx, id, updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deletePincodeHandler(svc *service.Pincodes, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.DeletePincode")
		defer span.End()

		id := chi.URLParam(r, "pincodeID")
		if err := svc.DeletePincode(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
