package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/service"
)

// ============================================================
// Categories
// ============================================================

func listCategoriesHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListCategories")
		defer span.End()

		activeOnly := r.URL.Query().Get("active") == "true"
		categories, err := svc.ListCategories(ctx, activeOnly)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func createCategoryHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.CreateCategory")
		defer span.End()

		var cat domain.Category
		if err := decodeBody(r, &cat); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		created, err := svc.CreateCategory(ctx, &cat)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateCategoryHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.UpdateCategory")
		defer span.End()

		id := chi.URLParam(r, "categoryID")
		span.SetAttributes(attribute.String("category.id", id))

		var updates map[string]any
		if err := decodeBody(r, &updates); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.UpdateCategory(ctx, id, updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteCategoryHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.DeleteCategory")
		defer span.End()

		id := chi.URLParam(r, "categoryID")
		if err := svc.DeleteCategory(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ============================================================
// Products
// ============================================================

func listProductsHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListProducts")
		defer span.End()

		products, err := svc.ListProducts(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}

func createProductHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.CreateProduct")
		defer span.End()

		var p domain.Product
		if err := decodeBody(r, &p); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		created, err := svc.CreateProduct(ctx, &p)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateProductHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.UpdateProduct")
		defer span.End()

		id := chi.URLParam(r, "productID")
		span.SetAttributes(attribute.String("product.id", id))

		var updates map[string]any
		if err := decodeBody(r, &updates); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.UpdateProduct(ctx, id, updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteProductHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.DeleteProduct")
		defer span.End()

		id := chi.URLParam(r, "productID")
		if err := svc.DeleteProduct(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func bulkDeleteProductsHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.BulkDeleteProducts")
		defer span.End()

		var req struct {
			IDs []string `json:"ids"`
		}
		if err := decodeBody(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		if err := svc.DeleteProducts(ctx, req.IDs); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "count": len(req.IDs)})
	}
}

// ============================================================
// Hero banners
// ============================================================

func listBannersHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.ListBanners")
		defer span.End()

		banners, err := svc.ListBanners(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, banners)
	}
}

func createBannerHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.CreateBanner")
		defer span.End()

		var b domain.Banner
		if err := decodeBody(r, &b); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		created, err := svc.CreateBanner(ctx, &b)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateBannerHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.UpdateBanner")
		defer span.End()

		id := chi.URLParam(r, "bannerID")
		var updates map[string]any
		if err := decodeBody(r, &updates); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.UpdateBanner(ctx, id, updates)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteBannerHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.DeleteBanner")
		defer span.End()

		id := chi.URLParam(r, "bannerID")
		if err := svc.DeleteBanner(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ============================================================
// Image uploads
// ============================================================

// maxUploadBytes caps raw upload size before compression.
const maxUploadBytes = 10 << 20

func uploadImageHandler(svc *service.Catalog, buckets map[string]string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "Handler.UploadImage")
		defer span.End()

		bucketKey := chi.URLParam(r, "bucket")
		bucket, ok := buckets[bucketKey]
		if !ok {
			handleServiceError(w, &domain.ErrValidation{Field: "bucket", Message: "unknown upload bucket"}, logger)
			return
		}
		span.SetAttributes(attribute.String("storage.bucket", bucket))

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
		if err != nil {
			handleServiceError(w, &domain.ErrValidation{Field: "file", Message: "upload too large or unreadable"}, logger)
			return
		}

		result, err := svc.UploadImage(ctx, bucket, data)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}
