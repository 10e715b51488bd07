package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// Upload stores a blob in a public bucket and returns its public URL.
// Implements port.ObjectStore.
func (c *Client) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (*domain.UploadResult, error) {
	ctx, span := tracer.Start(ctx, "Supabase.Upload")
	defer span.End()
	span.SetAttributes(
		attribute.String("storage.bucket", bucket),
		attribute.String("storage.path", path),
	)

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.bearer(ctx)))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "false")

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: upload request failed",
			zap.String("bucket", bucket),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &domain.ErrExternalService{Service: "supabase/storage", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: upload non-2xx",
			zap.String("bucket", bucket),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &domain.ErrExternalService{
			Service: "supabase/storage",
			Err:     fmt.Errorf("upload returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	c.logger.Info("supabase: object uploaded",
		zap.String("bucket", bucket),
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	return &domain.UploadResult{
		Bucket:    bucket,
		Path:      path,
		PublicURL: fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, path),
	}, nil
}
