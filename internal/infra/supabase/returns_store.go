package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// ============================================================
// Returns store: list, detail, status update
// ============================================================

// ListReturns returns all return requests, newest first.
func (c *Client) ListReturns(ctx context.Context) ([]domain.Return, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListReturns")
	defer span.End()

	rows := []domain.Return{}
	if err := c.getList(ctx, "returns?order=requested_at.desc", &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/returns", Err: err}
	}
	return rows, nil
}

// GetReturn fetches a single return request.
func (c *Client) GetReturn(ctx context.Context, returnID string) (*domain.Return, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetReturn")
	defer span.End()
	span.SetAttributes(attribute.String("return.id", returnID))

	rows := []domain.Return{}
	path := fmt.Sprintf("returns?id=eq.%s&limit=1", returnID)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/returns", Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	return &rows[0], nil
}

// UpdateReturnStatus patches the returns row. This write is the authoritative
// step of a return status change; the downstream notification is separate.
func (c *Client) UpdateReturnStatus(ctx context.Context, returnID string, status domain.ReturnStatus, adminRemark string) (*domain.Return, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateReturnStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("return.id", returnID),
		attribute.String("status", string(status)),
	)

	data := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if adminRemark != "" {
		data["admin_remark"] = adminRemark
	}

	path := fmt.Sprintf("returns?id=eq.%s", returnID)
	body, err := c.doPatch(ctx, path, data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Return
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode returns: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "return", ID: returnID}
	}
	return &rows[0], nil
}

// CountReturns returns the total number of return requests.
func (c *Client) CountReturns(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountReturns")
	defer span.End()

	n, err := c.countRows(ctx, "returns")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/returns", Err: err}
	}
	return n, nil
}

// ListRecentReturns returns the newest return requests for the dashboard.
func (c *Client) ListRecentReturns(ctx context.Context, limit int) ([]domain.Return, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecentReturns")
	defer span.End()

	rows := []domain.Return{}
	path := fmt.Sprintf("returns?order=requested_at.desc&limit=%d", limit)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/returns", Err: err}
	}
	return rows, nil
}
