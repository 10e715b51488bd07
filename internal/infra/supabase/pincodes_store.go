package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// ============================================================
// Serviceable pincodes store: CRUD + active toggle
// ============================================================

// ListPincodes returns all serviceable pincodes, newest first.
func (c *Client) ListPincodes(ctx context.Context) ([]domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListPincodes")
	defer span.End()

	rows := []domain.Pincode{}
	if err := c.getList(ctx, "serviceable_pincodes?order=created_at.desc", &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/pincodes", Err: err}
	}
	return rows, nil
}

// CreatePincode inserts a pincode. A unique constraint violation surfaces as
// a conflict for the handler to phrase.
func (c *Client) CreatePincode(ctx context.Context, p *domain.Pincode) (*domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreatePincode")
	defer span.End()
	span.SetAttributes(attribute.String("pincode", p.Pincode))

	data := map[string]any{
		"pincode":   p.Pincode,
		"city":      p.City,
		"state":     p.State,
		"is_active": p.IsActive,
	}

	body, err := c.doPost(ctx, "serviceable_pincodes", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Pincode
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode serviceable_pincodes: %w", err)
	}
	if len(rows) == 0 {
		return p, nil
	}
	return &rows[0], nil
}

// UpdatePincode patches a pincode with the given column updates.
func (c *Client) UpdatePincode(ctx context.Context, id string, updates map[string]any) (*domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdatePincode")
	defer span.End()
	span.SetAttributes(attribute.String("pincode.id", id))

	path := fmt.Sprintf("serviceable_pincodes?id=eq.%s", id)
	body, err := c.doPatch(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var rows []domain.Pincode
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode serviceable_pincodes: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "pincode", ID: id}
	}
	return &rows[0], nil
}

// DeletePincode removes a pincode.
func (c *Client) DeletePincode(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeletePincode")
	defer span.End()
	span.SetAttributes(attribute.String("pincode.id", id))

	return c.doDelete(ctx, fmt.Sprintf("serviceable_pincodes?id=eq.%s", id))
}

// CountPincodes returns the total number of serviceable pincodes.
func (c *Client) CountPincodes(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountPincodes")
	defer span.End()

	n, err := c.countRows(ctx, "serviceable_pincodes")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/pincodes", Err: err}
	}
	return n, nil
}

// ListRecentPincodes returns the newest pincodes for the dashboard.
func (c *Client) ListRecentPincodes(ctx context.Context, limit int) ([]domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecentPincodes")
	defer span.End()

	rows := []domain.Pincode{}
	path := fmt.Sprintf("serviceable_pincodes?order=created_at.desc&limit=%d", limit)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/pincodes", Err: err}
	}
	return rows, nil
}
