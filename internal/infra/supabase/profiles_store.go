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
// Profiles store: lookup, count, provision, role toggle
// ============================================================

// GetProfile fetches the profile for a provider user id.
func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var rows []domain.Profile
	path := fmt.Sprintf("profiles?id=eq.%s&limit=1", userID)
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/profiles", Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	return &rows[0], nil
}

// CountProfiles returns the total number of profiles. Zero means this is the
// very first sign-in against an empty install.
func (c *Client) CountProfiles(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CountProfiles")
	defer span.End()

	n, err := c.countRows(ctx, "profiles")
	if err != nil {
		return 0, &domain.ErrExternalService{Service: "supabase/profiles", Err: err}
	}
	return n, nil
}

// CreateProfile provisions a profile row for a freshly signed-in user.
func (c *Client) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", p.ID))

	data := map[string]any{
		"id":         p.ID,
		"email":      p.Email,
		"full_name":  p.FullName,
		"avatar_url": p.AvatarURL,
		"is_admin":   p.IsAdmin,
	}

	body, err := c.doPost(ctx, "profiles", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.Profile
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	if len(rows) == 0 {
		return p, nil
	}
	return &rows[0], nil
}

// ListProfiles returns all profiles, newest first.
func (c *Client) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListProfiles")
	defer span.End()

	rows := []domain.Profile{}
	if err := c.getList(ctx, "profiles?order=created_at.desc", &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/profiles", Err: err}
	}
	return rows, nil
}

// SetAdmin flips the admin flag on a profile.
func (c *Client) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	ctx, span := tracer.Start(ctx, "Supabase.SetAdmin")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Bool("is_admin", isAdmin),
	)

	path := fmt.Sprintf("profiles?id=eq.%s", userID)
	body, err := c.doPatch(ctx, path, map[string]any{
		"is_admin":   isAdmin,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if string(body) == "[]" {
		return &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	return nil
}

// GetProfileRefs fetches a set of profiles by id for display enrichment.
func (c *Client) GetProfileRefs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetProfileRefs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}

	rows := []domain.Profile{}
	path := fmt.Sprintf("profiles?id=in.(%s)&select=id,email,full_name", joinIDs(ids))
	if err := c.getList(ctx, path, &rows); err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/profiles", Err: err}
	}
	return rows, nil
}
