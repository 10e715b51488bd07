package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// gotrueUser maps the GoTrue /auth/v1/user payload.
type gotrueUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AppMetadata  struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
	UserMetadata struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

// GetSession resolves an access token to the identity provider's view of the
// user. Implements port.IdentityProvider.
func (c *Client) GetSession(ctx context.Context, accessToken string) (*domain.Session, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetSession")
	defer span.End()

	url := fmt.Sprintf("%s/auth/v1/user", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: auth user request failed", zap.Error(err))
		return nil, &domain.ErrExternalService{Service: "supabase/auth", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired session token"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: auth user non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &domain.ErrExternalService{
			Service: "supabase/auth",
			Err:     fmt.Errorf("auth user returned %d", resp.StatusCode),
		}
	}

	var u gotrueUser
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("failed to decode auth user: %w", err)
	}

	return &domain.Session{
		UserID:      u.ID,
		Email:       u.Email,
		Provider:    u.AppMetadata.Provider,
		FullName:    u.UserMetadata.FullName,
		AvatarURL:   u.UserMetadata.AvatarURL,
		AccessToken: accessToken,
	}, nil
}

// SignOut revokes the session at the identity provider.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	ctx, span := tracer.Start(ctx, "Supabase.SignOut")
	defer span.End()

	url := fmt.Sprintf("%s/auth/v1/logout", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := c.send(ctx, req)
	if err != nil {
		c.logger.Error("supabase: logout request failed", zap.Error(err))
		return &domain.ErrExternalService{Service: "supabase/auth", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// GoTrue returns 204 on success; an already-expired token is fine too.
	if resp.StatusCode >= 500 {
		return &domain.ErrExternalService{
			Service: "supabase/auth",
			Err:     fmt.Errorf("logout returned %d", resp.StatusCode),
		}
	}
	return nil
}
