package domain

import (
	"context"
	"time"
)

// Session mirrors the identity provider's view of a signed-in user. It is
// never persisted locally beyond the provider's token.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Provider    string `json:"provider"`
	FullName    string `json:"full_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	AccessToken string `json:"-"`
}

// AuthState is the immutable snapshot the resolver exposes to the rest of the
// application: who is signed in, whether they are an admin, and whether the
// answer is still being settled.
type AuthState struct {
	User    *Session `json:"user"`
	IsAdmin bool     `json:"is_admin"`
	Loading bool     `json:"loading"`
}

// AuthEventType classifies identity-provider notifications.
type AuthEventType string

const (
	AuthEventInitialSession AuthEventType = "INITIAL_SESSION"
	AuthEventSignedIn       AuthEventType = "SIGNED_IN"
	AuthEventSignedOut      AuthEventType = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
)

// AuthEvent is a single auth-state-change notification. Session is nil for
// sign-out events.
type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}

type ctxKey int

const accessTokenKey ctxKey = iota

// WithAccessToken stores the caller's bearer token in the context so the data
// layer can forward it to the backend (row-level security applies per caller).
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFrom extracts the caller's bearer token, if any.
func AccessTokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey).(string)
	return token, ok && token != ""
}

// Profile is the local record keyed by the provider's user id. IsAdmin is the
// sole authorization signal for this console.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
}
