package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// Users administers profiles and their admin role.
type Users struct {
	profiles   port.ProfileStore
	adminCache port.Cache[bool]
	logger     *zap.Logger
}

// NewUsers creates the user admin service.
func NewUsers(profiles port.ProfileStore, adminCache port.Cache[bool], logger *zap.Logger) *Users {
	return &Users{profiles: profiles, adminCache: adminCache, logger: logger}
}

func (u *Users) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Users.ListUsers")
	defer span.End()
	return u.profiles.ListProfiles(ctx)
}

// SetAdmin flips a user's admin role and invalidates the cached flag so the
// change is visible on their next request.
func (u *Users) SetAdmin(ctx context.Context, actorID, userID string, isAdmin bool) error {
	ctx, span := tracer.Start(ctx, "Users.SetAdmin")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Bool("is_admin", isAdmin),
	)

	// Self-demotion would lock the actor out mid-session.
	if actorID == userID && !isAdmin {
		return &domain.ErrValidation{Field: "user_id", Message: "cannot remove your own admin role"}
	}

	if err := u.profiles.SetAdmin(ctx, userID, isAdmin); err != nil {
		return err
	}
	u.adminCache.Delete(adminCacheKeyPrefix + userID)

	u.logger.Info("users: admin role changed",
		zap.String("actor_id", actorID),
		zap.String("user_id", userID),
		zap.Bool("is_admin", isAdmin),
	)
	return nil
}
