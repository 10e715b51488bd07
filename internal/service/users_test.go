package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

func TestSetAdminTogglesAndInvalidatesCache(t *testing.T) {
	profiles := newMockProfiles()
	profiles.profiles["u2"] = &domain.Profile{ID: "u2", IsAdmin: false}
	cache := newMockCache[bool]()
	cache.Set(adminCacheKeyPrefix+"u2", false)

	svc := NewUsers(profiles, cache, zap.NewNop())

	if err := svc.SetAdmin(context.Background(), "u1", "u2", true); err != nil {
		t.Fatalf("SetAdmin: %v", err)
	}
	if !profiles.profiles["u2"].IsAdmin {
		t.Error("profile not updated")
	}
	if _, ok := cache.Get(adminCacheKeyPrefix + "u2"); ok {
		t.Error("cached admin flag must be invalidated after a role change")
	}
}

func TestSetAdminRejectsSelfDemotion(t *testing.T) {
	profiles := newMockProfiles()
	profiles.profiles["u1"] = &domain.Profile{ID: "u1", IsAdmin: true}

	svc := NewUsers(profiles, newMockCache[bool](), zap.NewNop())

	err := svc.SetAdmin(context.Background(), "u1", "u1", false)
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !profiles.profiles["u1"].IsAdmin {
		t.Error("profile must be untouched after rejected self-demotion")
	}
}

func TestSetAdminAllowsSelfPromotionNoOp(t *testing.T) {
	profiles := newMockProfiles()
	profiles.profiles["u1"] = &domain.Profile{ID: "u1", IsAdmin: true}

	svc := NewUsers(profiles, newMockCache[bool](), zap.NewNop())

	if err := svc.SetAdmin(context.Background(), "u1", "u1", true); err != nil {
		t.Fatalf("SetAdmin: %v", err)
	}
}
