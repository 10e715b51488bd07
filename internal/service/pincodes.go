package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
	"github.com/rupsadmin/storefront-admin-go/internal/port"
)

// Pincodes manages the serviceable delivery area list.
type Pincodes struct {
	store  port.PincodeStore
	logger *zap.Logger
}

// NewPincodes creates the pincode service.
func NewPincodes(store port.PincodeStore, logger *zap.Logger) *Pincodes {
	return &Pincodes{store: store, logger: logger}
}

func (p *Pincodes) ListPincodes(ctx context.Context) ([]domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Pincodes.ListPincodes")
	defer span.End()
	return p.store.ListPincodes(ctx)
}

// validPincode requires exactly six ASCII digits.
func validPincode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CreatePincode validates and inserts a pincode. A duplicate gets the exact
// message the admin console shows.
func (p *Pincodes) CreatePincode(ctx context.Context, pc *domain.Pincode) (*domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Pincodes.CreatePincode")
	defer span.End()
	span.SetAttributes(attribute.String("pincode", pc.Pincode))

	if !validPincode(pc.Pincode) {
		return nil, &domain.ErrValidation{Field: "pincode", Message: "pincode must be exactly 6 digits"}
	}

	created, err := p.store.CreatePincode(ctx, pc)
	if err != nil {
		var conflict *domain.ErrConflict
		if errors.As(err, &conflict) && conflict.Code == "23505" {
			return nil, &domain.ErrConflict{
				Code:    conflict.Code,
				Message: "This pincode is already in the list",
			}
		}
		return nil, err
	}

	p.logger.Info("pincodes: added",
		zap.String("pincode", created.Pincode),
		zap.String("city", created.City),
	)
	return created, nil
}

func (p *Pincodes) UpdatePincode(ctx context.Context, id string, updates map[string]any) (*domain.Pincode, error) {
	ctx, span := tracer.Start(ctx, "Pincodes.UpdatePincode")
	defer span.End()

	if v, ok := updates["pincode"].(string); ok && !validPincode(v) {
		return nil, &domain.ErrValidation{Field: "pincode", Message: "pincode must be exactly 6 digits"}
	}
	return p.store.UpdatePincode(ctx, id, updates)
}

func (p *Pincodes) DeletePincode(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Pincodes.DeletePincode")
	defer span.End()
	return p.store.DeletePincode(ctx, id)
}
