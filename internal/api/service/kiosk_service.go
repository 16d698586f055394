package service

import (
	"context"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/google/uuid"
)

// KioskServiceImpl implements the KioskService interface
type KioskServiceImpl struct {
	logger    *slog.Logger
	kioskRepo kiosk.Repository
}

// NewKioskService creates a new kiosk service
func NewKioskService(logger *slog.Logger, kioskRepo kiosk.Repository) KioskService {
	return &KioskServiceImpl{
		logger:    logger,
		kioskRepo: kioskRepo,
	}
}

// CreateKiosk validates and persists a new kiosk
func (s *KioskServiceImpl) CreateKiosk(ctx context.Context, k *kiosk.Kiosk) error {
	if err := k.Validate(); err != nil {
		return err
	}
	return s.kioskRepo.Create(ctx, k)
}

// GetKiosk retrieves a kiosk by ID
func (s *KioskServiceImpl) GetKiosk(ctx context.Context, id uuid.UUID) (*kiosk.Kiosk, error) {
	return s.kioskRepo.GetByID(ctx, id)
}

// ListKiosks returns the whole fleet
func (s *KioskServiceImpl) ListKiosks(ctx context.Context) ([]*kiosk.Kiosk, error) {
	return s.kioskRepo.List(ctx)
}

// UpdateKiosk loads the kiosk, applies the mutation, and persists it under
// the optimistic version check. A concurrent fill-level update from the
// event processor surfaces as ErrConcurrentModification to the caller.
func (s *KioskServiceImpl) UpdateKiosk(ctx context.Context, id uuid.UUID, apply func(*kiosk.Kiosk) error) (*kiosk.Kiosk, error) {
	k, err := s.kioskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(k); err != nil {
		return nil, err
	}
	k.Version++

	if err := k.Validate(); err != nil {
		return nil, err
	}

	if err := s.kioskRepo.Update(ctx, k); err != nil {
		return nil, err
	}

	return k, nil
}

// DeleteKiosk removes a kiosk from the fleet
func (s *KioskServiceImpl) DeleteKiosk(ctx context.Context, id uuid.UUID) error {
	if err := s.kioskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted kiosk", "kiosk_id", id.String())
	return nil
}
