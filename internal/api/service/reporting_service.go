package service

import (
	"context"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/google/uuid"
)

const recentEntriesLimit = 5

// ReportingServiceImpl implements the ReportingService interface
type ReportingServiceImpl struct {
	userRepo   user.Repository
	ledgerRepo ledger.Repository
	kioskRepo  kiosk.Repository
}

// NewReportingService creates a new reporting service
func NewReportingService(userRepo user.Repository, ledgerRepo ledger.Repository, kioskRepo kiosk.Repository) ReportingService {
	return &ReportingServiceImpl{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		kioskRepo:  kioskRepo,
	}
}

// Profile returns the account with its summary and recent entries
func (s *ReportingServiceImpl) Profile(ctx context.Context, ownerID uuid.UUID) (*Profile, error) {
	u, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary, err := s.ledgerRepo.SummarizeOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.ledgerRepo.GetByOwnerID(ctx, ownerID, recentEntriesLimit, 0)
	if err != nil {
		return nil, err
	}

	return &Profile{User: u, Summary: summary, Recent: recent}, nil
}

// OwnerHistory returns paginated entries plus the total count
func (s *ReportingServiceImpl) OwnerHistory(ctx context.Context, ownerID uuid.UUID, page, perPage int) ([]*ledger.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.ledgerRepo.GetByOwnerID(ctx, ownerID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ledgerRepo.CountByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// OwnerStats returns one account's totals and category breakdown
func (s *ReportingServiceImpl) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*OwnerStats, error) {
	u, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary, err := s.ledgerRepo.SummarizeOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	categories, err := s.ledgerRepo.CountByOwnerCategory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &OwnerStats{
		Balance:    u.Points,
		Summary:    summary,
		Categories: categories,
	}, nil
}

// AdminStats returns the dashboard headline numbers
func (s *ReportingServiceImpl) AdminStats(ctx context.Context) (*AdminStats, error) {
	totalUsers, err := s.userRepo.CountByRole(ctx, user.RoleUser)
	if err != nil {
		return nil, err
	}

	totalAdmins, err := s.userRepo.CountByRole(ctx, user.RoleAdmin)
	if err != nil {
		return nil, err
	}

	totalKiosks, err := s.kioskRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalScans, err := s.ledgerRepo.CountByKind(ctx, ledger.KindEarn)
	if err != nil {
		return nil, err
	}

	anyFull, err := s.kioskRepo.AnyFull(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalUsers:   totalUsers,
		TotalAdmins:  totalAdmins,
		TotalKiosks:  totalKiosks,
		TotalScans:   totalScans,
		AnyKioskFull: anyFull,
	}, nil
}

// ListUsers returns paginated non-admin accounts plus the total count
func (s *ReportingServiceImpl) ListUsers(ctx context.Context, page, perPage int) ([]*user.User, int64, error) {
	offset := (page - 1) * perPage

	users, err := s.userRepo.ListByRole(ctx, user.RoleUser, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.CountByRole(ctx, user.RoleUser)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// EarnEntries returns paginated earn entries across all owners
func (s *ReportingServiceImpl) EarnEntries(ctx context.Context, page, perPage int) ([]*ledger.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.ledgerRepo.GetByKind(ctx, ledger.KindEarn, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ledgerRepo.CountByKind(ctx, ledger.KindEarn)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// EarnSummary groups all earn entries by item category
func (s *ReportingServiceImpl) EarnSummary(ctx context.Context) ([]ledger.CategoryCount, error) {
	return s.ledgerRepo.CountByCategory(ctx)
}
