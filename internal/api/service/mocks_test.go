package service

import (
	"context"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role user.Role, limit, offset int) ([]*user.User, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role user.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) AddPoints(ctx context.Context, id uuid.UUID, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockUserRepository) DeductPoints(ctx context.Context, id uuid.UUID, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) SetPoints(ctx context.Context, id uuid.UUID, points int64) error {
	args := m.Called(ctx, id, points)
	return args.Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByEntryID(ctx context.Context, entryID uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetByKind(ctx context.Context, kind ledger.Kind, limit, offset int) ([]*ledger.Entry, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Entry), args.Error(1)
}

func (m *MockLedgerRepository) CountByKind(ctx context.Context, kind ledger.Kind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) CountByCategory(ctx context.Context) ([]ledger.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.CategoryCount), args.Error(1)
}

func (m *MockLedgerRepository) CountByOwnerCategory(ctx context.Context, ownerID uuid.UUID) ([]ledger.CategoryCount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.CategoryCount), args.Error(1)
}

func (m *MockLedgerRepository) SummarizeOwner(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.OwnerSummary), args.Error(1)
}

type MockQRTokenRepository struct {
	mock.Mock
}

func (m *MockQRTokenRepository) Create(ctx context.Context, token *qrtoken.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockQRTokenRepository) GetByTokenID(ctx context.Context, tokenID uuid.UUID) (*qrtoken.Token, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrtoken.Token), args.Error(1)
}

func (m *MockQRTokenRepository) GetByHash(ctx context.Context, hash string) (*qrtoken.Token, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrtoken.Token), args.Error(1)
}

func (m *MockQRTokenRepository) Consume(ctx context.Context, hash string, usedBy uuid.UUID) (*qrtoken.Token, error) {
	args := m.Called(ctx, hash, usedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrtoken.Token), args.Error(1)
}

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) GetByID(ctx context.Context, id uuid.UUID) (*reward.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) ListActive(ctx context.Context) ([]*reward.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reward.Reward), args.Error(1)
}

func (m *MockRewardRepository) PointsForCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

type MockKioskRepository struct {
	mock.Mock
}

func (m *MockKioskRepository) Create(ctx context.Context, k *kiosk.Kiosk) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

func (m *MockKioskRepository) GetByID(ctx context.Context, id uuid.UUID) (*kiosk.Kiosk, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kiosk.Kiosk), args.Error(1)
}

func (m *MockKioskRepository) GetByCode(ctx context.Context, code string) (*kiosk.Kiosk, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kiosk.Kiosk), args.Error(1)
}

func (m *MockKioskRepository) List(ctx context.Context) ([]*kiosk.Kiosk, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kiosk.Kiosk), args.Error(1)
}

func (m *MockKioskRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKioskRepository) AnyFull(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockKioskRepository) Update(ctx context.Context, k *kiosk.Kiosk) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

func (m *MockKioskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
