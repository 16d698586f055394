package reconciler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ewaste-kiosk-backend/internal/config"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository for testing
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

// MockLedgerRepository for testing
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

func testConfig() *config.ReconcilerConfig {
	return &config.ReconcilerConfig{
		Interval:       time.Minute,
		BatchSize:      100,
		WorkerPoolSize: 4,
	}
}

func testUser(points int64) *user.User {
	return &user.User{
		ID:       uuid.New(),
		FullName: "Test User",
		Username: "test.user",
		Role:     user.RoleUser,
		Points:   points,
	}
}

func TestReconciler_AuditAccount(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("RepairsDriftedBalance", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		ledgerRepo := &MockLedgerRepository{}
		r, err := New(testConfig(), userRepo, ledgerRepo, logger)
		require.NoError(t, err)
		defer r.Shutdown()

		u := testUser(90)
		ledgerRepo.On("SummarizeOwner", mock.Anything, u.ID).
			Return(&ledger.OwnerSummary{Entries: 5, EarnedPoints: 100, SpentPoints: 50, DeltaSum: 50}, nil).Once()
		userRepo.On("GetByID", mock.Anything, u.ID).Return(u, nil).Once()
		userRepo.On("SetPoints", mock.Anything, u.ID, int64(50)).Return(nil).Once()

		repaired := r.auditAccount(ctx, u)

		assert.True(t, repaired)
		userRepo.AssertExpectations(t)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("MatchingBalanceLeftAlone", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		ledgerRepo := &MockLedgerRepository{}
		r, err := New(testConfig(), userRepo, ledgerRepo, logger)
		require.NoError(t, err)
		defer r.Shutdown()

		u := testUser(50)
		ledgerRepo.On("SummarizeOwner", mock.Anything, u.ID).
			Return(&ledger.OwnerSummary{Entries: 5, EarnedPoints: 100, SpentPoints: 50, DeltaSum: 50}, nil).Once()
		userRepo.On("GetByID", mock.Anything, u.ID).Return(u, nil).Once()

		repaired := r.auditAccount(ctx, u)

		assert.False(t, repaired)
		userRepo.AssertNotCalled(t, "SetPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ComparesAgainstReloadedBalance", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		ledgerRepo := &MockLedgerRepository{}
		r, err := New(testConfig(), userRepo, ledgerRepo, logger)
		require.NoError(t, err)
		defer r.Shutdown()

		// The paged snapshot is stale; an earn landed between the page
		// fetch and this audit. The reload sees the consistent state.
		stale := testUser(30)
		fresh := testUser(50)
		fresh.ID = stale.ID
		ledgerRepo.On("SummarizeOwner", mock.Anything, stale.ID).
			Return(&ledger.OwnerSummary{DeltaSum: 50}, nil).Once()
		userRepo.On("GetByID", mock.Anything, stale.ID).Return(fresh, nil).Once()

		repaired := r.auditAccount(ctx, stale)

		assert.False(t, repaired)
		userRepo.AssertNotCalled(t, "SetPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SummaryFailureSkipsAccount", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		ledgerRepo := &MockLedgerRepository{}
		r, err := New(testConfig(), userRepo, ledgerRepo, logger)
		require.NoError(t, err)
		defer r.Shutdown()

		u := testUser(50)
		ledgerRepo.On("SummarizeOwner", mock.Anything, u.ID).Return(nil, assert.AnError).Once()

		repaired := r.auditAccount(ctx, u)

		assert.False(t, repaired)
		userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestReconciler_RunPass(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("PagesThroughAllUsers", func(t *testing.T) {
		cfg := testConfig()
		cfg.BatchSize = 2
		userRepo := &MockUserRepository{}
		ledgerRepo := &MockLedgerRepository{}
		r, err := New(cfg, userRepo, ledgerRepo, logger)
		require.NoError(t, err)
		defer r.Shutdown()

		page1 := []*user.User{testUser(10), testUser(20)}
		page2 := []*user.User{testUser(30)}

		userRepo.On("ListByRole", mock.Anything, user.RoleUser, 2, 0).Return(page1, nil).Once()
		userRepo.On("ListByRole", mock.Anything, user.RoleUser, 2, 2).Return(page2, nil).Once()

		for _, u := range append(page1, page2...) {
			ledgerRepo.On("SummarizeOwner", mock.Anything, u.ID).
				Return(&ledger.OwnerSummary{DeltaSum: u.Points}, nil).Once()
			userRepo.On("GetByID", mock.Anything, u.ID).Return(u, nil).Once()
		}

		r.runPass(ctx)

		userRepo.AssertExpectations(t)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("StopsWhenPagingFails", func(t *testing.T) {
		userRepo := &MockUserRepository{}
		ledgerRepo := &MockLedgerRepository{}
		r, err := New(testConfig(), userRepo, ledgerRepo, logger)
		require.NoError(t, err)
		defer r.Shutdown()

		userRepo.On("ListByRole", mock.Anything, user.RoleUser, 100, 0).
			Return(nil, assert.AnError).Once()

		r.runPass(ctx)

		ledgerRepo.AssertNotCalled(t, "SummarizeOwner", mock.Anything, mock.Anything)
	})
}
