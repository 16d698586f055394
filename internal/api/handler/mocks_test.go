package handler

import (
	"context"

	"github.com/ewaste-kiosk-backend/internal/api/service"
	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, fullName, username, password string) (*user.User, *service.Session, error) {
	args := m.Called(ctx, fullName, username, password)
	var u *user.User
	if args.Get(0) != nil {
		u = args.Get(0).(*user.User)
	}
	var s *service.Session
	if args.Get(1) != nil {
		s = args.Get(1).(*service.Session)
	}
	return u, s, args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*user.User, *service.Session, error) {
	args := m.Called(ctx, username, password)
	var u *user.User
	if args.Get(0) != nil {
		u = args.Get(0).(*user.User)
	}
	var s *service.Session
	if args.Get(1) != nil {
		s = args.Get(1).(*service.Session)
	}
	return u, s, args.Error(2)
}

type MockPointsService struct {
	mock.Mock
}

func (m *MockPointsService) RecordEarn(ctx context.Context, ownerID uuid.UUID, payload *ledger.EarnPayload, correlationID string) (*ledger.Entry, error) {
	args := m.Called(ctx, ownerID, payload, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockPointsService) ConsumeToken(ctx context.Context, ownerID uuid.UUID, rawQRData, correlationID string) (*ledger.Entry, *qrtoken.Token, error) {
	args := m.Called(ctx, ownerID, rawQRData, correlationID)
	var entry *ledger.Entry
	if args.Get(0) != nil {
		entry = args.Get(0).(*ledger.Entry)
	}
	var token *qrtoken.Token
	if args.Get(1) != nil {
		token = args.Get(1).(*qrtoken.Token)
	}
	return entry, token, args.Error(2)
}

func (m *MockPointsService) RecordRedeem(ctx context.Context, ownerID uuid.UUID, rewardID uuid.UUID, correlationID string) (*ledger.Entry, error) {
	args := m.Called(ctx, ownerID, rewardID, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockPointsService) ListRewards(ctx context.Context) ([]*reward.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reward.Reward), args.Error(1)
}

type MockQRService struct {
	mock.Mock
}

func (m *MockQRService) IssueToken(ctx context.Context, issuedBy uuid.UUID, category, value string) (*qrtoken.Token, string, error) {
	args := m.Called(ctx, issuedBy, category, value)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*qrtoken.Token), args.String(1), args.Error(2)
}

func (m *MockQRService) TokenStatus(ctx context.Context, tokenID uuid.UUID) (*qrtoken.Token, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrtoken.Token), args.Error(1)
}

type MockKioskService struct {
	mock.Mock
}

func (m *MockKioskService) CreateKiosk(ctx context.Context, k *kiosk.Kiosk) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

func (m *MockKioskService) GetKiosk(ctx context.Context, id uuid.UUID) (*kiosk.Kiosk, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kiosk.Kiosk), args.Error(1)
}

func (m *MockKioskService) ListKiosks(ctx context.Context) ([]*kiosk.Kiosk, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kiosk.Kiosk), args.Error(1)
}

func (m *MockKioskService) UpdateKiosk(ctx context.Context, id uuid.UUID, apply func(*kiosk.Kiosk) error) (*kiosk.Kiosk, error) {
	args := m.Called(ctx, id, apply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kiosk.Kiosk), args.Error(1)
}

func (m *MockKioskService) DeleteKiosk(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Profile(ctx context.Context, ownerID uuid.UUID) (*service.Profile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockReportingService) OwnerHistory(ctx context.Context, ownerID uuid.UUID, page, perPage int) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, ownerID, page, perPage)
	var entries []*ledger.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]*ledger.Entry)
	}
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *MockReportingService) OwnerStats(ctx context.Context, ownerID uuid.UUID) (*service.OwnerStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OwnerStats), args.Error(1)
}

func (m *MockReportingService) AdminStats(ctx context.Context) (*service.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminStats), args.Error(1)
}

func (m *MockReportingService) ListUsers(ctx context.Context, page, perPage int) ([]*user.User, int64, error) {
	args := m.Called(ctx, page, perPage)
	var users []*user.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*user.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockReportingService) EarnEntries(ctx context.Context, page, perPage int) ([]*ledger.Entry, int64, error) {
	args := m.Called(ctx, page, perPage)
	var entries []*ledger.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]*ledger.Entry)
	}
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *MockReportingService) EarnSummary(ctx context.Context) ([]ledger.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.CategoryCount), args.Error(1)
}
