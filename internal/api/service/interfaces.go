package service

import (
	"context"
	"errors"
	"time"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/google/uuid"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords
// so login failures are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is an issued bearer token and its expiry
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService defines account registration and login
type AuthService interface {
	// Register creates a user account and returns a signed session.
	// Returns ErrDuplicateUsername when the username is taken.
	Register(ctx context.Context, fullName, username, password string) (*user.User, *Session, error)

	// Login verifies credentials and returns a signed session.
	// Returns ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, username, password string) (*user.User, *Session, error)
}

// PointsService owns every balance-affecting operation. All mutations are
// recorded as ledger entries; the account balance tracks their delta sum.
type PointsService interface {
	// RecordEarn resolves the authoritative point value for the payload's
	// category, appends the earn entry, then credits the balance. A scan
	// event is published afterwards on a best-effort basis.
	RecordEarn(ctx context.Context, ownerID uuid.UUID, payload *ledger.EarnPayload, correlationID string) (*ledger.Entry, error)

	// ConsumeToken claims the single-use token for rawQRData and, when the
	// caller wins the claim, earns points for the token's category.
	// Returns ErrTokenNotFound or ErrTokenAlreadyUsed otherwise.
	ConsumeToken(ctx context.Context, ownerID uuid.UUID, rawQRData, correlationID string) (*ledger.Entry, *qrtoken.Token, error)

	// RecordRedeem deducts the reward's cost from the balance and appends
	// the redeem entry. Returns ErrRewardNotFound or ErrInsufficientPoints.
	RecordRedeem(ctx context.Context, ownerID uuid.UUID, rewardID uuid.UUID, correlationID string) (*ledger.Entry, error)

	// ListRewards returns the active reward catalog, cheapest first
	ListRewards(ctx context.Context) ([]*reward.Reward, error)
}

// QRService issues single-use tokens and reports their status
type QRService interface {
	// IssueToken mints an unused token and renders its payload as a PNG
	// data URL for display on the kiosk screen.
	IssueToken(ctx context.Context, issuedBy uuid.UUID, category, value string) (*qrtoken.Token, string, error)

	// TokenStatus reports whether a token has been consumed. The result
	// never includes the token payload or hash.
	TokenStatus(ctx context.Context, tokenID uuid.UUID) (*qrtoken.Token, error)
}

// KioskService defines kiosk fleet management
type KioskService interface {
	CreateKiosk(ctx context.Context, k *kiosk.Kiosk) error
	GetKiosk(ctx context.Context, id uuid.UUID) (*kiosk.Kiosk, error)
	ListKiosks(ctx context.Context) ([]*kiosk.Kiosk, error)
	UpdateKiosk(ctx context.Context, id uuid.UUID, apply func(*kiosk.Kiosk) error) (*kiosk.Kiosk, error)
	DeleteKiosk(ctx context.Context, id uuid.UUID) error
}

// Profile is a user with their ledger summary and most recent entries
type Profile struct {
	User    *user.User           `json:"user"`
	Summary *ledger.OwnerSummary `json:"summary"`
	Recent  []*ledger.Entry      `json:"recent"`
}

// OwnerStats are one account's point totals and category breakdown
type OwnerStats struct {
	Balance    int64                  `json:"balance"`
	Summary    *ledger.OwnerSummary   `json:"summary"`
	Categories []ledger.CategoryCount `json:"categories"`
}

// AdminStats are the dashboard headline numbers
type AdminStats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalAdmins  int64 `json:"total_admins"`
	TotalKiosks  int64 `json:"total_kiosks"`
	TotalScans   int64 `json:"total_scans"`
	AnyKioskFull bool  `json:"any_kiosk_full"`
}

// ReportingService serves read-only views over users, the ledger, and kiosks
type ReportingService interface {
	// Profile returns the account with its summary and recent entries
	Profile(ctx context.Context, ownerID uuid.UUID) (*Profile, error)

	// OwnerHistory returns paginated entries plus the total count
	OwnerHistory(ctx context.Context, ownerID uuid.UUID, page, perPage int) ([]*ledger.Entry, int64, error)

	// OwnerStats returns one account's totals and category breakdown
	OwnerStats(ctx context.Context, ownerID uuid.UUID) (*OwnerStats, error)

	// AdminStats returns the dashboard headline numbers
	AdminStats(ctx context.Context) (*AdminStats, error)

	// ListUsers returns paginated non-admin accounts plus the total count
	ListUsers(ctx context.Context, page, perPage int) ([]*user.User, int64, error)

	// EarnEntries returns paginated earn entries across all owners
	EarnEntries(ctx context.Context, page, perPage int) ([]*ledger.Entry, int64, error)

	// EarnSummary groups all earn entries by item category
	EarnSummary(ctx context.Context) ([]ledger.CategoryCount, error)
}
