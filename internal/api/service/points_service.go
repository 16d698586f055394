package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/domain/ledger"
	"github.com/ewaste-kiosk-backend/internal/domain/qrtoken"
	"github.com/ewaste-kiosk-backend/internal/domain/reward"
	"github.com/ewaste-kiosk-backend/internal/domain/shared"
	"github.com/ewaste-kiosk-backend/internal/domain/user"
	"github.com/ewaste-kiosk-backend/internal/metrics"
	"github.com/ewaste-kiosk-backend/internal/platform/messaging/producers"
	"github.com/google/uuid"
)

// PointsServiceImpl implements the PointsService interface. Write ordering
// is entry-before-balance on earns and balance-before-entry on redeems; any
// drift a crash leaves between the two stores is repaired by the
// reconciliation pass against the ledger delta sum.
type PointsServiceImpl struct {
	logger     *slog.Logger
	userRepo   user.Repository
	ledgerRepo ledger.Repository
	tokenRepo  qrtoken.Repository
	rewardRepo reward.Repository
	producer   producers.MessagePublisher
}

// NewPointsService creates a new points service. The producer may be nil
// when event publishing is disabled.
func NewPointsService(
	logger *slog.Logger,
	userRepo user.Repository,
	ledgerRepo ledger.Repository,
	tokenRepo qrtoken.Repository,
	rewardRepo reward.Repository,
	producer producers.MessagePublisher,
) PointsService {
	return &PointsServiceImpl{
		logger:     logger,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		tokenRepo:  tokenRepo,
		rewardRepo: rewardRepo,
		producer:   producer,
	}
}

// RecordEarn appends an earn entry and credits the balance. The point value
// comes from the server-side category table; client-claimed values in the
// payload are recorded as hints and never applied.
func (s *PointsServiceImpl) RecordEarn(ctx context.Context, ownerID uuid.UUID, payload *ledger.EarnPayload, correlationID string) (*ledger.Entry, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	points, err := s.rewardRepo.PointsForCategory(ctx, payload.Category)
	if err != nil {
		return nil, err
	}

	entry := ledger.NewEarnEntry(ownerID, points, payload, correlationID)

	// Entry first: a crash between the two writes leaves the balance
	// behind the ledger, never ahead of it.
	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.userRepo.AddPoints(ctx, ownerID, entry.PointsDelta); err != nil {
		s.logger.Error("Earn entry committed but balance credit failed, awaiting reconciliation",
			"entry_id", entry.EntryID.String(),
			"owner_id", ownerID.String(),
			"points", entry.PointsDelta,
			"error", err)
		return nil, err
	}

	metrics.EarnsTotal.Inc()
	s.publishScanEvent(ctx, entry, correlationID)

	return entry, nil
}

// ConsumeToken claims the single-use token for the scanned payload. Exactly
// one concurrent caller wins the claim and earns points; losers receive
// ErrTokenAlreadyUsed with the original consumption time.
func (s *PointsServiceImpl) ConsumeToken(ctx context.Context, ownerID uuid.UUID, rawQRData, correlationID string) (*ledger.Entry, *qrtoken.Token, error) {
	hash := qrtoken.HashPayload(rawQRData)

	token, err := s.tokenRepo.Consume(ctx, hash, ownerID)
	if err != nil {
		if errors.Is(err, qrtoken.ErrTokenAlreadyUsed{}) {
			metrics.TokenReplaysTotal.Inc()
		}
		return nil, nil, err
	}

	payload := &ledger.EarnPayload{
		ScannedObject: token.Category,
		Category:      token.Category,
		TokenHash:     token.Hash,
		ClaimedValue:  token.ValuePHP,
	}

	entry, err := s.RecordEarn(ctx, ownerID, payload, correlationID)
	if err != nil {
		// The token stays consumed: a second scan of the same code must
		// not grant points. The reconciler squares the balance.
		s.logger.Error("Token consumed but earn failed",
			"token_id", token.TokenID.String(),
			"owner_id", ownerID.String(),
			"error", err)
		return nil, token, err
	}

	return entry, token, nil
}

// RecordRedeem deducts the reward's cost and appends the redeem entry. The
// conditional decrement guarantees the balance never goes negative even
// under concurrent redemptions.
func (s *PointsServiceImpl) RecordRedeem(ctx context.Context, ownerID uuid.UUID, rewardID uuid.UUID, correlationID string) (*ledger.Entry, error) {
	rw, err := s.rewardRepo.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.DeductPoints(ctx, ownerID, rw.CostPoints); err != nil {
		if errors.Is(err, user.ErrInsufficientPoints{}) {
			metrics.InsufficientPointsTotal.Inc()
		}
		return nil, err
	}

	entry := ledger.NewRedeemEntry(ownerID, rw.CostPoints, &ledger.RedeemPayload{
		RewardID:   rw.ID,
		RewardName: rw.Name,
		Method:     string(rw.Method),
		ValuePHP:   rw.ValuePHP,
	}, correlationID)

	if err := s.ledgerRepo.Create(ctx, entry); err != nil {
		// Balance already deducted; the reconciler restores it from the
		// ledger sum since the entry never landed.
		s.logger.Error("Balance deducted but redeem entry failed, awaiting reconciliation",
			"owner_id", ownerID.String(),
			"reward_id", rewardID.String(),
			"cost", rw.CostPoints,
			"error", err)
		return nil, err
	}

	metrics.RedemptionsTotal.Inc()
	return entry, nil
}

// ListRewards returns the active reward catalog, cheapest first
func (s *PointsServiceImpl) ListRewards(ctx context.Context) ([]*reward.Reward, error) {
	return s.rewardRepo.ListActive(ctx)
}

// publishScanEvent emits the event consumed by the kiosk fill tracker.
// Publishing is best effort: the entry and balance are already committed,
// so a broker outage never fails the request.
func (s *PointsServiceImpl) publishScanEvent(ctx context.Context, entry *ledger.Entry, correlationID string) {
	if s.producer == nil {
		return
	}

	event := &shared.ScanEvent{
		EventID:       uuid.New(),
		EntryID:       entry.EntryID,
		OwnerID:       entry.OwnerID,
		Points:        entry.PointsDelta,
		CorrelationID: correlationID,
		OccurredAt:    entry.CreatedAt,
	}
	if entry.Earn != nil {
		event.Category = entry.Earn.Category
		event.KioskCode = entry.Earn.KioskCode
	}

	if err := s.producer.Publish(ctx, entry.OwnerID.String(), event); err != nil {
		s.logger.Warn("Failed to publish scan event",
			"entry_id", entry.EntryID.String(),
			"error", err)
	}
}
