package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Kind defines the two point-affecting event types
type Kind string

const (
	KindEarn   Kind = "EARN"
	KindRedeem Kind = "REDEEM"
)

// Status is terminal at creation: earns complete, redeems redeem. Entries
// never transition afterwards.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusRedeemed  Status = "Redeemed"
)

// EarnPayload carries the descriptive data of a scan event. The ledger
// treats it as opaque; client-claimed values are recorded as hints only and
// never drive the points applied to the balance.
type EarnPayload struct {
	ScannedObject string `json:"scanned_object" bson:"scanned_object"`
	Category      string `json:"category" bson:"category"`
	KioskCode     string `json:"kiosk_code,omitempty" bson:"kiosk_code,omitempty"`
	LocationTag   string `json:"location_tag,omitempty" bson:"location_tag,omitempty"`
	TokenHash     string `json:"token_hash,omitempty" bson:"token_hash,omitempty"`
	ClaimedValue  string `json:"claimed_value,omitempty" bson:"claimed_value,omitempty"`
	ClaimedPoints string `json:"claimed_points,omitempty" bson:"claimed_points,omitempty"`
}

// RedeemPayload carries the descriptive data of a redemption event
type RedeemPayload struct {
	RewardID   uuid.UUID `json:"reward_id" bson:"reward_id"`
	RewardName string    `json:"reward_name" bson:"reward_name"`
	Method     string    `json:"method" bson:"method"`
	ValuePHP   int64     `json:"value_php" bson:"value_php"`
}

// Entry is an immutable record of a single point-affecting event. Entries
// are append-only: created once, never edited or deleted. The account
// balance invariant is balance == sum(points_delta) over committed entries.
type Entry struct {
	EntryID       uuid.UUID      `json:"entry_id" bson:"entry_id"`
	OwnerID       uuid.UUID      `json:"owner_id" bson:"owner_id"`
	Kind          Kind           `json:"kind" bson:"kind"`
	PointsDelta   int64          `json:"points_delta" bson:"points_delta"`
	Status        Status         `json:"status" bson:"status"`
	Earn          *EarnPayload   `json:"earn,omitempty" bson:"earn,omitempty"`
	Redeem        *RedeemPayload `json:"redeem,omitempty" bson:"redeem,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
}

// NewEarnEntry builds a Completed earn entry with a non-negative delta
func NewEarnEntry(ownerID uuid.UUID, points int64, payload *EarnPayload, correlationID string) *Entry {
	if points < 0 {
		points = 0
	}
	return &Entry{
		EntryID:       uuid.New(),
		OwnerID:       ownerID,
		Kind:          KindEarn,
		PointsDelta:   points,
		Status:        StatusCompleted,
		Earn:          payload,
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
	}
}

// NewRedeemEntry builds a Redeemed entry with a negative delta of cost
func NewRedeemEntry(ownerID uuid.UUID, cost int64, payload *RedeemPayload, correlationID string) *Entry {
	return &Entry{
		EntryID:       uuid.New(),
		OwnerID:       ownerID,
		Kind:          KindRedeem,
		PointsDelta:   -cost,
		Status:        StatusRedeemed,
		Redeem:        payload,
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
	}
}

// CategoryCount is one bucket of the group-by-category aggregation
type CategoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// OwnerSummary aggregates an owner's ledger for stats and reconciliation
type OwnerSummary struct {
	Entries      int64 `json:"entries"`
	EarnedPoints int64 `json:"earned_points"`
	SpentPoints  int64 `json:"spent_points"`
	DeltaSum     int64 `json:"delta_sum"`
}
