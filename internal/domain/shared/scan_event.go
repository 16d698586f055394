package shared

import (
	"time"

	"github.com/google/uuid"
)

// ScanEvent defines the Kafka message emitted after a successful earn. The
// event processor uses it to keep kiosk fill levels current; it carries no
// balance-affecting data, the ledger entry is already committed by the time
// it is published.
type ScanEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	EntryID       uuid.UUID `json:"entry_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	KioskCode     string    `json:"kiosk_code,omitempty"`
	Category      string    `json:"category"`
	Points        int64     `json:"points"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
