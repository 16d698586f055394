package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/domain/kiosk"
	"github.com/ewaste-kiosk-backend/internal/domain/shared"
	"github.com/ewaste-kiosk-backend/internal/platform/messaging/producers"
)

// maxVersionRetries bounds retries against concurrent fill-level updates
const maxVersionRetries = 3

// ScanEventHandler applies scan events to kiosk fill levels
type ScanEventHandler struct {
	kioskRepo kiosk.Repository
	producer  producers.DeadLetterPublisher
	logger    *slog.Logger
}

// NewScanEventHandler creates a new handler
func NewScanEventHandler(
	logger *slog.Logger,
	kioskRepo kiosk.Repository,
	producer producers.DeadLetterPublisher,
) *ScanEventHandler {
	return &ScanEventHandler{
		kioskRepo: kioskRepo,
		producer:  producer,
		logger:    logger,
	}
}

// HandleMessage processes Kafka messages
func (h *ScanEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.ScanEvent
	if err := json.Unmarshal(value, &event); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal scan event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	// Events without a kiosk code come from off-kiosk scans; there is no
	// fill level to update.
	if event.KioskCode == "" {
		logger.Debug("Scan event carries no kiosk code, skipping",
			"event_id", event.EventID.String(),
		)
		return nil
	}

	logger.Info("Received scan event for kiosk fill tracking",
		"event_id", event.EventID.String(),
		"kiosk_code", event.KioskCode,
		"category", event.Category,
	)

	if err := h.applyDeposit(ctx, &event); err != nil {
		if errors.Is(err, kiosk.ErrKioskNotFound{}) {
			// The kiosk was deleted or the code is garbage; redelivery
			// cannot fix it.
			reason := fmt.Sprintf("unknown kiosk code %q", event.KioskCode)
			logger.Warn("Scan event references unknown kiosk", "kiosk_code", event.KioskCode)
			if h.producer != nil {
				if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, reason); dlqErr == nil {
					return nil
				}
			}
			return err
		}
		logger.Error("Failed to apply scan event",
			"event_id", event.EventID.String(),
			"kiosk_code", event.KioskCode,
			"error", err,
		)
		return fmt.Errorf("applying scan event %s failed: %w", event.EventID.String(), err)
	}

	logger.Info("Successfully applied scan event", "event_id", event.EventID.String())
	return nil // Success, commit offset
}

// applyDeposit bumps the kiosk fill level under its optimistic version,
// reloading and retrying on concurrent modification
func (h *ScanEventHandler) applyDeposit(ctx context.Context, event *shared.ScanEvent) error {
	var lastErr error
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		k, err := h.kioskRepo.GetByCode(ctx, event.KioskCode)
		if err != nil {
			return err
		}

		k.RecordDeposit()

		if err := h.kioskRepo.Update(ctx, k); err != nil {
			if errors.Is(err, kiosk.ErrConcurrentModification{}) {
				lastErr = err
				continue
			}
			return err
		}

		if k.Situation == kiosk.SituationFull {
			h.logger.Warn("Kiosk reached capacity",
				"kiosk_code", k.Code,
				"fill_current", k.FillCurrent,
				"fill_max", k.FillMax,
			)
		}
		return nil
	}
	return fmt.Errorf("kiosk update contended %d times: %w", maxVersionRetries, lastErr)
}
