package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ewaste-kiosk-backend/internal/config"
	"github.com/segmentio/kafka-go"
)

// ScanEventProducer publishes scan events for the kiosk event processor
type ScanEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewScanEventProducer creates the producer and ensures the topic exists
func NewScanEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*ScanEventProducer, error) {
	if cfg.ScanEventsTopic == "" {
		return nil, fmt.Errorf("kafka scan events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for scan event producer: %w", err)
	}
	defer conn.Close()

	err = ensureTopicExists(conn, cfg.ScanEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure scan events topic %s exists: %w", cfg.ScanEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.ScanEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Using async for high throughput
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.ScanEventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.ScanEventsTopic, "count", len(messages))
			}
		},
	}

	return &ScanEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.ScanEventsTopic,
	}, nil
}

func (p *ScanEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal scan event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish scan event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish scan event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published scan event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *ScanEventProducer) Close() error {
	p.logger.Info("Closing scan event Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close scan event kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
