package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher publishes scan events to the primary topic. Publishing
// is best effort from the API's perspective; the ledger write has already
// committed by the time an event goes out.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// DeadLetterPublisher parks unprocessable messages on the DLQ topic so the
// consumer can commit their offsets and move on
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
