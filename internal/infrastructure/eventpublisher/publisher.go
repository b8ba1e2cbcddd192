package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/gobalance/internal/domain"
)

// KafkaPublisher implements usecase.EventPublisher on top of a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// Config for KafkaPublisher.
type Config struct {
	Brokers []string
	Topic   string
	Logger  zerolog.Logger
}

// NewKafkaPublisher creates a new KafkaPublisher.
func NewKafkaPublisher(cfg Config) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: cfg.Logger,
	}
}

// PublishEntryCreated emits an entry.created event keyed by the entry's day,
// so all events for a day land on one partition in order.
func (p *KafkaPublisher) PublishEntryCreated(ctx context.Context, entry *domain.LedgerEntry) error {
	event := domain.EntryCreatedEvent{
		EntryID: entry.ID,
		Type:    string(entry.Type),
		Amount:  entry.Amount.String(),
		Date:    entry.Date.UTC().Format(time.RFC3339),
		Status:  string(entry.Status),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	envelope, err := json.Marshal(domain.EventEnvelope{
		EventType:  domain.EventTypeEntryCreated,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}

	day := domain.DayOf(entry.Date)
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(day.String()),
		Value: envelope,
	})
	if err != nil {
		return err
	}

	p.logger.Debug().
		Str("entry_id", entry.ID).
		Str("day", day.String()).
		Msg("entry created event published")

	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
