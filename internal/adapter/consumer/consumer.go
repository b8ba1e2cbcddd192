package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/gobalance/internal/domain"
	"github.com/iho/gobalance/internal/infrastructure/metrics"
)

// EntryEventHandler is the slice of the consolidation coordinator the
// consumer drives.
type EntryEventHandler interface {
	OnEntryCreated(ctx context.Context, day domain.Day) (*domain.DailyBalance, error)
}

// messageSource abstracts the kafka reader for tests.
type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads entry events from Kafka and triggers consolidation.
// Delivery is at least once: a message is committed only after the handler
// succeeds, so a crash mid-handling replays the trigger. The handler is
// idempotent, replays converge on the same balances.
type Consumer struct {
	source  messageSource
	handler EntryEventHandler
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// Config for Consumer.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler EntryEventHandler
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// New creates a Consumer backed by a kafka consumer group reader.
func New(cfg Config) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // explicit commits only
	})

	return &Consumer{
		source:  reader,
		handler: cfg.Handler,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Run consumes until the context is cancelled. Fetch failures back off
// exponentially; handler failures leave the message uncommitted for replay.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info().Msg("entry event consumer started")

	fetchBackoff := backoff.NewExponentialBackOff()
	fetchBackoff.MaxElapsedTime = 0

	for {
		msg, err := c.source.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info().Msg("entry event consumer shutting down")
				return ctx.Err()
			}

			wait := fetchBackoff.NextBackOff()
			c.logger.Warn().Err(err).Dur("retry_in", wait).Msg("fetch failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		fetchBackoff.Reset()

		if err := c.handle(ctx, msg); err != nil {
			c.logger.Error().Err(err).
				Int64("offset", msg.Offset).
				Msg("event handling failed, message left for replay")
			if c.metrics != nil {
				c.metrics.ConsumerFailures.Inc()
			}
			continue
		}

		if err := c.source.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("commit failed")
		}
	}
}

// handle decodes one message and runs consolidation for its day.
// Malformed messages and unknown event types are logged and treated as
// handled so they do not wedge the partition.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	var envelope domain.EventEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		c.logger.Warn().Err(err).Int64("offset", msg.Offset).Msg("malformed event envelope, skipping")
		return nil
	}

	if envelope.EventType != domain.EventTypeEntryCreated {
		c.logger.Warn().Str("event_type", envelope.EventType).Msg("unknown event type, skipping")
		return nil
	}

	event, err := domain.DecodeEntryCreated(&envelope)
	if err != nil {
		c.logger.Warn().Err(err).Int64("offset", msg.Offset).Msg("malformed entry event, skipping")
		return nil
	}

	day, err := event.Day()
	if err != nil {
		c.logger.Warn().Err(err).Str("date", event.Date).Msg("entry event has unparseable date, skipping")
		return nil
	}

	start := time.Now()
	if _, err := c.handler.OnEntryCreated(ctx, day); err != nil {
		return err
	}

	if c.metrics != nil {
		c.metrics.ConsumerProcessed.Inc()
		c.metrics.ConsolidationDuration.Observe(time.Since(start).Seconds())
	}

	c.logger.Info().
		Str("day", day.String()).
		Str("entry_id", event.EntryID).
		Msg("entry event consolidated")

	return nil
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	return c.source.Close()
}
