// Package kafka publishes committed domain events. Each event becomes one
// message keyed by its aggregate ID, so events of one parcel stay ordered.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event-type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig selects the brokers and the topic for domain events.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// EventPublisher implements ports.EventPublisher on a kafka.Writer.
type EventPublisher struct {
	writer messageWriter
}

// NewEventPublisher builds a writer with hash partitioning on the message key.
func NewEventPublisher(cfg PublisherConfig) (*EventPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return &EventPublisher{writer: writer}, nil
}

func newEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes all events in one batch.
func (p *EventPublisher) Publish(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs, err := toMessages(events)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d kafka messages: %w", len(msgs), err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func toMessages(events []kernel.DomainEvent) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", event.EventName(), err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.AggregateID()),
			Value: payload,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: eventTypeHeader, Value: []byte(event.EventName())},
			},
		})
	}
	return msgs, nil
}

// LogPublisher writes events to the log. It stands in when no brokers are configured.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher creates the publisher used when no brokers are configured.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &LogPublisher{log: log.Component("events")}
}

// Publish writes one log line per event.
func (p *LogPublisher) Publish(ctx context.Context, events []kernel.DomainEvent) error {
	for _, event := range events {
		ctx := p.log.WithFields(ctx, map[string]any{
			"event":        event.EventName(),
			"aggregate_id": event.AggregateID(),
			"occurred_at":  event.OccurredAt(),
		})
		p.log.Info(ctx, "domain event")
	}
	return nil
}
