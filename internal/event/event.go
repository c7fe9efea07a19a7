// Package event publishes booking lifecycle events.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travel-booking/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Type string

const (
	BookingCreated   Type = "booking.created"
	BookingConfirmed Type = "booking.confirmed"
	PaymentFailed    Type = "payment.failed"
)

type BookingEvent struct {
	Type          Type      `json:"type"`
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	TravelID      string    `json:"travel_id"`
	Seats         int       `json:"number_of_seats"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by booking id, so the events of one
// booking stay ordered on a single partition.
type KafkaPublisher struct {
	writer messageWriter
	log    *zap.Logger
}

func NewKafkaPublisher(config utils.KafkaConfig, log *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.BookingsTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{
		writer: writer,
		log:    log.With(zap.String("component", "event")),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt BookingEvent) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", evt.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.BookingID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	})
	if err != nil {
		p.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("type", string(evt.Type)),
			zap.String("booking_id", evt.BookingID),
		)
		return fmt.Errorf("publish %s event for %s: %w", evt.Type, evt.BookingID, err)
	}

	p.log.Debug("Event published",
		zap.String("type", string(evt.Type)),
		zap.String("booking_id", evt.BookingID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
