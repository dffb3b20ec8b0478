// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

const (
	EventOrderPlaced = "order.placed"

	producerName = "plantnet-api"
)

// Envelope wraps every event payload published by the API.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderPlacedPayload is the body of an order.placed event.
type OrderPlacedPayload struct {
	OrderID       string  `json:"order_id"`
	PlantID       string  `json:"plant_id"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	CustomerEmail string  `json:"customer_email"`
	SellerEmail   string  `json:"seller_email"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by order id so one order's events stay
// on one partition. Writes are asynchronous; failures surface through the
// writer's completion callback and are logged.
type KafkaPublisher struct {
	w   messageWriter
	now func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			Completion: func(msgs []kafka.Message, err error) {
				if err != nil {
					log.Error().Err(err).Int("messages", len(msgs)).Str("topic", topic).Msg("kafka write failed")
				}
			},
		},
		now: time.Now,
	}
}

// PublishOrderPlaced emits an order.placed event for o.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(OrderPlacedPayload{
		OrderID:       o.ID,
		PlantID:       o.PlantID,
		Quantity:      o.Quantity,
		Price:         o.Price,
		CustomerEmail: o.Customer.Email,
		SellerEmail:   o.Seller,
		TransactionID: o.TransactionID,
	})
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	env, err := json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    p.now().UTC(),
		Producer:      producerName,
		CorrelationID: o.ID,
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Key:     []byte(o.ID),
		Value:   env,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(EventOrderPlaced)}},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", EventOrderPlaced, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NopPublisher discards events; it is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error { return nil }
