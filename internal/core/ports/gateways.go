package ports

import (
	"context"
	"io"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

// PaymentIntent is the subset of a gateway intent the service needs.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// PaymentEvent is a verified gateway webhook notification.
type PaymentEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
}

// PaymentGateway abstracts the third-party payment provider.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	VerifyWebhook(payload []byte, signature string) (*PaymentEvent, error)
}

// Email is a single outgoing HTML notification.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Notifier queues emails for asynchronous delivery.
type Notifier interface {
	Enqueue(email Email)
}

// OrderEventPublisher emits order lifecycle events to downstream consumers.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

// IdempotencyStore reserves client-supplied request keys.
type IdempotencyStore interface {
	// Reserve returns false when key was already reserved within scope.
	Reserve(ctx context.Context, scope, key string) (bool, error)
	// Release frees a reservation so the request can be retried.
	Release(ctx context.Context, scope, key string) error
}

// Metrics records business counters. Result and direction values are the
// label values exported by the metrics backend.
type Metrics interface {
	OrderPlaced()
	PaymentIntent(result string)
	InventoryAdjusted(direction string)
}

// ImageStore persists uploaded plant images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}
