package ports

import (
	"context"
	"time"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

// SessionService signs and verifies session tokens.
type SessionService interface {
	Issue(email string) (string, error)
	Verify(token string) (string, error)
	TTL() time.Duration
}

// UserService covers the user lifecycle.
type UserService interface {
	Upsert(ctx context.Context, u domain.User) (user *domain.User, created bool, err error)
	RequestStatus(ctx context.Context, email string) (*domain.UpdateResult, error)
	UpdateRole(ctx context.Context, email, role string) (*domain.UpdateResult, error)
	GetRole(ctx context.Context, email string) (string, error)
	ListExcept(ctx context.Context, email string) ([]*domain.User, error)
	Get(ctx context.Context, email string) (*domain.User, error)
}

// AdjustQuantityInput carries an inventory adjustment request.
type AdjustQuantityInput struct {
	PlantID        string
	Quantity       int
	Direction      domain.QuantityDirection
	IdempotencyKey string
}

// PlantService covers plant inventory operations.
type PlantService interface {
	Create(ctx context.Context, p domain.Plant) (string, error)
	List(ctx context.Context) ([]*domain.Plant, error)
	Get(ctx context.Context, id string) (*domain.Plant, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Plant, error)
	Delete(ctx context.Context, id string) (int64, error)
	AdjustQuantity(ctx context.Context, in AdjustQuantityInput) (*domain.UpdateResult, error)
}

// PaymentService creates intents and consumes gateway webhooks.
type PaymentService interface {
	CreateIntent(ctx context.Context, plantID string, quantity int) (*PaymentIntent, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// PlaceOrderInput carries an order payload plus its optional replay key.
type PlaceOrderInput struct {
	Order          domain.Order
	IdempotencyKey string
}

// OrderService covers order placement, queries and lifecycle.
type OrderService interface {
	Place(ctx context.Context, in PlaceOrderInput) (string, error)
	CustomerOrders(ctx context.Context, email string) ([]*domain.OrderView, error)
	SellerOrders(ctx context.Context, email string) ([]*domain.OrderView, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.UpdateResult, error)
	Cancel(ctx context.Context, id string) (int64, error)
}

// StatsService produces the admin dashboard summary.
type StatsService interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
}
