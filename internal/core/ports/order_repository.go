package ports

import (
	"context"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

// OrderRepository defines persistence and reporting operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) (int64, error)
	SetStatus(ctx context.Context, id, status string) (*domain.UpdateResult, error)
	// MarkPaymentVerified flags every order carrying transactionID.
	MarkPaymentVerified(ctx context.Context, transactionID string) (int64, error)
	// ExistsByTransactionID reports whether an order already carries transactionID.
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)

	// ListByCustomer and ListBySeller join each order with its plant.
	ListByCustomer(ctx context.Context, email string) ([]*domain.OrderView, error)
	ListBySeller(ctx context.Context, email string) ([]*domain.OrderView, error)

	Totals(ctx context.Context) (*domain.OrderTotals, error)
	DailyChart(ctx context.Context) ([]domain.ChartPoint, error)
}
