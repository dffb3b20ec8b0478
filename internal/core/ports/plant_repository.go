package ports

import (
	"context"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

// PlantRepository defines persistence operations for plants.
type PlantRepository interface {
	Create(ctx context.Context, p *domain.Plant) (string, error)
	List(ctx context.Context, limit int64) ([]*domain.Plant, error)
	FindByID(ctx context.Context, id string) (*domain.Plant, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Plant, error)
	Delete(ctx context.Context, id string) (int64, error)
	// IncrementQuantity applies delta to the stored quantity with a single
	// atomic $inc.
	IncrementQuantity(ctx context.Context, id string, delta int) (*domain.UpdateResult, error)
	Count(ctx context.Context) (int64, error)
}
