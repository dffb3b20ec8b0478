package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

const scopeQuantity = "plant-quantity"

type PlantService struct {
	repo        ports.PlantRepository
	idempotency ports.IdempotencyStore
	metrics     ports.Metrics
	logger      zerolog.Logger
}

func NewPlantService(repo ports.PlantRepository, idempotency ports.IdempotencyStore, metrics ports.Metrics, logger zerolog.Logger) *PlantService {
	return &PlantService{repo: repo, idempotency: idempotency, metrics: metricsOrNop(metrics), logger: logger}
}

// Create stores the plant exactly as submitted by the seller.
func (s *PlantService) Create(ctx context.Context, p domain.Plant) (string, error) {
	p.ID = ""
	id, err := s.repo.Create(ctx, &p)
	if err != nil {
		return "", fmt.Errorf("create plant: %w", err)
	}
	s.logger.Info().Str("plant_id", id).Str("seller", p.Seller.Email).Msg("plant created")
	return id, nil
}

func (s *PlantService) List(ctx context.Context) ([]*domain.Plant, error) {
	plants, err := s.repo.List(ctx, domain.PublicPlantLimit)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return nonNilPlants(plants), nil
}

func (s *PlantService) Get(ctx context.Context, id string) (*domain.Plant, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PlantService) ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Plant, error) {
	plants, err := s.repo.ListBySeller(ctx, sellerEmail)
	if err != nil {
		return nil, fmt.Errorf("list seller plants: %w", err)
	}
	return nonNilPlants(plants), nil
}

// Delete removes a plant. Ownership is not checked against the caller.
func (s *PlantService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete plant: %w", err)
	}
	if n == 0 {
		return 0, domain.ErrPlantNotFound
	}
	return n, nil
}

// AdjustQuantity applies a signed delta with the store's atomic increment.
// Repeated calls mutate again unless an idempotency key is supplied; a
// failed adjustment frees the key.
func (s *PlantService) AdjustQuantity(ctx context.Context, in ports.AdjustQuantityInput) (*domain.UpdateResult, error) {
	release, err := reserveKey(ctx, s.idempotency, s.logger, scopeQuantity, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	delta := in.Direction.Delta(in.Quantity)
	res, err := s.repo.IncrementQuantity(ctx, in.PlantID, delta)
	if err != nil {
		release()
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		release()
		return nil, domain.ErrPlantNotFound
	}

	direction := domain.QuantityDecrease
	if in.Direction == domain.QuantityIncrease {
		direction = domain.QuantityIncrease
	}
	s.metrics.InventoryAdjusted(string(direction))
	s.logger.Info().Str("plant_id", in.PlantID).Int("delta", delta).Msg("quantity adjusted")
	return res, nil
}

func nonNilPlants(p []*domain.Plant) []*domain.Plant {
	if p == nil {
		return []*domain.Plant{}
	}
	return p
}
