package service

import (
	"context"
	"fmt"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

type StatsService struct {
	users  ports.UserRepository
	plants ports.PlantRepository
	orders ports.OrderRepository
}

func NewStatsService(users ports.UserRepository, plants ports.PlantRepository, orders ports.OrderRepository) *StatsService {
	return &StatsService{users: users, plants: plants, orders: orders}
}

// AdminStats gathers the counts, order totals and the per-day chart.
func (s *StatsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	totalUser, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: count users: %w", err)
	}
	totalPlants, err := s.plants.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: count plants: %w", err)
	}
	totals, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: order totals: %w", err)
	}
	chart, err := s.orders.DailyChart(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: chart: %w", err)
	}
	if chart == nil {
		chart = []domain.ChartPoint{}
	}

	return &domain.AdminStats{
		TotalUser:   totalUser,
		TotalPlants: totalPlants,
		OrderTotals: *totals,
		ChartData:   chart,
	}, nil
}
