package service

import (
	"context"
	"testing"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

func TestStatsService_AdminStats(t *testing.T) {
	users := newMemUsers(&domain.User{Email: "a@example.com"}, &domain.User{Email: "b@example.com"})
	orders := newMemOrders()
	orders.totals = &domain.OrderTotals{TotalRevenue: 95.5, TotalOrder: 3}
	orders.chart = []domain.ChartPoint{
		{Date: "2024-01-01", Quantity: 2, Price: 40, Order: 1},
		{Date: "2024-01-02", Quantity: 3, Price: 55.5, Order: 2},
	}
	svc := NewStatsService(users, seededPlants(), orders)

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalUser != 2 || stats.TotalPlants != 1 {
		t.Errorf("unexpected counts: users=%d plants=%d", stats.TotalUser, stats.TotalPlants)
	}
	if stats.TotalRevenue != 95.5 || stats.TotalOrder != 3 {
		t.Errorf("unexpected totals: %+v", stats.OrderTotals)
	}
	if len(stats.ChartData) != 2 || stats.ChartData[0].Date != "2024-01-01" {
		t.Errorf("unexpected chart: %+v", stats.ChartData)
	}
}

func TestStatsService_AdminStats_NoOrders(t *testing.T) {
	svc := NewStatsService(newMemUsers(), newMemPlants(), newMemOrders())

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalOrder != 0 || stats.TotalRevenue != 0 {
		t.Errorf("expected zero totals, got %+v", stats.OrderTotals)
	}
	if stats.ChartData == nil {
		t.Errorf("expected empty chart, got nil")
	}
}
