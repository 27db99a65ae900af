package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"renovado/internal/domain"
	"renovado/internal/dto"
)

// StatsRepository isolates the on-demand scan so a cached or incrementally
// maintained implementation can replace it without touching callers.
type StatsRepository interface {
	SumRevenue(ctx context.Context, statuses []domain.Status) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
}

type DashboardStatsUseCase struct {
	repo   StatsRepository
	logger *zap.Logger
}

func NewDashboardStatsUseCase(repo StatsRepository, logger *zap.Logger) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{
		repo:   repo,
		logger: logger,
	}
}

// GetStats derives the dashboard summary. Revenue only counts orders that
// moved past pendente and were not canceled.
func (uc *DashboardStatsUseCase) GetStats(ctx context.Context) (*dto.AdminStats, error) {
	revenue, err := uc.repo.SumRevenue(ctx, domain.RevenueStatuses())
	if err != nil {
		return nil, err
	}
	orders, err := uc.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminStats{
		TotalRevenue:    revenue,
		TotalOrders:     orders,
		TotalProducts:   products,
		TotalCategories: categories,
	}, nil
}
