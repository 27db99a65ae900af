package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"renovado/internal/domain"
)

type MySQLStatsRepository struct {
	db *sql.DB
}

func NewMySQLStatsRepository(db *sql.DB) *MySQLStatsRepository {
	return &MySQLStatsRepository{db: db}
}

// SumRevenue totals the `total` column over orders in the given statuses.
func (r *MySQLStatsRepository) SumRevenue(ctx context.Context, statuses []domain.Status) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}

	placeholders := strings.Repeat("?, ", len(statuses)-1) + "?"
	args := make([]any, len(statuses))
	for i, st := range statuses {
		args[i] = string(st)
	}

	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM pedidos WHERE status IN (`+placeholders+`)`,
		args...,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing revenue: %w", err)
	}
	return sum, nil
}

func (r *MySQLStatsRepository) CountOrders(ctx context.Context) (int, error) {
	return r.count(ctx, "pedidos")
}

func (r *MySQLStatsRepository) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "produtos")
}

func (r *MySQLStatsRepository) CountCategories(ctx context.Context) (int, error) {
	return r.count(ctx, "categorias")
}

func (r *MySQLStatsRepository) count(ctx context.Context, table string) (int, error) {
	var n int
	// table is one of three fixed names, never caller input.
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
