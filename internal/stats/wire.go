package stats

import (
	"database/sql"

	"go.uber.org/zap"

	"renovado/internal/stats/controller"
	"renovado/internal/stats/repository"
	"renovado/internal/stats/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLStatsRepository(db)
	uc := usecase.NewDashboardStatsUseCase(repo, logger)
	return controller.NewController(uc, logger)
}
