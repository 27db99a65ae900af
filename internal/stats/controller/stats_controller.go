package controller

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovado/internal/dto"
	"renovado/internal/httpx"
)

type StatsUseCase interface {
	GetStats(ctx context.Context) (*dto.AdminStats, error)
}

type Controller struct {
	useCase StatsUseCase
	logger  *zap.Logger
}

func NewController(useCase StatsUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	stats, err := c.useCase.GetStats(r.Context())
	if err != nil {
		logger.Error("stats aggregation failed", zap.Error(err))
		httpx.Error(w, logger, http.StatusInternalServerError, "Erro ao calcular estatísticas")
		return
	}

	httpx.Success(w, logger, stats)
}
