package usecase

import (
	"context"

	"go.uber.org/zap"

	"renovado/internal/domain"
	"renovado/internal/dto"
	apperrors "renovado/internal/errors"
)

type OrderUpdater interface {
	UpdateStatus(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error
	UpdateFields(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error
}

// UpdateStatusUseCase applies status transitions. The transition graph is
// deliberately permissive: any status may follow any other, and repeating
// the current status is a valid no-op.
type UpdateStatusUseCase struct {
	repo   OrderUpdater
	logger *zap.Logger
}

func NewUpdateStatusUseCase(repo OrderUpdater, logger *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		repo:   repo,
		logger: logger,
	}
}

// UpdateByNumero is the customer/confirmation path: status is required and
// the legacy alias is normalized before the write.
func (uc *UpdateStatusUseCase) UpdateByNumero(ctx context.Context, numero, status string, codigoRastreio *string) (*dto.UpdateStatusResponse, error) {
	if numero == "" {
		return nil, apperrors.NewValidationError("Número do pedido é obrigatório",
			apperrors.ValidationDetail{Field: "numero", Message: "numero is required"})
	}
	if status == "" {
		return nil, apperrors.NewValidationError("Status é obrigatório",
			apperrors.ValidationDetail{Field: "status", Message: "status is required"})
	}

	st, ok := domain.ParseStatus(status)
	if !ok {
		return nil, apperrors.NewValidationError("Status inválido",
			apperrors.ValidationDetail{Field: "status", Message: "unknown status"})
	}

	if err := uc.repo.UpdateStatus(ctx, numero, st, codigoRastreio); err != nil {
		return nil, err
	}

	uc.logger.Info("order status updated",
		zap.String("numero", numero),
		zap.String("status", string(st)))

	return &dto.UpdateStatusResponse{Numero: numero, Status: string(st)}, nil
}

// AdminUpdate is the admin path: a partial update where every field is
// optional and only the present ones are written.
func (uc *UpdateStatusUseCase) AdminUpdate(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error {
	if upd.Status != nil {
		st, ok := domain.ParseStatus(*upd.Status)
		if !ok {
			return apperrors.NewValidationError("Status inválido",
				apperrors.ValidationDetail{Field: "status", Message: "unknown status"})
		}
		normalized := string(st)
		upd.Status = &normalized
	}

	if err := uc.repo.UpdateFields(ctx, id, upd); err != nil {
		return err
	}

	uc.logger.Info("order updated by admin", zap.Uint("id", id))
	return nil
}
