package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"renovado/internal/domain"
	"renovado/internal/dto"
	apperrors "renovado/internal/errors"
)

type mockOrderUpdater struct {
	UpdateStatusFunc func(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error
	UpdateFieldsFunc func(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error
}

func (m *mockOrderUpdater) UpdateStatus(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error {
	return m.UpdateStatusFunc(ctx, numero, status, codigoRastreio)
}

func (m *mockOrderUpdater) UpdateFields(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error {
	return m.UpdateFieldsFunc(ctx, id, upd)
}

func TestUpdateByNumero_Success(t *testing.T) {
	var gotStatus domain.Status
	var gotRastreio *string
	uc := NewUpdateStatusUseCase(&mockOrderUpdater{
		UpdateStatusFunc: func(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error {
			gotStatus = status
			gotRastreio = codigoRastreio
			return nil
		},
	}, zap.NewNop())

	resp, err := uc.UpdateByNumero(context.Background(), "ABC123", "enviado", strPtr("BR123456789"))
	require.NoError(t, err)

	assert.Equal(t, "ABC123", resp.Numero)
	assert.Equal(t, "enviado", resp.Status)
	assert.Equal(t, domain.StatusEnviado, gotStatus)
	require.NotNil(t, gotRastreio)
	assert.Equal(t, "BR123456789", *gotRastreio)
}

func TestUpdateByNumero_Validation(t *testing.T) {
	tests := []struct {
		name    string
		numero  string
		status  string
		wantMsg string
	}{
		{"missing numero", "", "pago", "Número do pedido é obrigatório"},
		{"missing status", "ABC123", "", "Status é obrigatório"},
		{"unknown status", "ABC123", "devolvido", "Status inválido"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewUpdateStatusUseCase(&mockOrderUpdater{}, zap.NewNop())

			_, err := uc.UpdateByNumero(context.Background(), tc.numero, tc.status, nil)
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tc.wantMsg, ve.Message)
		})
	}
}

func TestUpdateByNumero_AliasNormalized(t *testing.T) {
	var gotStatus domain.Status
	uc := NewUpdateStatusUseCase(&mockOrderUpdater{
		UpdateStatusFunc: func(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error {
			gotStatus = status
			return nil
		},
	}, zap.NewNop())

	resp, err := uc.UpdateByNumero(context.Background(), "ABC123", "aguardando_pagamento", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendente, gotStatus)
	assert.Equal(t, "pendente", resp.Status)
}

func TestUpdateByNumero_NotFoundPassesThrough(t *testing.T) {
	uc := NewUpdateStatusUseCase(&mockOrderUpdater{
		UpdateStatusFunc: func(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error {
			return apperrors.NewNotFoundError("order not found")
		},
	}, zap.NewNop())

	_, err := uc.UpdateByNumero(context.Background(), "ZZZZZZ", "pago", nil)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestAdminUpdate_NormalizesStatus(t *testing.T) {
	var gotUpd dto.AdminOrderUpdate
	uc := NewUpdateStatusUseCase(&mockOrderUpdater{
		UpdateFieldsFunc: func(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error {
			gotUpd = upd
			return nil
		},
	}, zap.NewNop())

	err := uc.AdminUpdate(context.Background(), 5, dto.AdminOrderUpdate{
		Status:      strPtr("aguardando_pagamento"),
		Observacoes: strPtr("cliente vai pagar amanhã"),
	})
	require.NoError(t, err)

	require.NotNil(t, gotUpd.Status)
	assert.Equal(t, "pendente", *gotUpd.Status)
	require.NotNil(t, gotUpd.Observacoes)
	assert.Nil(t, gotUpd.CodigoRastreio)
}

func TestAdminUpdate_RejectsUnknownStatus(t *testing.T) {
	uc := NewUpdateStatusUseCase(&mockOrderUpdater{}, zap.NewNop())

	err := uc.AdminUpdate(context.Background(), 5, dto.AdminOrderUpdate{Status: strPtr("extraviado")})
	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Status inválido", ve.Message)
}

func TestAdminUpdate_StatusOptional(t *testing.T) {
	called := false
	uc := NewUpdateStatusUseCase(&mockOrderUpdater{
		UpdateFieldsFunc: func(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error {
			called = true
			return nil
		},
	}, zap.NewNop())

	err := uc.AdminUpdate(context.Background(), 5, dto.AdminOrderUpdate{
		CodigoRastreio: strPtr("BR987654321"),
	})
	require.NoError(t, err)
	assert.True(t, called)
}
