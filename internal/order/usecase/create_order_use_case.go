package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"renovado/internal/domain"
	"renovado/internal/dto"
	apperrors "renovado/internal/errors"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, o *domain.Order) (uint, error)
}

// CreateOrderUseCase validates the client-supplied cart snapshot, applies
// the lenient defaults, normalizes the legacy status alias and hands the
// assembled order to the transaction writer. Monetary totals are accepted
// as sent; the server does not recompute them, matching the storefront's
// trust-the-client contract.
type CreateOrderUseCase struct {
	checkout CheckoutService
	logger   *zap.Logger
}

func NewCreateOrderUseCase(checkout CheckoutService, logger *zap.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		checkout: checkout,
		logger:   logger,
	}
}

func (uc *CreateOrderUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}

	order, err := uc.buildOrder(req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("creating order",
		zap.String("email", order.EmailCliente),
		zap.Int("items", len(order.Itens)),
		zap.String("total", order.Total.String()))

	id, err := uc.checkout.PlaceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	return &dto.CreateOrderResponse{ID: id, Numero: order.Numero}, nil
}

func (uc *CreateOrderUseCase) validate(req dto.CreateOrderRequest) error {
	required := []struct {
		field string
		empty bool
	}{
		{"nome_cliente", req.NomeCliente == ""},
		{"email_cliente", req.EmailCliente == ""},
		{"itens", req.Itens == nil},
		{"total", req.Total == nil},
		{"forma_pagamento", req.FormaPagamento == ""},
	}
	for _, f := range required {
		if f.empty {
			msg := "Campo obrigatório: " + f.field
			return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
				Field:   f.field,
				Message: msg,
			})
		}
	}

	if len(req.Itens) == 0 {
		return apperrors.NewValidationError("Itens do pedido são obrigatórios",
			apperrors.ValidationDetail{Field: "itens", Message: "itens must not be empty"})
	}

	if _, ok := domain.ParseFormaPagamento(req.FormaPagamento); !ok {
		return apperrors.NewValidationError("Forma de pagamento inválida",
			apperrors.ValidationDetail{Field: "forma_pagamento", Message: "must be pix, cartao or boleto"})
	}

	if req.Status != "" {
		if _, ok := domain.ParseStatus(req.Status); !ok {
			return apperrors.NewValidationError("Status inválido",
				apperrors.ValidationDetail{Field: "status", Message: "unknown status"})
		}
	}

	for idx, item := range req.Itens {
		if qty, provided := item.ResolveQuantidade(); provided && qty <= 0 {
			return apperrors.NewValidationError("Quantidade inválida",
				apperrors.ValidationDetail{
					Field:   fmt.Sprintf("itens[%d].quantidade", idx),
					Message: "quantidade must be a positive integer",
				})
		}
		if item.ResolvePrecoUnitario().IsNegative() {
			return apperrors.NewValidationError("Preço unitário inválido",
				apperrors.ValidationDetail{
					Field:   fmt.Sprintf("itens[%d].preco_unitario", idx),
					Message: "preco_unitario must be non-negative",
				})
		}
	}

	return nil
}

func (uc *CreateOrderUseCase) buildOrder(req dto.CreateOrderRequest) (*domain.Order, error) {
	status := domain.StatusPendente
	if req.Status != "" {
		status, _ = domain.ParseStatus(req.Status)
	}
	forma, _ := domain.ParseFormaPagamento(req.FormaPagamento)

	total := *req.Total
	subtotal := total
	if req.Subtotal != nil {
		subtotal = *req.Subtotal
	}
	desconto := decimal.Zero
	if req.Desconto != nil {
		desconto = *req.Desconto
	}
	frete := decimal.Zero
	if req.Frete != nil {
		frete = *req.Frete
	}

	order := &domain.Order{
		UsuarioID:       req.UsuarioID,
		NomeCliente:     req.NomeCliente,
		EmailCliente:    req.EmailCliente,
		TelefoneCliente: req.TelefoneCliente,
		CPFCliente:      req.CPFCliente,
		Subtotal:        subtotal,
		Desconto:        desconto,
		Frete:           frete,
		Total:           total,
		FormaPagamento:  forma,
		Status:          status,
		Observacoes:     req.Observacoes,
	}

	if end := req.Endereco; end != nil {
		order.EnderecoCEP = end.CEP
		order.EnderecoLogradouro = end.Logradouro
		order.EnderecoNumero = end.Numero
		order.EnderecoComplemento = end.Complemento
		order.EnderecoBairro = end.Bairro
		order.EnderecoCidade = end.Cidade
		order.EnderecoEstado = end.Estado
	}

	order.Itens = make([]domain.OrderItem, len(req.Itens))
	for i, item := range req.Itens {
		qty, _ := item.ResolveQuantidade()
		preco := item.ResolvePrecoUnitario()

		order.Itens[i] = domain.OrderItem{
			ProdutoID:     item.ResolveProdutoID(),
			ProdutoNome:   item.ResolveNome(),
			ProdutoSKU:    item.SKU,
			ProdutoImagem: item.ResolveImagem(),
			Quantidade:    qty,
			PrecoUnitario: preco,
			Subtotal:      preco.Mul(decimal.NewFromInt(int64(qty))),
		}
	}

	return order, nil
}
