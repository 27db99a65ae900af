package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the fulfillment stage of an order.
type Status string

const (
	StatusPendente   Status = "pendente"
	StatusPago       Status = "pago"
	StatusPreparando Status = "preparando"
	StatusEnviado    Status = "enviado"
	StatusEntregue   Status = "entregue"
	StatusCancelado  Status = "cancelado"
)

// statusAliasAguardando is accepted on input for compatibility with older
// frontends and normalized to pendente.
const statusAliasAguardando = "aguardando_pagamento"

var validStatuses = map[Status]bool{
	StatusPendente:   true,
	StatusPago:       true,
	StatusPreparando: true,
	StatusEnviado:    true,
	StatusEntregue:   true,
	StatusCancelado:  true,
}

// ParseStatus normalizes the legacy alias and rejects values outside the
// closed status set. Normalization happens once, here at the boundary.
func ParseStatus(s string) (Status, bool) {
	if s == statusAliasAguardando {
		return StatusPendente, true
	}
	st := Status(s)
	if validStatuses[st] {
		return st, true
	}
	return "", false
}

// RevenueStatuses are the statuses whose orders count as completed sales.
func RevenueStatuses() []Status {
	return []Status{StatusPago, StatusPreparando, StatusEnviado, StatusEntregue}
}

type FormaPagamento string

const (
	PagamentoPix    FormaPagamento = "pix"
	PagamentoCartao FormaPagamento = "cartao"
	PagamentoBoleto FormaPagamento = "boleto"
)

func ParseFormaPagamento(s string) (FormaPagamento, bool) {
	switch fp := FormaPagamento(s); fp {
	case PagamentoPix, PagamentoCartao, PagamentoBoleto:
		return fp, true
	}
	return "", false
}

// Order is one purchase transaction. Customer and address data are snapshots
// copied at creation time, never live references. After creation only status,
// codigo_rastreio and observacoes may change.
type Order struct {
	ID              uint
	Numero          string
	UsuarioID       *int64
	NomeCliente     string
	EmailCliente    string
	TelefoneCliente *string
	CPFCliente      *string

	EnderecoCEP         *string
	EnderecoLogradouro  *string
	EnderecoNumero      *string
	EnderecoComplemento *string
	EnderecoBairro      *string
	EnderecoCidade      *string
	EnderecoEstado      *string

	Subtotal decimal.Decimal
	Desconto decimal.Decimal
	Frete    decimal.Decimal
	Total    decimal.Decimal

	FormaPagamento FormaPagamento
	Status         Status
	CodigoRastreio *string
	Observacoes    *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Itens []OrderItem
}
