package dto

import (
	"github.com/shopspring/decimal"

	"renovado/internal/domain"
)

// CreateOrderRequest is the checkout payload. The cart lives entirely on the
// client, so the shape is lenient: amounts may be numbers or strings, and
// items accept both the canonical field names and the older English aliases
// some frontends still send.
type CreateOrderRequest struct {
	UsuarioID       *int64            `json:"usuario_id"`
	NomeCliente     string            `json:"nome_cliente"`
	EmailCliente    string            `json:"email_cliente"`
	TelefoneCliente *string           `json:"telefone_cliente"`
	CPFCliente      *string           `json:"cpf_cliente"`
	Endereco        *Endereco         `json:"endereco"`
	Itens           []CreateOrderItem `json:"itens"`
	Subtotal        *decimal.Decimal  `json:"subtotal"`
	Desconto        *decimal.Decimal  `json:"desconto"`
	Frete           *decimal.Decimal  `json:"frete"`
	Total           *decimal.Decimal  `json:"total"`
	FormaPagamento  string            `json:"forma_pagamento"`
	Status          string            `json:"status"`
	Observacoes     *string           `json:"observacoes"`
}

type Endereco struct {
	CEP         *string `json:"cep"`
	Logradouro  *string `json:"logradouro"`
	Numero      *string `json:"numero"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	Cidade      *string `json:"cidade"`
	Estado      *string `json:"estado"`
}

type CreateOrderItem struct {
	ProdutoID     *int64           `json:"produto_id"`
	AliasID       *int64           `json:"id"`
	Nome          string           `json:"nome"`
	AliasNome     string           `json:"name"`
	SKU           *string          `json:"sku"`
	Imagem        *string          `json:"imagem"`
	AliasImagem   *string          `json:"image"`
	Quantidade    *int             `json:"quantidade"`
	AliasQtd      *int             `json:"quantity"`
	PrecoUnitario *decimal.Decimal `json:"preco_unitario"`
	AliasPreco    *decimal.Decimal `json:"price"`
}

// ResolveProdutoID prefers the canonical field over the alias.
func (i CreateOrderItem) ResolveProdutoID() *int64 {
	if i.ProdutoID != nil {
		return i.ProdutoID
	}
	return i.AliasID
}

func (i CreateOrderItem) ResolveNome() string {
	if i.Nome != "" {
		return i.Nome
	}
	if i.AliasNome != "" {
		return i.AliasNome
	}
	return "Produto"
}

func (i CreateOrderItem) ResolveImagem() *string {
	if i.Imagem != nil {
		return i.Imagem
	}
	return i.AliasImagem
}

func (i CreateOrderItem) ResolveQuantidade() (int, bool) {
	if i.Quantidade != nil {
		return *i.Quantidade, true
	}
	if i.AliasQtd != nil {
		return *i.AliasQtd, true
	}
	return 1, false
}

func (i CreateOrderItem) ResolvePrecoUnitario() decimal.Decimal {
	if i.PrecoUnitario != nil {
		return *i.PrecoUnitario
	}
	if i.AliasPreco != nil {
		return *i.AliasPreco
	}
	return decimal.Zero
}

type CreateOrderResponse struct {
	ID     uint   `json:"id"`
	Numero string `json:"numero"`
}

// UpdateStatusRequest is the body of the public status update endpoint.
type UpdateStatusRequest struct {
	Numero         string  `json:"numero"`
	Status         string  `json:"status"`
	CodigoRastreio *string `json:"codigo_rastreio"`
}

type UpdateStatusResponse struct {
	Numero string `json:"numero"`
	Status string `json:"status"`
}

// AdminOrderUpdate carries the admin partial update: only fields present in
// the request body are written.
type AdminOrderUpdate struct {
	Status         *string `json:"status"`
	CodigoRastreio *string `json:"codigo_rastreio"`
	Observacoes    *string `json:"observacoes"`
}

// AdminListQuery are the admin listing parameters after defaulting.
type AdminListQuery struct {
	Limite int
	Pagina int
	Status string
	Busca  string
}

type AdminListResponse struct {
	Pedidos []OrderResponse `json:"pedidos"`
	Total   int             `json:"total"`
	Pagina  int             `json:"pagina"`
	Limite  int             `json:"limite"`
}

type OrderResponse struct {
	ID              uint    `json:"id"`
	Numero          string  `json:"numero"`
	UsuarioID       *int64  `json:"usuario_id"`
	NomeCliente     string  `json:"nome_cliente"`
	EmailCliente    string  `json:"email_cliente"`
	TelefoneCliente *string `json:"telefone_cliente"`
	CPFCliente      *string `json:"cpf_cliente"`

	EnderecoCEP         *string `json:"endereco_cep"`
	EnderecoLogradouro  *string `json:"endereco_logradouro"`
	EnderecoNumero      *string `json:"endereco_numero"`
	EnderecoComplemento *string `json:"endereco_complemento"`
	EnderecoBairro      *string `json:"endereco_bairro"`
	EnderecoCidade      *string `json:"endereco_cidade"`
	EnderecoEstado      *string `json:"endereco_estado"`

	Subtotal decimal.Decimal `json:"subtotal"`
	Desconto decimal.Decimal `json:"desconto"`
	Frete    decimal.Decimal `json:"frete"`
	Total    decimal.Decimal `json:"total"`

	FormaPagamento string  `json:"forma_pagamento"`
	Status         string  `json:"status"`
	CodigoRastreio *string `json:"codigo_rastreio"`
	Observacoes    *string `json:"observacoes"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	Itens []OrderItemResponse `json:"itens"`
}

type OrderItemResponse struct {
	ID            uint            `json:"id"`
	ProdutoID     *int64          `json:"produto_id"`
	Nome          string          `json:"nome"`
	SKU           *string         `json:"sku"`
	Imagem        *string         `json:"imagem"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

const timeLayout = "2006-01-02 15:04:05"

// FromOrder maps a domain order (with items) onto the wire shape.
func FromOrder(o domain.Order) OrderResponse {
	itens := make([]OrderItemResponse, len(o.Itens))
	for i, it := range o.Itens {
		itens[i] = OrderItemResponse{
			ID:            it.ID,
			ProdutoID:     it.ProdutoID,
			Nome:          it.ProdutoNome,
			SKU:           it.ProdutoSKU,
			Imagem:        it.ProdutoImagem,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Subtotal:      it.Subtotal,
		}
	}

	return OrderResponse{
		ID:                  o.ID,
		Numero:              o.Numero,
		UsuarioID:           o.UsuarioID,
		NomeCliente:         o.NomeCliente,
		EmailCliente:        o.EmailCliente,
		TelefoneCliente:     o.TelefoneCliente,
		CPFCliente:          o.CPFCliente,
		EnderecoCEP:         o.EnderecoCEP,
		EnderecoLogradouro:  o.EnderecoLogradouro,
		EnderecoNumero:      o.EnderecoNumero,
		EnderecoComplemento: o.EnderecoComplemento,
		EnderecoBairro:      o.EnderecoBairro,
		EnderecoCidade:      o.EnderecoCidade,
		EnderecoEstado:      o.EnderecoEstado,
		Subtotal:            o.Subtotal,
		Desconto:            o.Desconto,
		Frete:               o.Frete,
		Total:               o.Total,
		FormaPagamento:      string(o.FormaPagamento),
		Status:              string(o.Status),
		CodigoRastreio:      o.CodigoRastreio,
		Observacoes:         o.Observacoes,
		CreatedAt:           o.CreatedAt.Format(timeLayout),
		UpdatedAt:           o.UpdatedAt.Format(timeLayout),
		Itens:               itens,
	}
}

func FromOrders(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = FromOrder(o)
	}
	return out
}
