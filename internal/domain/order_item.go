package domain

import "github.com/shopspring/decimal"

// OrderItem is one purchased line. Product identity is a snapshot taken at
// purchase time so later catalog edits never alter historical orders. Items
// are created only inside the order's creation transaction and removed only
// by cascading order deletion.
type OrderItem struct {
	ID            uint
	PedidoID      uint
	ProdutoID     *int64
	ProdutoNome   string
	ProdutoSKU    *string
	ProdutoImagem *string
	Quantidade    int
	PrecoUnitario decimal.Decimal
	Subtotal      decimal.Decimal
}
