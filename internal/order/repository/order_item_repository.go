package repository

import (
	"context"
	"database/sql"
	"fmt"

	"renovado/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// Insert writes one line item inside the order-creation transaction.
func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx DBTX, item domain.OrderItem) (uint, error) {
	query := `
		INSERT INTO pedido_itens (
			pedido_id, produto_id, produto_nome, produto_sku, produto_imagem,
			quantidade, preco_unitario, subtotal
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		item.PedidoID, item.ProdutoID, item.ProdutoNome, item.ProdutoSKU, item.ProdutoImagem,
		item.Quantidade, item.PrecoUnitario, item.Subtotal,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderItemRepository) ListByPedidoID(ctx context.Context, pedidoID uint) ([]domain.OrderItem, error) {
	query := `
		SELECT id, pedido_id, produto_id, produto_nome, produto_sku, produto_imagem,
		       quantidade, preco_unitario, subtotal
		FROM pedido_itens
		WHERE pedido_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		var produtoID sql.NullInt64
		var sku, imagem sql.NullString

		err := rows.Scan(
			&it.ID, &it.PedidoID, &produtoID, &it.ProdutoNome, &sku, &imagem,
			&it.Quantidade, &it.PrecoUnitario, &it.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}

		if produtoID.Valid {
			it.ProdutoID = &produtoID.Int64
		}
		it.ProdutoSKU = nullableString(sku)
		it.ProdutoImagem = nullableString(imagem)

		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}
	return items, nil
}
