package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"renovado/internal/domain"
	"renovado/internal/dto"
	"renovado/internal/errors"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx. Writes that must join the
// order-creation transaction take it explicitly; everything else runs on the
// pooled handle the repository was built with.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const orderColumns = `id, numero, usuario_id, nome_cliente, email_cliente,
		telefone_cliente, cpf_cliente,
		endereco_cep, endereco_logradouro, endereco_numero, endereco_complemento,
		endereco_bairro, endereco_cidade, endereco_estado,
		subtotal, desconto, frete, total,
		forma_pagamento, status, codigo_rastreio, observacoes,
		created_at, updated_at`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert writes the order header inside the given transaction. The numero
// column carries a unique index; a duplicate surfaces as a mysql 1062 error
// for the caller to classify.
func (r *MySQLOrderRepository) Insert(ctx context.Context, tx DBTX, o *domain.Order) (uint, error) {
	query := `
		INSERT INTO pedidos (
			numero, usuario_id, nome_cliente, email_cliente,
			telefone_cliente, cpf_cliente,
			endereco_cep, endereco_logradouro, endereco_numero, endereco_complemento,
			endereco_bairro, endereco_cidade, endereco_estado,
			subtotal, desconto, frete, total,
			forma_pagamento, status, observacoes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		o.Numero, o.UsuarioID, o.NomeCliente, o.EmailCliente,
		o.TelefoneCliente, o.CPFCliente,
		o.EnderecoCEP, o.EnderecoLogradouro, o.EnderecoNumero, o.EnderecoComplemento,
		o.EnderecoBairro, o.EnderecoCidade, o.EnderecoEstado,
		o.Subtotal, o.Desconto, o.Frete, o.Total,
		string(o.FormaPagamento), string(o.Status), o.Observacoes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) NumeroExists(ctx context.Context, numero string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pedidos WHERE numero = ?`, numero,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking numero existence: %w", err)
	}
	return count > 0, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM pedidos WHERE id = ?`, id)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	return order, nil
}

func (r *MySQLOrderRepository) FindByNumero(ctx context.Context, numero string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM pedidos WHERE numero = ? LIMIT 1`, numero)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", numero))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by numero: %w", err)
	}
	return order, nil
}

func (r *MySQLOrderRepository) ListByUsuarioID(ctx context.Context, usuarioID int64) ([]domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM pedidos WHERE usuario_id = ? ORDER BY created_at DESC, id DESC`,
		usuarioID)
}

func (r *MySQLOrderRepository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM pedidos WHERE email_cliente = ? ORDER BY created_at DESC, id DESC`,
		email)
}

// ListFilter narrows the admin listing. Zero values mean "no filter".
type ListFilter struct {
	Status string
	Busca  string
	Limit  int
	Offset int
}

// whereClause builds the shared WHERE for List and Count. Values are always
// bound as placeholders, never concatenated.
func (f ListFilter) whereClause() (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Busca != "" {
		conds = append(conds, "(nome_cliente LIKE ? OR numero LIKE ? OR email_cliente LIKE ?)")
		like := "%" + f.Busca + "%"
		args = append(args, like, like, like)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *MySQLOrderRepository) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	where, args := f.whereClause()
	query := `SELECT ` + orderColumns + ` FROM pedidos` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	return r.list(ctx, query, args...)
}

func (r *MySQLOrderRepository) Count(ctx context.Context, f ListFilter) (int, error) {
	where, args := f.whereClause()

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pedidos`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return total, nil
}

// UpdateStatus overwrites the status (and optionally the tracking code) of
// the order identified by numero. Updating to the current status is a valid
// no-op, so existence is checked separately instead of relying on MySQL's
// changed-rows count.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, numero string, status domain.Status, codigoRastreio *string) error {
	exists, err := r.NumeroExists(ctx, numero)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", numero))
	}

	query := `UPDATE pedidos SET status = ?, updated_at = NOW() WHERE numero = ?`
	args := []any{string(status), numero}
	if codigoRastreio != nil {
		query = `UPDATE pedidos SET status = ?, codigo_rastreio = ?, updated_at = NOW() WHERE numero = ?`
		args = []any{string(status), *codigoRastreio, numero}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	return nil
}

// UpdateFields applies the admin partial update: only non-nil fields are
// written. The SET list is assembled from fixed column fragments with bound
// values.
func (r *MySQLOrderRepository) UpdateFields(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error {
	var sets []string
	var args []any

	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.CodigoRastreio != nil {
		sets = append(sets, "codigo_rastreio = ?")
		args = append(args, *upd.CodigoRastreio)
	}
	if upd.Observacoes != nil {
		sets = append(sets, "observacoes = ?")
		args = append(args, *upd.Observacoes)
	}

	if len(sets) == 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}

	sets = append(sets, "updated_at = NOW()")
	query := `UPDATE pedidos SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating order fields: %w", err)
	}
	return nil
}

func (r *MySQLOrderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var usuarioID sql.NullInt64
	var telefone, cpf sql.NullString
	var cep, logradouro, numero, complemento, bairro, cidade, estado sql.NullString
	var forma, status string
	var rastreio, obs sql.NullString

	err := row.Scan(
		&o.ID, &o.Numero, &usuarioID, &o.NomeCliente, &o.EmailCliente,
		&telefone, &cpf,
		&cep, &logradouro, &numero, &complemento,
		&bairro, &cidade, &estado,
		&o.Subtotal, &o.Desconto, &o.Frete, &o.Total,
		&forma, &status, &rastreio, &obs,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if usuarioID.Valid {
		o.UsuarioID = &usuarioID.Int64
	}
	o.TelefoneCliente = nullableString(telefone)
	o.CPFCliente = nullableString(cpf)
	o.EnderecoCEP = nullableString(cep)
	o.EnderecoLogradouro = nullableString(logradouro)
	o.EnderecoNumero = nullableString(numero)
	o.EnderecoComplemento = nullableString(complemento)
	o.EnderecoBairro = nullableString(bairro)
	o.EnderecoCidade = nullableString(cidade)
	o.EnderecoEstado = nullableString(estado)
	o.FormaPagamento = domain.FormaPagamento(forma)
	o.Status = domain.Status(status)
	o.CodigoRastreio = nullableString(rastreio)
	o.Observacoes = nullableString(obs)

	return &o, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
