package repository

import (
	"context"
	"database/sql"
	"fmt"

	"renovado/internal/domain"
	"renovado/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) FindAdminByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, nome, email, senha, tipo
		FROM usuarios
		WHERE email = ? AND tipo = 'admin' AND ativo = 1
	`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Tipo,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("admin user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by email: %w", err)
	}

	u.Ativo = true
	return &u, nil
}

func (r *MySQLUserRepository) FindActiveAdminByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, nome, email, tipo
		FROM usuarios
		WHERE id = ? AND tipo = 'admin' AND ativo = 1
	`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Nome, &u.Email, &u.Tipo)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("admin user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by id: %w", err)
	}

	u.Ativo = true
	return &u, nil
}
