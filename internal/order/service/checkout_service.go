package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"renovado/internal/domain"
	apperrors "renovado/internal/errors"
	"renovado/internal/order/repository"
)

// Tx is the slice of *sql.Tx the checkout needs; the indirection lets unit
// tests run without a live database.
type Tx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Commit() error
	Rollback() error
}

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
}

type dbTransactionManager struct {
	db *sql.DB
}

func NewDBTransactionManager(db *sql.DB) TransactionManager {
	return &dbTransactionManager{db: db}
}

func (m *dbTransactionManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	return m.db.BeginTx(ctx, opts)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error)
}

type NumeroGenerator interface {
	Generate(ctx context.Context) string
}

// CheckoutService persists one order header plus its line items as a single
// atomic unit. A duplicate numero that slips past the generator's pre-check
// hits the unique index, rolls the whole creation back and triggers a fresh
// numero and a new attempt.
type CheckoutService struct {
	db          TransactionManager
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	numbers     NumeroGenerator
	logger      *zap.Logger
	txTimeout   time.Duration
	maxAttempts int
}

func NewCheckoutService(
	db TransactionManager,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	numbers NumeroGenerator,
	logger *zap.Logger,
	txTimeout time.Duration,
	maxAttempts int,
) *CheckoutService {
	if txTimeout <= 0 {
		txTimeout = 5 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &CheckoutService{
		db:          db,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		numbers:     numbers,
		logger:      logger,
		txTimeout:   txTimeout,
		maxAttempts: maxAttempts,
	}
}

// PlaceOrder assigns a numero to the order, writes it and its items in one
// transaction and returns the storage id. On any failure the transaction is
// rolled back so no partial order is ever visible to readers.
func (s *CheckoutService) PlaceOrder(ctx context.Context, o *domain.Order) (uint, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		o.Numero = s.numbers.Generate(ctx)

		id, err := s.createOnce(ctx, o)
		if err == nil {
			s.logger.Info("order created",
				zap.Uint("id", id),
				zap.String("numero", o.Numero),
				zap.Int("items", len(o.Itens)))
			return id, nil
		}

		if isDuplicateKey(err) {
			s.logger.Warn("order number collided on insert, regenerating",
				zap.String("numero", o.Numero),
				zap.Int("attempt", attempt))
			continue
		}

		s.logger.Error("order creation failed",
			zap.String("numero", o.Numero),
			zap.String("email", o.EmailCliente),
			zap.Error(err))
		return 0, err
	}

	s.logger.Error("order number space exhausted",
		zap.Int("attempts", s.maxAttempts),
		zap.String("email", o.EmailCliente))
	return 0, apperrors.NewConflictError("could not allocate a unique order number")
}

func (s *CheckoutService) createOnce(ctx context.Context, o *domain.Order) (uint, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		return 0, err
	}
	// Rollback after a successful commit is a no-op for MySQL.
	defer tx.Rollback()

	id, err := s.orderRepo.Insert(txCtx, tx, o)
	if err != nil {
		return 0, err
	}

	for _, item := range o.Itens {
		item.PedidoID = id
		if _, err := s.itemRepo.Insert(txCtx, tx, item); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return id, nil
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
