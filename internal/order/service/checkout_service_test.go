package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"renovado/internal/domain"
	apperrors "renovado/internal/errors"
	"renovado/internal/order/repository"
)

// fakeTx satisfies Tx without a live database; the repos are mocked so the
// statement methods are never reached.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, errors.New("unexpected ExecContext on fakeTx")
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errors.New("unexpected QueryContext on fakeTx")
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

type mockTxManager struct {
	mu  sync.Mutex
	txs []*fakeTx
}

func (m *mockTxManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	tx := &fakeTx{}
	m.mu.Lock()
	m.txs = append(m.txs, tx)
	m.mu.Unlock()
	return tx, nil
}

type mockOrderRepo struct {
	InsertFunc func(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error)
}

func (m *mockOrderRepo) Insert(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error) {
	return m.InsertFunc(ctx, tx, o)
}

type mockItemRepo struct {
	InsertFunc func(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error)
}

func (m *mockItemRepo) Insert(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error) {
	return m.InsertFunc(ctx, tx, item)
}

type sequenceGenerator struct {
	n int
}

func (g *sequenceGenerator) Generate(ctx context.Context) string {
	g.n++
	return fmt.Sprintf("NUM%03d", g.n)
}

func duplicateKeyErr() error {
	return fmt.Errorf("inserting order: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
}

func newTestCheckout(txMgr TransactionManager, orders OrderRepository, items OrderItemRepository, gen NumeroGenerator) *CheckoutService {
	return NewCheckoutService(txMgr, orders, items, gen, zap.NewNop(), 5*time.Second, 3)
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		NomeCliente:    "Maria Silva",
		EmailCliente:   "maria@example.com",
		Total:          decimal.RequireFromString("2500.00"),
		Subtotal:       decimal.RequireFromString("2500.00"),
		FormaPagamento: domain.PagamentoPix,
		Status:         domain.StatusPendente,
		Itens: []domain.OrderItem{
			{
				ProdutoNome:   "iPhone 12",
				Quantidade:    1,
				PrecoUnitario: decimal.RequireFromString("2500.00"),
				Subtotal:      decimal.RequireFromString("2500.00"),
			},
		},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	txMgr := &mockTxManager{}

	var insertedItems []domain.OrderItem
	orders := &mockOrderRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error) {
			return 11, nil
		},
	}
	items := &mockItemRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error) {
			insertedItems = append(insertedItems, item)
			return uint(len(insertedItems)), nil
		},
	}

	svc := newTestCheckout(txMgr, orders, items, &sequenceGenerator{})
	order := sampleOrder()

	id, err := svc.PlaceOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if id != 11 {
		t.Errorf("id = %d, want 11", id)
	}
	if order.Numero != "NUM001" {
		t.Errorf("numero = %q, want NUM001", order.Numero)
	}
	if len(insertedItems) != 1 {
		t.Fatalf("items inserted = %d, want 1", len(insertedItems))
	}
	if insertedItems[0].PedidoID != 11 {
		t.Errorf("item PedidoID = %d, want the new order id", insertedItems[0].PedidoID)
	}
	if len(txMgr.txs) != 1 || !txMgr.txs[0].committed {
		t.Error("expected exactly one committed transaction")
	}
}

func TestPlaceOrder_RegeneratesNumeroOnDuplicateKey(t *testing.T) {
	txMgr := &mockTxManager{}

	attempts := 0
	orders := &mockOrderRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error) {
			attempts++
			if attempts == 1 {
				return 0, duplicateKeyErr()
			}
			return 12, nil
		},
	}
	items := &mockItemRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error) {
			return 1, nil
		},
	}

	svc := newTestCheckout(txMgr, orders, items, &sequenceGenerator{})
	order := sampleOrder()

	id, err := svc.PlaceOrder(context.Background(), order)
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if id != 12 {
		t.Errorf("id = %d, want 12", id)
	}
	if order.Numero != "NUM002" {
		t.Errorf("numero = %q, want a fresh code after the collision", order.Numero)
	}
	if !txMgr.txs[0].rolledBack {
		t.Error("first transaction must roll back after the duplicate key")
	}
	if !txMgr.txs[1].committed {
		t.Error("second transaction must commit")
	}
}

func TestPlaceOrder_ConflictAfterExhaustedRetries(t *testing.T) {
	txMgr := &mockTxManager{}

	orders := &mockOrderRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error) {
			return 0, duplicateKeyErr()
		},
	}
	items := &mockItemRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error) {
			return 1, nil
		},
	}

	svc := newTestCheckout(txMgr, orders, items, &sequenceGenerator{})

	_, err := svc.PlaceOrder(context.Background(), sampleOrder())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if _, ok := apperrors.IsConflictError(err); !ok {
		t.Errorf("expected ConflictError, got %T", err)
	}
	if len(txMgr.txs) != 3 {
		t.Errorf("attempts = %d, want 3", len(txMgr.txs))
	}
}

// collidingGenerator hands the same code to its first callers so concurrent
// creations race for one numero, then switches to unique codes.
type collidingGenerator struct {
	mu         sync.Mutex
	calls      int
	collisions int
}

func (g *collidingGenerator) Generate(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.calls <= g.collisions {
		return "SAME01"
	}
	return fmt.Sprintf("UNIQ%02d", g.calls)
}

// numeroIndex mimics the unique index: the first insert of a numero wins,
// the second gets a 1062.
type numeroIndex struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]string
}

func (ix *numeroIndex) insert(numero string) (uint, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, existing := range ix.byID {
		if existing == numero {
			return 0, duplicateKeyErr()
		}
	}
	ix.nextID++
	ix.byID[ix.nextID] = numero
	return ix.nextID, nil
}

func TestPlaceOrder_ConcurrentCreationsGetDistinctNumeros(t *testing.T) {
	index := &numeroIndex{byID: make(map[uint]string)}

	var itemsMu sync.Mutex
	itemsByOrder := make(map[uint][]string)

	orders := &mockOrderRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error) {
			return index.insert(o.Numero)
		},
	}
	items := &mockItemRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error) {
			itemsMu.Lock()
			itemsByOrder[item.PedidoID] = append(itemsByOrder[item.PedidoID], item.ProdutoNome)
			itemsMu.Unlock()
			return 1, nil
		},
	}

	svc := newTestCheckout(&mockTxManager{}, orders, items, &collidingGenerator{collisions: 2})

	first := sampleOrder()
	first.Itens[0].ProdutoNome = "iPhone 12"
	second := sampleOrder()
	second.Itens = []domain.OrderItem{
		{ProdutoNome: "Galaxy S21", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("1800.00")},
		{ProdutoNome: "Capa transparente", Quantidade: 1, PrecoUnitario: decimal.RequireFromString("49.90")},
	}

	var wg sync.WaitGroup
	ids := make([]uint, 2)
	errs := make([]error, 2)
	for i, o := range []*domain.Order{first, second} {
		wg.Add(1)
		go func(i int, o *domain.Order) {
			defer wg.Done()
			ids[i], errs[i] = svc.PlaceOrder(context.Background(), o)
		}(i, o)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("PlaceOrder %d failed: %v", i, err)
		}
	}
	if ids[0] == ids[1] {
		t.Fatalf("both creations got id %d", ids[0])
	}
	if first.Numero == second.Numero {
		t.Errorf("both orders ended up with numero %q", first.Numero)
	}
	if index.byID[ids[0]] != first.Numero || index.byID[ids[1]] != second.Numero {
		t.Error("stored numeros do not match the orders' final numeros")
	}

	if got := itemsByOrder[ids[0]]; len(got) != 1 || got[0] != "iPhone 12" {
		t.Errorf("first order items = %v, want [iPhone 12]", got)
	}
	gotSecond := itemsByOrder[ids[1]]
	if len(gotSecond) != 2 || gotSecond[0] != "Galaxy S21" || gotSecond[1] != "Capa transparente" {
		t.Errorf("second order items = %v, want both of its line items", gotSecond)
	}
}

func TestPlaceOrder_ItemFailureRollsBack(t *testing.T) {
	txMgr := &mockTxManager{}

	orders := &mockOrderRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, o *domain.Order) (uint, error) {
			return 13, nil
		},
	}
	items := &mockItemRepo{
		InsertFunc: func(ctx context.Context, tx repository.DBTX, item domain.OrderItem) (uint, error) {
			return 0, errors.New("column cannot be null")
		},
	}

	svc := newTestCheckout(txMgr, orders, items, &sequenceGenerator{})

	_, err := svc.PlaceOrder(context.Background(), sampleOrder())
	if err == nil {
		t.Fatal("expected error when an item insert fails")
	}

	if len(txMgr.txs) != 1 {
		t.Fatalf("transactions = %d, want 1 (no retry on non-duplicate errors)", len(txMgr.txs))
	}
	if txMgr.txs[0].committed {
		t.Error("transaction must not commit after an item failure")
	}
	if !txMgr.txs[0].rolledBack {
		t.Error("transaction must roll back after an item failure")
	}
}
