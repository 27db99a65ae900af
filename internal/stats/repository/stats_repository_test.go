package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"renovado/internal/domain"
	"renovado/internal/testutil"
)

func TestSumRevenue_ExcludesPendingAndCanceled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	seed := []struct {
		numero string
		status string
		total  string
	}{
		{"REV001", "pago", "100.00"},
		{"REV002", "enviado", "250.50"},
		{"REV003", "entregue", "49.50"},
		{"REV004", "pendente", "999.00"},
		{"REV005", "cancelado", "500.00"},
	}
	for _, s := range seed {
		_, err := db.Exec(
			`INSERT INTO pedidos (numero, nome_cliente, email_cliente, total, forma_pagamento, status)
			 VALUES (?, 'Maria Silva', 'maria@example.com', ?, 'pix', ?)`,
			s.numero, s.total, s.status,
		)
		if err != nil {
			t.Fatalf("seeding order %s: %v", s.numero, err)
		}
	}

	repo := NewMySQLStatsRepository(db)

	sum, err := repo.SumRevenue(context.Background(), domain.RevenueStatuses())
	if err != nil {
		t.Fatalf("SumRevenue failed: %v", err)
	}

	want := decimal.RequireFromString("400.00")
	if !sum.Equal(want) {
		t.Errorf("revenue = %s, want %s (pendente and cancelado excluded)", sum, want)
	}
}

func TestSumRevenue_EmptyStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLStatsRepository(db)

	sum, err := repo.SumRevenue(context.Background(), nil)
	if err != nil {
		t.Fatalf("SumRevenue failed: %v", err)
	}
	if !sum.IsZero() {
		t.Errorf("revenue = %s, want 0 when no statuses are given", sum)
	}
}

func TestCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	if _, err := db.Exec(
		`INSERT INTO pedidos (numero, nome_cliente, email_cliente, total, forma_pagamento, status)
		 VALUES ('CNT001', 'Maria Silva', 'maria@example.com', 100.00, 'pix', 'pago')`,
	); err != nil {
		t.Fatalf("seeding order: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO produtos (nome, preco) VALUES ('iPhone 12', 2500.00), ('Galaxy S21', 1800.00)`); err != nil {
		t.Fatalf("seeding produtos: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO categorias (nome) VALUES ('Smartphones')`); err != nil {
		t.Fatalf("seeding categorias: %v", err)
	}

	repo := NewMySQLStatsRepository(db)
	ctx := context.Background()

	orders, err := repo.CountOrders(ctx)
	if err != nil {
		t.Fatalf("CountOrders failed: %v", err)
	}
	if orders != 1 {
		t.Errorf("orders = %d, want 1", orders)
	}

	products, err := repo.CountProducts(ctx)
	if err != nil {
		t.Fatalf("CountProducts failed: %v", err)
	}
	if products != 2 {
		t.Errorf("products = %d, want 2", products)
	}

	categories, err := repo.CountCategories(ctx)
	if err != nil {
		t.Fatalf("CountCategories failed: %v", err)
	}
	if categories != 1 {
		t.Errorf("categories = %d, want 1", categories)
	}
}
