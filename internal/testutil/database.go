package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Tests are skipped when
// no MySQL is reachable, so the unit suite stays runnable anywhere.
// Override the DSN with TEST_DATABASE_DSN when the default does not fit.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/renovado_test?parseTime=true&charset=utf8mb4"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the handle.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"pedido_itens", "pedidos", "usuarios", "produtos", "categorias"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the order subsystem runs against.
// pedidos.numero carries the unique index creation relies on.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createPedidos := `
	CREATE TABLE IF NOT EXISTS pedidos (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		numero CHAR(6) NOT NULL,
		usuario_id BIGINT NULL,
		nome_cliente VARCHAR(150) NOT NULL,
		email_cliente VARCHAR(150) NOT NULL,
		telefone_cliente VARCHAR(30) NULL,
		cpf_cliente VARCHAR(20) NULL,
		endereco_cep VARCHAR(10) NULL,
		endereco_logradouro VARCHAR(255) NULL,
		endereco_numero VARCHAR(20) NULL,
		endereco_complemento VARCHAR(100) NULL,
		endereco_bairro VARCHAR(100) NULL,
		endereco_cidade VARCHAR(100) NULL,
		endereco_estado VARCHAR(2) NULL,
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		desconto DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		frete DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		total DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		forma_pagamento VARCHAR(20) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT 'pendente',
		codigo_rastreio VARCHAR(60) NULL,
		observacoes TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_numero (numero),
		INDEX idx_usuario (usuario_id),
		INDEX idx_email (email_cliente),
		INDEX idx_status (status)
	)`

	createPedidoItens := `
	CREATE TABLE IF NOT EXISTS pedido_itens (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		pedido_id INT UNSIGNED NOT NULL,
		produto_id BIGINT NULL,
		produto_nome VARCHAR(255) NOT NULL,
		produto_sku VARCHAR(100) NULL,
		produto_imagem VARCHAR(500) NULL,
		quantidade INT NOT NULL DEFAULT 1,
		preco_unitario DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		FOREIGN KEY (pedido_id) REFERENCES pedidos(id) ON DELETE CASCADE,
		INDEX idx_pedido (pedido_id)
	)`

	createUsuarios := `
	CREATE TABLE IF NOT EXISTS usuarios (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		nome VARCHAR(150) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		senha VARCHAR(100) NOT NULL,
		tipo VARCHAR(20) NOT NULL DEFAULT 'cliente',
		ativo TINYINT(1) NOT NULL DEFAULT 1
	)`

	createProdutos := `
	CREATE TABLE IF NOT EXISTS produtos (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		nome VARCHAR(255) NOT NULL,
		preco DECIMAL(10,2) NOT NULL DEFAULT 0.00
	)`

	createCategorias := `
	CREATE TABLE IF NOT EXISTS categorias (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		nome VARCHAR(100) NOT NULL
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"pedidos", createPedidos},
		{"pedido_itens", createPedidoItens},
		{"usuarios", createUsuarios},
		{"produtos", createProdutos},
		{"categorias", createCategorias},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
