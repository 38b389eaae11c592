package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			roles TEXT[] NOT NULL DEFAULT '{client}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS clients (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			full_name VARCHAR(255) NOT NULL,
			contact VARCHAR(100) NOT NULL,
			address TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			added_by BIGINT REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
			quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			images TEXT[] NOT NULL DEFAULT '{}',
			category_id BIGINT NOT NULL REFERENCES categories(id),
			added_by BIGINT REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			client_id BIGINT NOT NULL REFERENCES clients(id),
			status VARCHAR(50) NOT NULL DEFAULT 'RECEIVED',
			order_date TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			total DECIMAL(10, 2) NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10, 2) NOT NULL,
			subtotal DECIMAL(10, 2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sales_reports (
			id BIGSERIAL PRIMARY KEY,
			period TIMESTAMPTZ NOT NULL,
			total_sales DECIMAL(12, 2) NOT NULL,
			products_sold INTEGER NOT NULL,
			file_path TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_clients_user_id ON clients(user_id);
		CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id);
		CREATE INDEX IF NOT EXISTS idx_orders_client_id ON orders(client_id);
		CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders(status, order_date);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items(product_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, name, email string, roles []string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO users (name, email, password_hash, roles) VALUES ($1, $2, $3, $4) RETURNING id",
		name, email, "$2a$10$test-hash", roles,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}

// SeedClient inserts a client profile for a user and returns its id.
func SeedClient(t *testing.T, pool *pgxpool.Pool, userID int64, fullName string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO clients (user_id, full_name, contact, address) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, fullName, "+1-555-0100", "1 Test Street",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed client %s: %v", fullName, err)
	}
	return id
}

// SeedCategory inserts a category and returns its id.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, title string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO categories (title, description) VALUES ($1, $2) RETURNING id",
		title, title+" description",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", title, err)
	}
	return id
}

// SeedProduct inserts a product and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, price decimal.Decimal, quantity int, categoryID int64) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO products (name, price, quantity, category_id) VALUES ($1, $2, $3, $4) RETURNING id",
		name, price, quantity, categoryID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// ProductQuantity reads a product's current stock.
func ProductQuantity(t *testing.T, pool *pgxpool.Pool, productID int64) int {
	t.Helper()

	var quantity int
	err := pool.QueryRow(context.Background(),
		"SELECT quantity FROM products WHERE id = $1", productID,
	).Scan(&quantity)
	if err != nil {
		t.Fatalf("failed to read product quantity: %v", err)
	}
	return quantity
}

// CountRows counts the rows in a table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var count int
	err := pool.QueryRow(context.Background(),
		fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return count
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"sales_reports", "order_items", "orders", "products", "categories", "clients", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
