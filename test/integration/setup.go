package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
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
		CREATE TABLE IF NOT EXISTS products (
			id           VARCHAR(64) PRIMARY KEY,
			name         VARCHAR(255) NOT NULL,
			category     VARCHAR(100) NOT NULL,
			sub_category VARCHAR(100),
			metals       TEXT,
			highlights   TEXT,
			images       TEXT[] NOT NULL DEFAULT '{}',
			promo_start  DATE,
			promo_end    DATE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS product_sizes (
			product_id VARCHAR(64) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			size       VARCHAR(50) NOT NULL,
			price      NUMERIC(12,2) NOT NULL,
			discount   NUMERIC(5,2) NOT NULL DEFAULT 0,
			quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			PRIMARY KEY (product_id, size)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id         UUID PRIMARY KEY,
			user_id    VARCHAR(128) NOT NULL,
			email      VARCHAR(255) NOT NULL DEFAULT '',
			total      NUMERIC(12,2) NOT NULL,
			status     VARCHAR(20) NOT NULL,
			address    JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id           UUID PRIMARY KEY,
			order_id     UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id   VARCHAR(64) NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			size         VARCHAR(50) NOT NULL,
			unit_price   NUMERIC(12,2) NOT NULL,
			discount     NUMERIC(5,2) NOT NULL DEFAULT 0,
			quantity     INTEGER NOT NULL,
			image        TEXT
		);

		CREATE TABLE IF NOT EXISTS users (
			id    VARCHAR(128) PRIMARY KEY,
			email VARCHAR(255) NOT NULL DEFAULT '',
			role  VARCHAR(20) NOT NULL DEFAULT 'user'
		);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalogue inserts a small catalogue used across the integration tests.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	seed := `
		INSERT INTO products (id, name, category, sub_category, metals, images, promo_start, promo_end) VALUES
		('RNG-001', 'Halo Diamond Ring', 'Rings', 'Engagement', '18k White Gold',
		 '{"https://cdn.example.com/rng-001-a.jpg"}',
		 CURRENT_DATE - INTERVAL '7 days', CURRENT_DATE + INTERVAL '14 days'),
		('RNG-002', 'Classic Gold Band', 'Rings', 'Wedding', '14k Yellow Gold',
		 '{"https://cdn.example.com/rng-002-a.jpg"}', NULL, NULL);

		INSERT INTO product_sizes (product_id, size, price, discount, quantity) VALUES
		('RNG-001', '50 MM', 100.00, 20, 3),
		('RNG-001', '52 MM', 110.00, 20, 1),
		('RNG-002', '50 MM', 499.00, 0, 12);

		INSERT INTO users (id, email, role) VALUES
		('admin-1', 'admin@jewelkart.example', 'admin'),
		('user-1', 'customer@jewelkart.example', 'user');
	`

	if _, err := pool.Exec(ctx, seed); err != nil {
		t.Fatalf("failed to seed catalogue: %v", err)
	}
}
