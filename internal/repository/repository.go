package repository

import (
	"context"

	"jewelkart/internal/model"
	"jewelkart/internal/stock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue and inventory data
// access.
type ProductRepository interface {
	// GetAll retrieves products with their size variants, paginated.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product with its size variants, or nil when
	// absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// InventorySnapshot fetches current per-size quantities for the given
	// products. Variants missing from the result are out of catalogue.
	InventorySnapshot(ctx context.Context, productIDs []string) (stock.Snapshot, error)

	// DecrementStock atomically subtracts quantity from a size variant within
	// the provided transaction, but only when enough stock remains. Returns
	// false when the conditional update matched no row (insufficient stock or
	// vanished variant); the caller decides whether that aborts the
	// transaction.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID, size string, quantity int) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order's line snapshots within the provided
	// transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	// GetByID retrieves an order with its lines, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first, without lines.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders, newest first, without lines.
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// TransitionStatus moves an order from one status to another. Returns
	// false when the order was not in the expected status (or does not
	// exist); the guard lives in SQL so concurrent admins cannot both win.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error)
}

// UserRepository defines the interface for user identity lookups.
type UserRepository interface {
	// GetByID retrieves a user record, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.User, error)
}
