package service

import (
	"context"

	"jewelkart/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines read operations over the product catalogue.
type CatalogService interface {
	// GetAll retrieves products with pagination, enriched with evaluated
	// promo pricing.
	GetAll(ctx context.Context, limit, offset int) ([]model.ProductView, error)

	// GetByID retrieves a single product by ID, enriched with evaluated
	// promo pricing.
	GetByID(ctx context.Context, id string) (*model.ProductView, error)
}

// CartService defines operations on a user's in-memory cart.
type CartService interface {
	// Get returns the user's cart with its running total.
	Get(ctx context.Context, userID string) (model.CartView, error)

	// Add puts one unit of a product size variant into the user's cart,
	// merging with an existing line for the same variant.
	Add(ctx context.Context, userID, productID, size string) (model.CartView, error)

	// Remove deletes a cart line by its key.
	Remove(ctx context.Context, userID, key string) (model.CartView, error)

	// UpdateQuantity sets a cart line's quantity.
	UpdateQuantity(ctx context.Context, userID, key string, quantity int) (model.CartView, error)

	// Clear empties the user's cart.
	Clear(ctx context.Context, userID string) (model.CartView, error)
}

// OrderService defines operations for order retrieval and admin fulfilment.
type OrderService interface {
	// GetByID retrieves an order visible to the requesting user.
	GetByID(ctx context.Context, user model.User, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves the requesting user's own orders.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders with pagination. Admin only.
	ListAll(ctx context.Context, limit, offset int) ([]model.Order, error)

	// Confirm transitions a Processing order to Completed.
	Confirm(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Decline transitions a Processing order to Cancelled.
	Decline(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
