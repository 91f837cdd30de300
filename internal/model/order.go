package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order. Processing is the only
// non-terminal status; Completed and Cancelled are terminal.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Order is a customer order created at successful checkout. Items and address
// are snapshots taken at checkout time and immutable thereafter.
type Order struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    string          `json:"userId" db:"user_id"`
	Email     string          `json:"email" db:"email"`
	Items     []OrderLine     `json:"items"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    OrderStatus     `json:"status" db:"status"`
	Address   Address         `json:"address" db:"address"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderLine is a snapshot copy of a cart line at checkout time.
type OrderLine struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Size        string          `json:"size" db:"size"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Image       string          `json:"image,omitempty" db:"image"`
}

// Address is a shipping address snapshot.
type Address struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Suburb     string `json:"suburb"`
	Town       string `json:"town"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
