package model

import "github.com/shopspring/decimal"

// CartLine is one row in a user's in-progress cart, keyed by product and
// size. UnitPrice and DiscountPercent are captured when the line is first
// added and are not refreshed on later merges.
type CartLine struct {
	Key             string          `json:"key"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Image           string          `json:"image,omitempty"`
	Size            string          `json:"size"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Quantity        int             `json:"quantity"`
}

// CartView is the cart payload returned to clients.
type CartView struct {
	Lines []CartLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
