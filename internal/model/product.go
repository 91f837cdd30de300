package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a jewellery catalogue item. Products are owned by the
// admin catalogue; the cart and checkout paths never mutate anything on a
// product except per-size stock quantities, and only through the checkout
// commit.
type Product struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Category    string        `json:"category" db:"category"`
	SubCategory string        `json:"subCategory" db:"sub_category"`
	Metals      string        `json:"metals,omitempty" db:"metals"`
	Highlights  string        `json:"highlights,omitempty" db:"highlights"`
	Images      []string      `json:"images" db:"images"`
	PromoStart  *time.Time    `json:"promoStart,omitempty" db:"promo_start"`
	PromoEnd    *time.Time    `json:"promoEnd,omitempty" db:"promo_end"`
	Sizes       []SizeVariant `json:"sizes"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// SizeVariant is a purchasable configuration of a product. Size labels are
// unique within a product, not globally. Quantity is the authoritative stock
// count and never goes below zero.
type SizeVariant struct {
	Size     string          `json:"size" db:"size"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Discount decimal.Decimal `json:"discount" db:"discount"` // percent, 0-100
	Quantity int             `json:"quantity" db:"quantity"`
}

// ProductView is a product enriched with evaluated promo pricing for display.
type ProductView struct {
	Product
	PromoActive bool              `json:"promoActive"`
	Sizes       []SizeVariantView `json:"sizes"`
}

// SizeVariantView carries the price a customer actually pays right now.
type SizeVariantView struct {
	SizeVariant
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
}
