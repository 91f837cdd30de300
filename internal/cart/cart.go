// Package cart holds in-progress customer carts in memory. Nothing here is
// persisted; a cart only leaves memory as order-line snapshots at checkout.
package cart

import (
	"fmt"
	"sync"

	"jewelkart/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineKey builds the composite identity of a cart line.
func LineKey(productID, size string) string {
	return fmt.Sprintf("%s-%s", productID, size)
}

// Cart is an insertion-ordered collection of cart lines, at most one per
// (product, size). Cart is safe for concurrent use: the same user's cart can
// be read by one request while another mutates it, so every method takes the
// cart's own lock. Compound read-modify-write sequences still go through
// Store.Update.
type Cart struct {
	mu    sync.RWMutex
	lines []model.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges a size variant of a product into the cart. An existing line for
// the same (product, size) gains quantity 1 and keeps the price and discount
// captured when it was first added; otherwise a new line is appended with
// quantity 1.
func (c *Cart) Add(product model.Product, variant model.SizeVariant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := LineKey(product.ID, variant.Size)

	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity++
			return
		}
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	c.lines = append(c.lines, model.CartLine{
		Key:             key,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Image:           image,
		Size:            variant.Size,
		UnitPrice:       variant.Price,
		DiscountPercent: variant.Discount,
		Quantity:        1,
	})
}

// Remove deletes the line with the given key. Removing an absent key is a
// no-op.
func (c *Cart) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity, flooring at 1. Lines are deleted via
// Remove, never by driving quantity to zero. Updating an absent key is a
// no-op.
func (c *Cart) UpdateQuantity(key string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Used after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Lines returns a copy of the cart lines in display order.
func (c *Cart) Lines() []model.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyLines()
}

// Total sums unitPrice * (1 - discount/100) * quantity over all lines.
// Rounding happens once on the final sum, not per line, so per-line rounding
// error cannot compound.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total()
}

// View returns the cart as a response payload. The lines and total come from
// the same locked read, so the total always matches the lines shown.
func (c *Cart) View() model.CartView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.CartView{
		Lines: c.copyLines(),
		Total: c.total(),
	}
}

// copyLines expects the caller to hold the lock.
func (c *Cart) copyLines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// total expects the caller to hold the lock.
func (c *Cart) total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		discounted := line.UnitPrice.Sub(line.UnitPrice.Mul(line.DiscountPercent).Div(hundred))
		total = total.Add(discounted.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2)
}
