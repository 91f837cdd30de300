package service

import (
	"context"
	"fmt"
	"time"

	"jewelkart/internal/cart"
	"jewelkart/internal/model"
	"jewelkart/internal/pricing"
	"jewelkart/internal/repository"
	"jewelkart/internal/stock"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService on top of the in-memory cart store.
type cartService struct {
	carts       *cart.Store
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(carts *cart.Store, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		carts:       carts,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
		now:         time.Now,
	}
}

// Get returns the user's cart with its running total.
func (s *cartService) Get(ctx context.Context, userID string) (model.CartView, error) {
	return s.carts.Get(userID).View(), nil
}

// Add puts one unit of a product size variant into the user's cart. The line
// captures the variant's price, and its discount only if the product's promo
// window is active right now; a line added outside the window stays at full
// price even if the promo later starts. Merging with an existing line keeps
// whatever was captured first.
func (s *cartService) Add(ctx context.Context, userID, productID, size string) (model.CartView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product for cart add")
		return model.CartView{}, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.CartView{}, model.ErrProductNotFound
	}

	variant, ok := findVariant(product, size)
	if !ok {
		s.logger.Debug().
			Str("product_id", productID).
			Str("size", size).
			Msg("size not found for product")
		return model.CartView{}, model.ErrSizeNotFound
	}

	if !pricing.PromoActive(product.PromoStart, product.PromoEnd, s.now()) {
		variant.Discount = decimal.Zero
	}

	var view model.CartView
	s.carts.Update(userID, func(c *cart.Cart) {
		c.Add(*product, variant)
		view = c.View()
	})

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", productID).
		Str("size", variant.Size).
		Msg("added to cart")

	return view, nil
}

// Remove deletes a cart line by its key. Removing an absent key is a no-op.
func (s *cartService) Remove(ctx context.Context, userID, key string) (model.CartView, error) {
	var view model.CartView
	s.carts.Update(userID, func(c *cart.Cart) {
		c.Remove(key)
		view = c.View()
	})
	return view, nil
}

// UpdateQuantity sets a cart line's quantity. Quantities below one are
// rejected; lines are removed explicitly, never by zeroing the quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, key string, quantity int) (model.CartView, error) {
	if quantity < 1 {
		return model.CartView{}, model.ErrInvalidQuantity
	}

	var view model.CartView
	s.carts.Update(userID, func(c *cart.Cart) {
		c.UpdateQuantity(key, quantity)
		view = c.View()
	})
	return view, nil
}

// Clear empties the user's cart.
func (s *cartService) Clear(ctx context.Context, userID string) (model.CartView, error) {
	var view model.CartView
	s.carts.Update(userID, func(c *cart.Cart) {
		c.Clear()
		view = c.View()
	})
	return view, nil
}

// findVariant matches a size label against the product's variants the same
// way stock lookups do, so a label that passes here cannot miss at checkout
// on casing or stray whitespace alone. The returned variant keeps its stored
// label.
func findVariant(product *model.Product, size string) (model.SizeVariant, bool) {
	want := stock.NormalizeSize(size)
	for _, v := range product.Sizes {
		if stock.NormalizeSize(v.Size) == want {
			return v, true
		}
	}
	return model.SizeVariant{}, false
}
