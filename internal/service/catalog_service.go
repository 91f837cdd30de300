package service

import (
	"context"
	"fmt"
	"time"

	"jewelkart/internal/model"
	"jewelkart/internal/pricing"
	"jewelkart/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
		now:         time.Now,
	}
}

// GetAll retrieves products with pagination, enriched with evaluated promo
// pricing.
func (s *catalogService) GetAll(ctx context.Context, limit, offset int) ([]model.ProductView, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	today := s.now()
	views := make([]model.ProductView, len(products))
	for i := range products {
		views[i] = buildView(&products[i], today)
	}

	s.logger.Debug().
		Int("count", len(views)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return views, nil
}

// GetByID retrieves a single product by ID, enriched with evaluated promo
// pricing.
func (s *catalogService) GetByID(ctx context.Context, id string) (*model.ProductView, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	view := buildView(product, s.now())
	return &view, nil
}

// buildView evaluates the product's promo window against today and attaches
// the effective price per size. The promo state is evaluated once per product;
// all sizes share the window.
func buildView(product *model.Product, today time.Time) model.ProductView {
	active := pricing.PromoActive(product.PromoStart, product.PromoEnd, today)

	sizes := make([]model.SizeVariantView, len(product.Sizes))
	for i, variant := range product.Sizes {
		sizes[i] = model.SizeVariantView{
			SizeVariant:    variant,
			EffectivePrice: pricing.EffectivePrice(variant.Price, variant.Discount, active),
		}
	}

	return model.ProductView{
		Product:     *product,
		PromoActive: active,
		Sizes:       sizes,
	}
}
