package repository

import (
	"context"
	"fmt"

	"jewelkart/internal/model"
	"jewelkart/internal/stock"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using
// PostgreSQL. Size variants live in product_sizes, one row per
// (product, size), which is the single authoritative inventory
// representation.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves products with their size variants, paginated.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT id, name, category, sub_category, metals, highlights, images,
		       promo_start, promo_end, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.attachSizes(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product with its size variants.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, category, sub_category, metals, highlights, images,
		       promo_start, promo_end, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query product: %w", err)
		}
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, nil
	}

	p, err := scanProduct(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to scan product row")
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	rows.Close()

	products := []model.Product{p}
	if err := r.attachSizes(ctx, products); err != nil {
		return nil, err
	}

	return &products[0], nil
}

// InventorySnapshot fetches current per-size quantities for the given
// products.
func (r *productRepository) InventorySnapshot(ctx context.Context, productIDs []string) (stock.Snapshot, error) {
	snapshot := stock.Snapshot{}
	if len(productIDs) == 0 {
		return snapshot, nil
	}

	query := `
		SELECT product_id, size, quantity
		FROM product_sizes
		WHERE product_id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, productIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(productIDs)).Msg("failed to query inventory snapshot")
		return nil, fmt.Errorf("failed to query inventory snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, size string
		var quantity int
		if err := rows.Scan(&productID, &size, &quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan inventory row")
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		snapshot[stock.NewKey(productID, size)] = quantity
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating inventory rows")
		return nil, fmt.Errorf("error iterating inventory rows: %w", err)
	}

	return snapshot, nil
}

// DecrementStock atomically subtracts quantity from a size variant. The
// WHERE clause is the commit-time stock re-check: when another checkout got
// there first, the update matches nothing and the caller's transaction rolls
// back instead of overselling.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID, size string, quantity int) (bool, error) {
	query := `
		UPDATE product_sizes
		SET quantity = quantity - $3
		WHERE product_id = $1
		  AND lower(btrim(size)) = lower(btrim($2))
		  AND quantity >= $3
	`

	tag, err := tx.Exec(ctx, query, productID, size, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", productID).
			Str("size", size).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("product_id", productID).
			Str("size", size).
			Int("quantity", quantity).
			Msg("stock decrement matched no row")
		return false, nil
	}

	return true, nil
}

// attachSizes loads size variants for the given products in one query.
func (r *productRepository) attachSizes(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]*model.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = &products[i]
	}

	query := `
		SELECT product_id, size, price, discount, quantity
		FROM product_sizes
		WHERE product_id = ANY($1)
		ORDER BY product_id, size
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query size variants")
		return fmt.Errorf("failed to query size variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var v model.SizeVariant
		if err := rows.Scan(&productID, &v.Size, &v.Price, &v.Discount, &v.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan size variant row")
			return fmt.Errorf("failed to scan size variant: %w", err)
		}
		if p, ok := index[productID]; ok {
			p.Sizes = append(p.Sizes, v)
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating size variant rows")
		return fmt.Errorf("error iterating size variants: %w", err)
	}

	return nil
}

// scanProduct reads one product row. Defensive defaulting for nullable
// display columns happens here so the rest of the system sees fully-formed
// records.
func scanProduct(rows pgx.Rows) (model.Product, error) {
	var p model.Product
	var subCategory, metals, highlights *string

	err := rows.Scan(&p.ID, &p.Name, &p.Category, &subCategory, &metals, &highlights,
		&p.Images, &p.PromoStart, &p.PromoEnd, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Product{}, err
	}

	if subCategory != nil {
		p.SubCategory = *subCategory
	}
	if metals != nil {
		p.Metals = *metals
	}
	if highlights != nil {
		p.Highlights = *highlights
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	return p, nil
}
