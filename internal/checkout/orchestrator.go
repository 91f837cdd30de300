// Package checkout sequences the one flow in the system with real
// invariants: re-validate stock, authorize payment, then commit inventory
// decrements and the order record together. The ordering is load-bearing:
// payment is never attempted against unvalidated stock, and inventory is
// never touched before payment succeeds.
package checkout

import (
	"context"
	"fmt"
	"time"

	"jewelkart/internal/cart"
	"jewelkart/internal/model"
	"jewelkart/internal/payment"
	"jewelkart/internal/reconcile"
	"jewelkart/internal/repository"
	"jewelkart/internal/stock"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Request carries everything a checkout attempt needs beyond the cart
// itself.
type Request struct {
	User       model.User
	Address    model.Address
	Instrument payment.Instrument
}

// Orchestrator runs checkout attempts. Each attempt is strictly sequential;
// suspension happens only at the I/O boundaries (snapshot fetch, payment
// call, commit transaction).
type Orchestrator struct {
	products   repository.ProductRepository
	orders     repository.OrderRepository
	authorizer payment.Authorizer
	journal    reconcile.Journal
	logger     zerolog.Logger
}

// New creates a checkout orchestrator.
func New(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	authorizer payment.Authorizer,
	journal reconcile.Journal,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		products:   products,
		orders:     orders,
		authorizer: authorizer,
		journal:    journal,
		logger:     logger.With().Str("component", "checkout").Logger(),
	}
}

// Checkout runs one attempt against the user's cart. On success the cart is
// cleared and the created order returned. Failures are typed by stage:
// *ValidationError and *PaymentError left no external state behind;
// *CommitError means payment was captured and the attempt has been journaled
// for manual reconciliation.
func (o *Orchestrator) Checkout(ctx context.Context, userCart *cart.Cart, req Request) (*model.Order, error) {
	lines := userCart.Lines()
	if len(lines) == 0 {
		return nil, model.ErrCartEmpty
	}

	logger := o.logger.With().
		Str("user_id", req.User.ID).
		Int("line_count", len(lines)).
		Logger()

	// Validating: fresh snapshot, never a cached or pushed one.
	logger.Debug().Str("stage", StageValidating.String()).Msg("validating stock")

	snapshot, err := o.products.InventorySnapshot(ctx, productIDs(lines))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory snapshot: %w", err)
	}

	if result := stock.Validate(lines, snapshot); !result.OK() {
		logger.Warn().
			Str("stage", StageRejected.String()).
			Int("violations", len(result.Violations)).
			Msg("checkout rejected on stock validation")
		return nil, &ValidationError{Violations: result.Violations}
	}

	// Authorizing: the total is computed from captured cart prices, the same
	// figure shown to the customer.
	total := userCart.Total()

	logger.Debug().
		Str("stage", StageAuthorizing.String()).
		Str("total", total.StringFixed(2)).
		Msg("authorizing payment")

	if err := o.authorizer.Authorize(ctx, req.Instrument, total); err != nil {
		logger.Warn().
			Str("stage", StagePaymentFailed.String()).
			Err(err).
			Msg("payment authorization failed")
		return nil, &PaymentError{Err: err}
	}

	// Committing: decrements and the order record succeed or fail together.
	// Past this point failure means captured money without a recorded order,
	// so every exit path below either commits or journals.
	orderID := uuid.New()
	logger = logger.With().Str("order_id", orderID.String()).Logger()
	logger.Debug().Str("stage", StageCommitting.String()).Msg("committing checkout")

	order, err := o.commit(ctx, orderID, lines, total, req)
	if err != nil {
		logger.Error().
			Str("stage", StageCommitFailed.String()).
			Err(err).
			Msg("checkout commit failed after payment capture")

		o.journalFailure(ctx, orderID, lines, total, req, err)
		return nil, &CommitError{OrderID: orderID, Err: err}
	}

	userCart.Clear()

	logger.Info().
		Str("stage", StageCompleted.String()).
		Str("total", total.StringFixed(2)).
		Msg("checkout completed")

	return order, nil
}

// commit runs the decrement-and-record transaction.
func (o *Orchestrator) commit(
	ctx context.Context,
	orderID uuid.UUID,
	lines []model.CartLine,
	total decimal.Decimal,
	req Request,
) (*model.Order, error) {
	tx, err := o.orders.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin commit transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				o.logger.Error().Err(rbErr).Msg("failed to rollback commit transaction")
			}
		}
	}()

	// Conditional decrements are the commit-time stock re-check: a snapshot
	// validated moments ago can still lose a race against another checkout,
	// and the WHERE quantity >= n guard is what actually prevents
	// overselling.
	for _, line := range lines {
		ok, err := o.products.DecrementStock(ctx, tx, line.ProductID, line.Size, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("stock conflict on %s (%s): insufficient quantity at commit time",
				line.ProductID, line.Size)
		}
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:        orderID,
		UserID:    req.User.ID,
		Email:     req.User.Email,
		Total:     total,
		Status:    model.OrderStatusProcessing,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	order.Items = make([]model.OrderLine, len(lines))
	for i, line := range lines {
		order.Items[i] = model.OrderLine{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			UnitPrice:   line.UnitPrice,
			Discount:    line.DiscountPercent,
			Quantity:    line.Quantity,
			Image:       line.Image,
		}
	}

	if err := o.orders.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := o.orders.CreateOrderLines(ctx, tx, order.Items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}
	committed = true

	return order, nil
}

// journalFailure records a commit failure for manual reconciliation. Journal
// errors are logged but never replace the CommitError the caller gets.
func (o *Orchestrator) journalFailure(
	ctx context.Context,
	orderID uuid.UUID,
	lines []model.CartLine,
	total decimal.Decimal,
	req Request,
	cause error,
) {
	entry := reconcile.Entry{
		OrderID:    orderID,
		UserID:     req.User.ID,
		Email:      req.User.Email,
		Total:      total.StringFixed(2),
		Lines:      lines,
		FailedAt:   time.Now().UTC(),
		FailureMsg: cause.Error(),
	}

	if err := o.journal.Record(ctx, entry); err != nil {
		o.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to journal commit failure; manual reconciliation data may be lost")
	}
}

// productIDs collects the distinct product ids referenced by the cart.
func productIDs(lines []model.CartLine) []string {
	seen := make(map[string]struct{}, len(lines))
	var ids []string
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
