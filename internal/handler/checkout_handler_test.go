package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jewelkart/internal/cart"
	"jewelkart/internal/checkout"
	"jewelkart/internal/model"
	"jewelkart/internal/payment"
	"jewelkart/internal/reconcile"
	"jewelkart/internal/stock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub collaborators drive the orchestrator into each failure stage without a
// database or gateway.

type stubProductRepo struct {
	snapshot stock.Snapshot
}

func (s *stubProductRepo) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) InventorySnapshot(ctx context.Context, productIDs []string) (stock.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubProductRepo) DecrementStock(ctx context.Context, tx pgx.Tx, productID, size string, quantity int) (bool, error) {
	return true, nil
}

type stubOrderRepo struct {
	beginErr error
}

func (s *stubOrderRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return nil, s.beginErr
}

func (s *stubOrderRepo) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return nil
}

func (s *stubOrderRepo) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.OrderStatus) (bool, error) {
	return false, nil
}

type stubAuthorizer struct {
	err error
}

func (s *stubAuthorizer) Authorize(ctx context.Context, instrument payment.Instrument, amount decimal.Decimal) error {
	return s.err
}

type stubJournal struct {
	entries []reconcile.Entry
}

func (s *stubJournal) Record(ctx context.Context, entry reconcile.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func checkoutBody() string {
	return `{
		"address": {
			"firstName": "Ada", "lastName": "Smith", "address1": "1 Jewel Lane",
			"town": "Auckland", "postalCode": "1010", "country": "New Zealand"
		},
		"payment": {"savedCardId": "card_123"}
	}`
}

func seededCarts(t *testing.T, quantity int) *cart.Store {
	t.Helper()

	carts := cart.NewStore()
	carts.Update("user-1", func(c *cart.Cart) {
		c.Add(model.Product{ID: "P001", Name: "Halo Diamond Ring"}, model.SizeVariant{
			Size:     "50 MM",
			Price:    decimal.RequireFromString("100.00"),
			Discount: decimal.RequireFromString("20"),
			Quantity: 3,
		})
		c.UpdateQuantity("P001-50 MM", quantity)
	})
	return carts
}

func newCheckoutHandler(carts *cart.Store, products *stubProductRepo, orders *stubOrderRepo, authorizer *stubAuthorizer, journal *stubJournal) *CheckoutHandler {
	logger := zerolog.Nop()
	orchestrator := checkout.New(products, orders, authorizer, journal, logger)
	return NewCheckoutHandler(carts, orchestrator, logger)
}

func postCheckout(t *testing.T, h *CheckoutHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := asUser(httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)
	return rec
}

func TestCheckoutHandler_StockConflict(t *testing.T) {
	carts := seededCarts(t, 5) // only 3 in stock
	products := &stubProductRepo{snapshot: stock.Snapshot{stock.NewKey("P001", "50 MM"): 3}}
	h := newCheckoutHandler(carts, products, &stubOrderRepo{}, &stubAuthorizer{}, &stubJournal{})

	rec := postCheckout(t, h, checkoutBody())

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeStockInsufficient)
	assert.Contains(t, rec.Body.String(), `"requested":5`)
	assert.Contains(t, rec.Body.String(), `"available":3`)
}

func TestCheckoutHandler_PaymentDeclined(t *testing.T) {
	carts := seededCarts(t, 2)
	products := &stubProductRepo{snapshot: stock.Snapshot{stock.NewKey("P001", "50 MM"): 3}}
	authorizer := &stubAuthorizer{err: errors.New("insufficient funds")}
	h := newCheckoutHandler(carts, products, &stubOrderRepo{}, authorizer, &stubJournal{})

	rec := postCheckout(t, h, checkoutBody())

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodePaymentDeclined)
}

func TestCheckoutHandler_CommitFailure(t *testing.T) {
	carts := seededCarts(t, 2)
	products := &stubProductRepo{snapshot: stock.Snapshot{stock.NewKey("P001", "50 MM"): 3}}
	orders := &stubOrderRepo{beginErr: errors.New("connection refused")}
	journal := &stubJournal{}
	h := newCheckoutHandler(carts, products, orders, &stubAuthorizer{}, journal)

	rec := postCheckout(t, h, checkoutBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeCommitFailed)
	assert.Contains(t, rec.Body.String(), `"orderId"`)
	require.Len(t, journal.entries, 1)
	assert.Equal(t, "160.00", journal.entries[0].Total)
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	h := newCheckoutHandler(cart.NewStore(), &stubProductRepo{}, &stubOrderRepo{}, &stubAuthorizer{}, &stubJournal{})

	rec := postCheckout(t, h, checkoutBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeCartEmpty)
}

func TestCheckoutHandler_MissingAddressField(t *testing.T) {
	h := newCheckoutHandler(cart.NewStore(), &stubProductRepo{}, &stubOrderRepo{}, &stubAuthorizer{}, &stubJournal{})

	body := `{"address": {"firstName": "Ada"}, "payment": {"savedCardId": "card_123"}}`
	rec := postCheckout(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ErrCodeMissingField)
}

func TestCheckoutHandler_NoPaymentInstrument(t *testing.T) {
	h := newCheckoutHandler(cart.NewStore(), &stubProductRepo{}, &stubOrderRepo{}, &stubAuthorizer{}, &stubJournal{})

	body := `{
		"address": {
			"firstName": "Ada", "lastName": "Smith", "address1": "1 Jewel Lane",
			"town": "Auckland", "postalCode": "1010", "country": "New Zealand"
		},
		"payment": {}
	}`
	rec := postCheckout(t, h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_NoIdentity(t *testing.T) {
	h := newCheckoutHandler(cart.NewStore(), &stubProductRepo{}, &stubOrderRepo{}, &stubAuthorizer{}, &stubJournal{})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(checkoutBody()))
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
