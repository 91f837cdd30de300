package service

import (
	"context"
	"testing"
	"time"

	"jewelkart/internal/cart"
	"jewelkart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(repo *MockProductRepository, now func() time.Time) *cartService {
	return &cartService{
		carts:       cart.NewStore(),
		productRepo: repo,
		logger:      zerolog.Nop(),
		now:         now,
	}
}

func duringPromo() time.Time {
	return time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func afterPromo() time.Time {
	return time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)
}

func TestCartService_Add_CapturesDiscountDuringPromo(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := newCartService(mockRepo, duringPromo)
	view, err := svc.Add(ctx, "user-1", "P001", "50 MM")

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "P001-50 MM", view.Lines[0].Key)
	assert.Equal(t, "20", view.Lines[0].DiscountPercent.String())
	assert.Equal(t, "80.00", view.Total.StringFixed(2))
}

func TestCartService_Add_ZeroDiscountOutsidePromo(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := newCartService(mockRepo, afterPromo)
	view, err := svc.Add(ctx, "user-1", "P001", "50 MM")

	require.NoError(t, err)
	assert.True(t, view.Lines[0].DiscountPercent.IsZero())
	assert.Equal(t, "100.00", view.Total.StringFixed(2))
}

func TestCartService_Add_StickyPriceSurvivesPromoEnd(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	clock := duringPromo()
	svc := newCartService(mockRepo, func() time.Time { return clock })

	_, err := svc.Add(ctx, "user-1", "P001", "50 MM")
	require.NoError(t, err)

	// The promo ends, then the same line is added again. The merged line
	// keeps the discount captured at first add.
	clock = afterPromo()
	view, err := svc.Add(ctx, "user-1", "P001", "50 MM")

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, "20", view.Lines[0].DiscountPercent.String())
	assert.Equal(t, "160.00", view.Total.StringFixed(2))
}

func TestCartService_Add_SizeMatchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := newCartService(mockRepo, duringPromo)
	view, err := svc.Add(ctx, "user-1", "P001", "  50 mm ")

	require.NoError(t, err)
	// The stored label wins over whatever the caller typed.
	assert.Equal(t, "50 MM", view.Lines[0].Size)
}

func TestCartService_Add_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	svc := newCartService(mockRepo, duringPromo)
	_, err := svc.Add(ctx, "user-1", "missing", "50 MM")

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCartService_Add_SizeNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := newCartService(mockRepo, duringPromo)
	_, err := svc.Add(ctx, "user-1", "P001", "99 MM")

	assert.ErrorIs(t, err, model.ErrSizeNotFound)
}

func TestCartService_UpdateQuantity_RejectsBelowOne(t *testing.T) {
	ctx := context.Background()
	svc := newCartService(new(MockProductRepository), duringPromo)

	_, err := svc.UpdateQuantity(ctx, "user-1", "P001-50 MM", 0)

	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestCartService_RemoveThenGet(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := newCartService(mockRepo, duringPromo)

	_, err := svc.Add(ctx, "user-1", "P001", "50 MM")
	require.NoError(t, err)

	view, err := svc.Remove(ctx, "user-1", "P001-50 MM")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.Total.Equal(decimal.Zero))

	got, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}

func TestCartService_CartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := newCartService(mockRepo, duringPromo)

	_, err := svc.Add(ctx, "user-1", "P001", "50 MM")
	require.NoError(t, err)

	other, err := svc.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
}
