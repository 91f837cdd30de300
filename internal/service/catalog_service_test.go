package service

import (
	"context"
	"testing"
	"time"

	"jewelkart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func promoProduct() model.Product {
	return model.Product{
		ID:         "P001",
		Name:       "Halo Diamond Ring",
		Category:   "Rings",
		PromoStart: datePtr(2026, time.March, 1),
		PromoEnd:   datePtr(2026, time.March, 31),
		Sizes: []model.SizeVariant{
			{Size: "50 MM", Price: decimal.RequireFromString("100.00"), Discount: decimal.RequireFromString("20"), Quantity: 3},
			{Size: "52 MM", Price: decimal.RequireFromString("110.00"), Discount: decimal.RequireFromString("20"), Quantity: 1},
		},
	}
}

func TestCatalogService_GetByID_PromoActive(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := &catalogService{
		productRepo: mockRepo,
		logger:      zerolog.Nop(),
		now:         func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) },
	}

	view, err := svc.GetByID(ctx, "P001")

	require.NoError(t, err)
	assert.True(t, view.PromoActive)
	require.Len(t, view.Sizes, 2)
	assert.Equal(t, "80.00", view.Sizes[0].EffectivePrice.StringFixed(2))
	assert.Equal(t, "88.00", view.Sizes[1].EffectivePrice.StringFixed(2))
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetByID_PromoExpired(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	mockRepo.On("GetByID", ctx, "P001").Return(&product, nil)

	svc := &catalogService{
		productRepo: mockRepo,
		logger:      zerolog.Nop(),
		now:         func() time.Time { return time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC) },
	}

	view, err := svc.GetByID(ctx, "P001")

	require.NoError(t, err)
	assert.False(t, view.PromoActive)
	assert.Equal(t, "100.00", view.Sizes[0].EffectivePrice.StringFixed(2))
}

func TestCatalogService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetByID", ctx, "missing").Return(nil, nil)

	svc := NewCatalogService(mockRepo, zerolog.Nop())
	view, err := svc.GetByID(ctx, "missing")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_GetByID_EmptyID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	svc := NewCatalogService(mockRepo, zerolog.Nop())
	_, err := svc.GetByID(ctx, "")

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCatalogService_GetAll_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetAll", ctx, 100, 0).Return([]model.Product{}, nil)

	svc := NewCatalogService(mockRepo, zerolog.Nop())
	views, err := svc.GetAll(ctx, 500, -3)

	require.NoError(t, err)
	assert.Empty(t, views)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetAll_NoPromoDates(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)

	product := promoProduct()
	product.PromoStart = nil
	mockRepo.On("GetAll", ctx, 20, 0).Return([]model.Product{product}, nil)

	svc := NewCatalogService(mockRepo, zerolog.Nop())
	views, err := svc.GetAll(ctx, 0, 0)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].PromoActive)
	assert.Equal(t, "100.00", views[0].Sizes[0].EffectivePrice.StringFixed(2))
}
