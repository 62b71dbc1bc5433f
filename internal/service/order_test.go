package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luxemarket/marketplace/internal/domain"
	apperrors "github.com/luxemarket/marketplace/pkg/errors"
)

func newTestOrderService(orders *mockOrderRepository, products *mockProductRepository) *OrderService {
	return NewOrderService(orders, products, newTestProducer(), newTestLogger())
}

func TestPlaceOrder_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	product := &domain.Product{ID: "prod-1", Name: "Vintage Lamp", SellerID: "seller-1", Price: 4500}
	products.On("GetByID", ctx, "prod-1").Return(product, nil)
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.PlaceOrder(ctx, "user-1", "prod-1")

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "prod-1", order.ProductID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.NotZero(t, order.CreatedAt)

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	products.On("GetByID", ctx, "nonexistent").Return(nil, apperrors.ErrNotFound)

	order, err := svc.PlaceOrder(ctx, "user-1", "nonexistent")

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	products.AssertExpectations(t)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_EmptyProductID(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)

	order, err := svc.PlaceOrder(context.Background(), "user-1", "")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPlaceOrder_RepeatPurchaseAllowed(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	product := &domain.Product{ID: "prod-1", SellerID: "seller-1"}
	products.On("GetByID", ctx, "prod-1").Return(product, nil).Twice()
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Twice()

	first, err := svc.PlaceOrder(ctx, "user-1", "prod-1")
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, "user-1", "prod-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	orders.AssertExpectations(t)
}

func TestListOrders_PartitionsByStatusAndRating(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	items := []domain.OrderListItem{
		{
			Order:   domain.Order{ID: "o-1", Status: domain.OrderStatusPending},
			Product: domain.Product{ID: "prod-1"},
		},
		{
			Order:   domain.Order{ID: "o-2", Status: domain.OrderStatusDelivered},
			Product: domain.Product{ID: "prod-2"},
		},
		{
			Order:   domain.Order{ID: "o-3", Status: domain.OrderStatusDelivered},
			Product: domain.Product{ID: "prod-3"},
			Rating:  &domain.Rating{ID: "r-1", OrderID: "o-3", OverallExperience: 5},
		},
	}

	orders.On("ListByUser", ctx, "user-1").Return(items, nil)

	partition, err := svc.ListOrders(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, partition.Pending, 1)
	require.Len(t, partition.Delivered, 1)
	require.Len(t, partition.Rated, 1)
	assert.Equal(t, "o-1", partition.Pending[0].ID)
	assert.Equal(t, "o-2", partition.Delivered[0].ID)
	assert.Equal(t, "o-3", partition.Rated[0].ID)
	assert.NotNil(t, partition.Rated[0].Rating)

	orders.AssertExpectations(t)
}

func TestListOrders_Empty(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	orders.On("ListByUser", ctx, "user-1").Return([]domain.OrderListItem{}, nil)

	partition, err := svc.ListOrders(ctx, "user-1")

	require.NoError(t, err)
	assert.NotNil(t, partition.Pending)
	assert.NotNil(t, partition.Delivered)
	assert.NotNil(t, partition.Rated)
	assert.Empty(t, partition.Pending)
	assert.Empty(t, partition.Delivered)
	assert.Empty(t, partition.Rated)
}

func TestMarkDelivered_Success(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	existing := &domain.Order{
		ID:        "o-1",
		UserID:    "user-1",
		ProductID: "prod-1",
		Status:    domain.OrderStatusPending,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}

	orders.On("GetByID", ctx, "o-1").Return(existing, nil)
	orders.On("UpdateStatus", ctx, "o-1", domain.OrderStatusDelivered).Return(nil)

	order, err := svc.MarkDelivered(ctx, "o-1")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)

	orders.AssertExpectations(t)
}

func TestMarkDelivered_AlreadyDelivered(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	existing := &domain.Order{ID: "o-1", Status: domain.OrderStatusDelivered}
	orders.On("GetByID", ctx, "o-1").Return(existing, nil)

	order, err := svc.MarkDelivered(ctx, "o-1")

	assert.Nil(t, order)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkDelivered_NotFound(t *testing.T) {
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newTestOrderService(orders, products)
	ctx := context.Background()

	orders.On("GetByID", ctx, "nonexistent").Return(nil, apperrors.ErrNotFound)

	order, err := svc.MarkDelivered(ctx, "nonexistent")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
