package service

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/luxemarket/marketplace/internal/domain"
	"github.com/luxemarket/marketplace/internal/event"
	pkgkafka "github.com/luxemarket/marketplace/pkg/kafka"
)

// --- Mock Repositories ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, page, perPage int) ([]domain.ProductWithStats, int, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).([]domain.ProductWithStats), args.Int(1), args.Error(2)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.OrderListItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.OrderListItem), args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	args := m.Called(ctx, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockRatingRepository) ListByProduct(ctx context.Context, productID string, page, perPage int) ([]domain.Rating, int, error) {
	args := m.Called(ctx, productID, page, perPage)
	return args.Get(0).([]domain.Rating), args.Int(1), args.Error(2)
}

func (m *mockRatingRepository) SellerSummary(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellerRatingSummary), args.Error(1)
}

type mockSummaryCache struct {
	mock.Mock
}

func (m *mockSummaryCache) Get(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellerRatingSummary), args.Error(1)
}

func (m *mockSummaryCache) Set(ctx context.Context, summary *domain.SellerRatingSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *mockSummaryCache) Invalidate(ctx context.Context, sellerID string) error {
	args := m.Called(ctx, sellerID)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestProducer() *event.Producer {
	logger := newTestLogger()
	// No real broker behind this producer; publish failures are logged and ignored.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}
