package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luxemarket/marketplace/internal/domain"
	"github.com/luxemarket/marketplace/internal/event"
	"github.com/luxemarket/marketplace/internal/repository"
	apperrors "github.com/luxemarket/marketplace/pkg/errors"
)

// OrderService implements the business logic for order operations.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// PlaceOrder creates a pending order for the given product. The product
// must exist; duplicate pending orders for the same product are allowed.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, productID string) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product for order: %w", err)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderPlaced(ctx, order, product.SellerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("product_id", order.ProductID),
	)

	return order, nil
}

// ListOrders returns the user's orders partitioned into pending, delivered,
// and rated sections. Every order lands in exactly one section.
func (s *OrderService) ListOrders(ctx context.Context, userID string) (*domain.OrderPartition, error) {
	items, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	partition := &domain.OrderPartition{
		Pending:   make([]domain.OrderListItem, 0),
		Delivered: make([]domain.OrderListItem, 0),
		Rated:     make([]domain.OrderListItem, 0),
	}

	for _, item := range items {
		switch domain.ClassifyOrder(item.Status, item.Rating != nil) {
		case domain.OrderGroupPending:
			partition.Pending = append(partition.Pending, item)
		case domain.OrderGroupDelivered:
			partition.Delivered = append(partition.Delivered, item)
		case domain.OrderGroupRated:
			partition.Rated = append(partition.Rated, item)
		}
	}

	return partition, nil
}

// MarkDelivered transitions an order from pending to delivered. Delivered
// is terminal, so repeating the call is rejected.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order for delivery: %w", err)
	}

	if !order.CanTransitionTo(domain.OrderStatusDelivered) {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot transition order from %q to %q", order.Status, domain.OrderStatusDelivered))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusDelivered); err != nil {
		return nil, fmt.Errorf("mark order delivered: %w", err)
	}

	order.Status = domain.OrderStatusDelivered
	order.UpdatedAt = time.Now().UTC()

	if err := s.producer.PublishOrderDelivered(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.delivered event",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order delivered",
		slog.String("order_id", orderID),
		slog.String("user_id", order.UserID),
	)

	return order, nil
}
