package repository

import (
	"context"

	"github.com/luxemarket/marketplace/internal/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns a page of products with per-product rating aggregates,
	// newest first, along with the total product count.
	List(ctx context.Context, page, perPage int) ([]domain.ProductWithStats, int, error)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByIDForUser retrieves an order only if it belongs to the given user.
	GetByIDForUser(ctx context.Context, id, userID string) (*domain.Order, error)

	// ListByUser returns all orders of a user joined with their product and
	// rating (when present), newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.OrderListItem, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id, status string) error
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	// Upsert inserts the rating or, if one already exists for the order,
	// replaces its scores and comment while keeping the original id and
	// created_at. Returns the persisted row.
	Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)

	// ListByProduct returns a page of ratings for a product, newest first,
	// along with the total count.
	ListByProduct(ctx context.Context, productID string, page, perPage int) ([]domain.Rating, int, error)

	// SellerSummary aggregates all ratings received by a seller.
	SellerSummary(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error)
}

// SellerSummaryCache caches seller rating summaries. Get returns (nil, nil)
// on a cache miss.
type SellerSummaryCache interface {
	Get(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error)
	Set(ctx context.Context, summary *domain.SellerRatingSummary) error
	Invalidate(ctx context.Context, sellerID string) error
}
