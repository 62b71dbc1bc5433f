package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/luxemarket/marketplace/internal/domain"
	"github.com/luxemarket/marketplace/pkg/database"
	apperrors "github.com/luxemarket/marketplace/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, product_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		o.ID,
		o.UserID,
		o.ProductID,
		o.Status,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, product_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1`

	return r.scanOrder(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUser retrieves an order only if it belongs to the given user.
// An order owned by someone else is indistinguishable from a missing one.
func (r *OrderRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, product_id, status, created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2`

	return r.scanOrder(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ProductID,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

// ListByUser returns all orders of a user joined with their product and
// rating (when present), newest first. A single query covers all three
// sections of the orders page.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.OrderListItem, error) {
	query := `
		SELECT
			o.id, o.user_id, o.product_id, o.status, o.created_at, o.updated_at,
			p.id, p.name, p.description, p.price, p.image_url, p.seller_id, p.created_at,
			r.id, r.order_id, r.user_id, r.product_id, r.seller_id,
			r.item_description_accuracy, r.communication_support, r.delivery_speed, r.overall_experience,
			r.comment, r.created_at, r.updated_at
		FROM orders o
		JOIN products p ON p.id = o.product_id
		LEFT JOIN ratings r ON r.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderListItem, 0)

	for rows.Next() {
		var (
			item domain.OrderListItem

			ratingID        *string
			ratingOrderID   *string
			ratingUserID    *string
			ratingProductID *string
			ratingSellerID  *string
			accuracy        *int
			communication   *int
			speed           *int
			overall         *int
			comment         *string
			ratingCreatedAt *time.Time
			ratingUpdatedAt *time.Time
		)

		if err := rows.Scan(
			&item.Order.ID,
			&item.Order.UserID,
			&item.Order.ProductID,
			&item.Order.Status,
			&item.Order.CreatedAt,
			&item.Order.UpdatedAt,
			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.Price,
			&item.Product.ImageURL,
			&item.Product.SellerID,
			&item.Product.CreatedAt,
			&ratingID,
			&ratingOrderID,
			&ratingUserID,
			&ratingProductID,
			&ratingSellerID,
			&accuracy,
			&communication,
			&speed,
			&overall,
			&comment,
			&ratingCreatedAt,
			&ratingUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if ratingID != nil {
			rating := domain.Rating{
				ID:                      *ratingID,
				OrderID:                 *ratingOrderID,
				UserID:                  *ratingUserID,
				ProductID:               *ratingProductID,
				SellerID:                *ratingSellerID,
				ItemDescriptionAccuracy: *accuracy,
				CommunicationSupport:    *communication,
				DeliverySpeed:           *speed,
				OverallExperience:       *overall,
				CreatedAt:               *ratingCreatedAt,
				UpdatedAt:               *ratingUpdatedAt,
			}
			if comment != nil {
				rating.Comment = *comment
			}
			item.Rating = &rating
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return items, nil
}

// UpdateStatus changes the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}
