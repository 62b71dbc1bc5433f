package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/luxemarket/marketplace/internal/domain"
	"github.com/luxemarket/marketplace/pkg/database"
	apperrors "github.com/luxemarket/marketplace/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// roundScore rounds an average score to one decimal place.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, image_url, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.ImageURL,
		p.SellerID,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, seller_id, created_at
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.SellerID,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// List returns a page of products with per-product rating aggregates.
// The average is the mean of per-rating four-dimension means, computed in
// SQL; rounding to one decimal happens here.
func (r *ProductRepository) List(ctx context.Context, page, perPage int) ([]domain.ProductWithStats, int, error) {
	query := `
		SELECT
			p.id, p.name, p.description, p.price, p.image_url, p.seller_id, p.created_at,
			COALESCE(AVG((r.item_description_accuracy + r.communication_support + r.delivery_speed + r.overall_experience) / 4.0), 0) AS average_rating,
			COUNT(r.id) AS total_ratings,
			count(*) OVER() AS total_count
		FROM products p
		LEFT JOIN ratings r ON r.product_id = p.id
		GROUP BY p.id, p.name, p.description, p.price, p.image_url, p.seller_id, p.created_at
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var totalCount int
	products := make([]domain.ProductWithStats, 0)

	for rows.Next() {
		var p domain.ProductWithStats
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageURL,
			&p.SellerID,
			&p.CreatedAt,
			&p.AverageRating,
			&p.TotalRatings,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		p.AverageRating = roundScore(p.AverageRating)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
}
