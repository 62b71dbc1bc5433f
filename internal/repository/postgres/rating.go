package postgres

import (
	"context"
	"fmt"

	"github.com/luxemarket/marketplace/internal/domain"
	"github.com/luxemarket/marketplace/pkg/database"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Upsert inserts the rating or replaces the scores of an existing one for
// the same order. The unique index on order_id makes concurrent submissions
// for one order converge on a single row; the conflict branch keeps the
// original id and created_at.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	query := `
		INSERT INTO ratings (id, order_id, user_id, product_id, seller_id,
			item_description_accuracy, communication_support, delivery_speed, overall_experience,
			comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (order_id) DO UPDATE SET
			item_description_accuracy = EXCLUDED.item_description_accuracy,
			communication_support = EXCLUDED.communication_support,
			delivery_speed = EXCLUDED.delivery_speed,
			overall_experience = EXCLUDED.overall_experience,
			comment = EXCLUDED.comment,
			updated_at = EXCLUDED.updated_at
		RETURNING id, order_id, user_id, product_id, seller_id,
			item_description_accuracy, communication_support, delivery_speed, overall_experience,
			comment, created_at, updated_at`

	var out domain.Rating
	err := r.pool.QueryRow(ctx, query,
		rating.ID,
		rating.OrderID,
		rating.UserID,
		rating.ProductID,
		rating.SellerID,
		rating.ItemDescriptionAccuracy,
		rating.CommunicationSupport,
		rating.DeliverySpeed,
		rating.OverallExperience,
		rating.Comment,
		rating.CreatedAt,
		rating.UpdatedAt,
	).Scan(
		&out.ID,
		&out.OrderID,
		&out.UserID,
		&out.ProductID,
		&out.SellerID,
		&out.ItemDescriptionAccuracy,
		&out.CommunicationSupport,
		&out.DeliverySpeed,
		&out.OverallExperience,
		&out.Comment,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	return &out, nil
}

// ListByProduct returns a page of ratings for a product, newest first.
func (r *RatingRepository) ListByProduct(ctx context.Context, productID string, page, perPage int) ([]domain.Rating, int, error) {
	query := `
		SELECT id, order_id, user_id, product_id, seller_id,
			item_description_accuracy, communication_support, delivery_speed, overall_experience,
			comment, created_at, updated_at,
			count(*) OVER() AS total_count
		FROM ratings
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	limit := perPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	rows, err := r.pool.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var totalCount int
	ratings := make([]domain.Rating, 0)

	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(
			&rt.ID,
			&rt.OrderID,
			&rt.UserID,
			&rt.ProductID,
			&rt.SellerID,
			&rt.ItemDescriptionAccuracy,
			&rt.CommunicationSupport,
			&rt.DeliverySpeed,
			&rt.OverallExperience,
			&rt.Comment,
			&rt.CreatedAt,
			&rt.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, totalCount, nil
}

// SellerSummary aggregates all ratings received by a seller in a single
// query. A seller with no ratings gets zeroed averages and count 0.
func (r *RatingRepository) SellerSummary(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error) {
	query := `
		SELECT
			COALESCE(AVG(item_description_accuracy), 0),
			COALESCE(AVG(communication_support), 0),
			COALESCE(AVG(delivery_speed), 0),
			COALESCE(AVG(overall_experience), 0),
			COALESCE(AVG((item_description_accuracy + communication_support + delivery_speed + overall_experience) / 4.0), 0),
			COUNT(*)
		FROM ratings
		WHERE seller_id = $1`

	s := domain.SellerRatingSummary{SellerID: sellerID}
	err := r.pool.QueryRow(ctx, query, sellerID).Scan(
		&s.ItemDescriptionAccuracy,
		&s.CommunicationSupport,
		&s.DeliverySpeed,
		&s.OverallExperience,
		&s.AverageRating,
		&s.TotalRatings,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate seller ratings: %w", err)
	}

	s.ItemDescriptionAccuracy = roundScore(s.ItemDescriptionAccuracy)
	s.CommunicationSupport = roundScore(s.CommunicationSupport)
	s.DeliverySpeed = roundScore(s.DeliverySpeed)
	s.OverallExperience = roundScore(s.OverallExperience)
	s.AverageRating = roundScore(s.AverageRating)

	return &s, nil
}
