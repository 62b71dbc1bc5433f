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

// RatingInput carries the four rating dimensions and an optional comment.
type RatingInput struct {
	OrderID                 string
	ItemDescriptionAccuracy int
	CommunicationSupport    int
	DeliverySpeed           int
	OverallExperience       int
	Comment                 string
}

// RatingService implements rating submission and the seller summary
// invalidation that goes with it.
type RatingService struct {
	ratings  repository.RatingRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    repository.SellerSummaryCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ratings repository.RatingRepository, orders repository.OrderRepository, products repository.ProductRepository, cache repository.SellerSummaryCache, producer *event.Producer, logger *slog.Logger) *RatingService {
	return &RatingService{
		ratings:  ratings,
		orders:   orders,
		products: products,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// SubmitRating records a buyer's rating for a delivered order. Submitting
// again for the same order replaces the previous scores in place.
func (s *RatingService) SubmitRating(ctx context.Context, userID string, input *RatingInput) (*domain.Rating, error) {
	for name, score := range map[string]int{
		"item_description_accuracy": input.ItemDescriptionAccuracy,
		"communication_support":     input.CommunicationSupport,
		"delivery_speed":            input.DeliverySpeed,
		"overall_experience":        input.OverallExperience,
	} {
		if !domain.IsValidScore(score) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be between %d and %d", name, domain.MinScore, domain.MaxScore))
		}
	}

	// Scoping the lookup to the caller makes other users' orders
	// indistinguishable from missing ones.
	order, err := s.orders.GetByIDForUser(ctx, input.OrderID, userID)
	if err != nil {
		return nil, fmt.Errorf("get order for rating: %w", err)
	}

	if order.Status != domain.OrderStatusDelivered {
		return nil, apperrors.InvalidState("only delivered orders can be rated")
	}

	product, err := s.products.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product for rating: %w", err)
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		ID:                      uuid.New().String(),
		OrderID:                 order.ID,
		UserID:                  userID,
		ProductID:               order.ProductID,
		SellerID:                product.SellerID,
		ItemDescriptionAccuracy: input.ItemDescriptionAccuracy,
		CommunicationSupport:    input.CommunicationSupport,
		DeliverySpeed:           input.DeliverySpeed,
		OverallExperience:       input.OverallExperience,
		Comment:                 input.Comment,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	persisted, err := s.ratings.Upsert(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	if err := s.cache.Invalidate(ctx, product.SellerID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate seller summary cache",
			slog.String("seller_id", product.SellerID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishRatingSubmitted(ctx, persisted); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish rating.submitted event",
			slog.String("rating_id", persisted.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "rating submitted",
		slog.String("rating_id", persisted.ID),
		slog.String("order_id", persisted.OrderID),
		slog.String("seller_id", persisted.SellerID),
	)

	return persisted, nil
}

// SellerSummary returns the aggregated rating summary for a seller,
// preferring the cached copy.
func (s *RatingService) SellerSummary(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error) {
	summary, err := s.cache.Get(ctx, sellerID)
	if err != nil {
		s.logger.WarnContext(ctx, "seller summary cache lookup failed",
			slog.String("seller_id", sellerID),
			slog.String("error", err.Error()),
		)
	}
	if summary != nil {
		return summary, nil
	}

	summary, err = s.ratings.SellerSummary(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("seller summary: %w", err)
	}

	if cacheErr := s.cache.Set(ctx, summary); cacheErr != nil {
		s.logger.WarnContext(ctx, "failed to cache seller summary",
			slog.String("seller_id", sellerID),
			slog.String("error", cacheErr.Error()),
		)
	}

	return summary, nil
}
