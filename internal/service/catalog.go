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
	"github.com/luxemarket/marketplace/pkg/pagination"
)

// CatalogService implements product listing and detail lookups, including
// the seller rating summaries attached to product pages.
type CatalogService struct {
	products repository.ProductRepository
	ratings  repository.RatingRepository
	cache    repository.SellerSummaryCache
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, ratings repository.RatingRepository, cache repository.SellerSummaryCache, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		ratings:  ratings,
		cache:    cache,
		producer: producer,
		logger:   logger,
	}
}

// CreateProduct registers a new product for the given seller.
func (s *CatalogService) CreateProduct(ctx context.Context, sellerID string, input *domain.Product) (*domain.Product, error) {
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("price must be positive")
	}

	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		SellerID:    sellerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("seller_id", product.SellerID),
	)

	return product, nil
}

// ListProducts returns a paginated product listing with rating aggregates.
func (s *CatalogService) ListProducts(ctx context.Context, params pagination.Params) (*pagination.Result[domain.ProductWithStats], error) {
	products, total, err := s.products.List(ctx, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	result := pagination.NewResult(products, total, params)
	return &result, nil
}

// GetProduct returns a single product with its seller's rating summary. The
// summary is served from cache when present and computed from the ratings
// table otherwise.
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	detail := &domain.ProductDetail{Product: *product}

	summary, err := s.cache.Get(ctx, product.SellerID)
	if err != nil {
		s.logger.WarnContext(ctx, "seller summary cache lookup failed",
			slog.String("seller_id", product.SellerID),
			slog.String("error", err.Error()),
		)
	}
	if summary == nil {
		summary, err = s.ratings.SellerSummary(ctx, product.SellerID)
		if err != nil {
			return nil, fmt.Errorf("seller summary: %w", err)
		}
		if cacheErr := s.cache.Set(ctx, summary); cacheErr != nil {
			s.logger.WarnContext(ctx, "failed to cache seller summary",
				slog.String("seller_id", product.SellerID),
				slog.String("error", cacheErr.Error()),
			)
		}
	}
	detail.SellerRating = summary

	return detail, nil
}

// ListProductRatings returns the ratings left on a product, newest first.
func (s *CatalogService) ListProductRatings(ctx context.Context, productID string, params pagination.Params) (*pagination.Result[domain.Rating], error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("get product for ratings: %w", err)
	}

	ratings, total, err := s.ratings.ListByProduct(ctx, productID, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list product ratings: %w", err)
	}
	result := pagination.NewResult(ratings, total, params)
	return &result, nil
}
