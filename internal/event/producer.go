package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/luxemarket/marketplace/internal/domain"
	pkgkafka "github.com/luxemarket/marketplace/pkg/kafka"
)

// Kafka topics for marketplace domain events.
var (
	TopicOrderPlaced     = pkgkafka.Topic("order", "placed")
	TopicOrderDelivered  = pkgkafka.Topic("order", "delivered")
	TopicRatingSubmitted = pkgkafka.Topic("rating", "submitted")
	TopicProductCreated  = pkgkafka.Topic("product", "created")
)

// Aggregate type constants.
const (
	AggregateTypeOrder   = "order"
	AggregateTypeRating  = "rating"
	AggregateTypeProduct = "product"
)

// Source identifier for events originating from this service.
const Source = "marketplace"

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
}

// OrderDeliveredData is the payload for an order.delivered event.
type OrderDeliveredData struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// RatingSubmittedData is the payload for a rating.submitted event.
type RatingSubmittedData struct {
	RatingID                string `json:"rating_id"`
	OrderID                 string `json:"order_id"`
	UserID                  string `json:"user_id"`
	ProductID               string `json:"product_id"`
	SellerID                string `json:"seller_id"`
	ItemDescriptionAccuracy int    `json:"item_description_accuracy"`
	CommunicationSupport    int    `json:"communication_support"`
	DeliverySpeed           int    `json:"delivery_speed"`
	OverallExperience       int    `json:"overall_experience"`
}

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// Producer publishes marketplace domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order *domain.Order, sellerID string) error {
	data := OrderPlacedData{
		OrderID:   order.ID,
		UserID:    order.UserID,
		ProductID: order.ProductID,
		SellerID:  sellerID,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, order.ID, AggregateTypeOrder, Source, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
	)

	return nil
}

// PublishOrderDelivered publishes an order.delivered event.
func (p *Producer) PublishOrderDelivered(ctx context.Context, order *domain.Order) error {
	data := OrderDeliveredData{
		OrderID:   order.ID,
		UserID:    order.UserID,
		ProductID: order.ProductID,
	}

	event, err := pkgkafka.NewEvent(TopicOrderDelivered, order.ID, AggregateTypeOrder, Source, data)
	if err != nil {
		return fmt.Errorf("create order.delivered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderDelivered, event); err != nil {
		return fmt.Errorf("publish order.delivered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.delivered event",
		slog.String("order_id", order.ID),
	)

	return nil
}

// PublishRatingSubmitted publishes a rating.submitted event.
func (p *Producer) PublishRatingSubmitted(ctx context.Context, rating *domain.Rating) error {
	data := RatingSubmittedData{
		RatingID:                rating.ID,
		OrderID:                 rating.OrderID,
		UserID:                  rating.UserID,
		ProductID:               rating.ProductID,
		SellerID:                rating.SellerID,
		ItemDescriptionAccuracy: rating.ItemDescriptionAccuracy,
		CommunicationSupport:    rating.CommunicationSupport,
		DeliverySpeed:           rating.DeliverySpeed,
		OverallExperience:       rating.OverallExperience,
	}

	event, err := pkgkafka.NewEvent(TopicRatingSubmitted, rating.ID, AggregateTypeRating, Source, data)
	if err != nil {
		return fmt.Errorf("create rating.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRatingSubmitted, event); err != nil {
		return fmt.Errorf("publish rating.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published rating.submitted event",
		slog.String("rating_id", rating.ID),
		slog.String("order_id", rating.OrderID),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Name:      product.Name,
		Price:     product.Price,
	}

	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, Source, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
		slog.String("seller_id", product.SellerID),
	)

	return nil
}
