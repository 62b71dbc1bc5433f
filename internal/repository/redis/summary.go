package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luxemarket/marketplace/internal/domain"
)

const summaryKeyPrefix = "seller_summary:"

// SummaryCache caches seller rating summaries in Redis with a TTL. The
// summary is recomputed from PostgreSQL on a miss and invalidated whenever
// a rating for the seller is written.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a Redis-backed seller summary cache.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(sellerID string) string {
	return summaryKeyPrefix + sellerID
}

// Get returns the cached summary for a seller, or (nil, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context, sellerID string) (*domain.SellerRatingSummary, error) {
	data, err := c.client.Get(ctx, summaryKey(sellerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller summary from cache: %w", err)
	}

	var s domain.SellerRatingSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal cached seller summary: %w", err)
	}

	return &s, nil
}

// Set stores the summary for its seller with the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, summary *domain.SellerRatingSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal seller summary: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(summary.SellerID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache seller summary: %w", err)
	}

	return nil
}

// Invalidate removes the cached summary for a seller.
func (c *SummaryCache) Invalidate(ctx context.Context, sellerID string) error {
	if err := c.client.Del(ctx, summaryKey(sellerID)).Err(); err != nil {
		return fmt.Errorf("invalidate seller summary: %w", err)
	}
	return nil
}
