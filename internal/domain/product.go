package domain

import "time"

// Product represents a marketplace listing. Products are immutable after
// creation; price is stored in minor currency units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	SellerID    string    `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductWithStats is a product enriched with its aggregated rating figures
// for catalog listings.
type ProductWithStats struct {
	Product
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// ProductDetail is a product together with its seller's rating summary,
// as shown on the product detail page.
type ProductDetail struct {
	Product
	SellerRating *SellerRatingSummary `json:"seller_rating,omitempty"`
}
