package domain

import "time"

// Rating score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a buyer's review of a delivered order, scored on four
// dimensions. At most one rating exists per order; resubmitting replaces
// the scores but keeps the original id and created_at.
type Rating struct {
	ID                      string    `json:"id"`
	OrderID                 string    `json:"order_id"`
	UserID                  string    `json:"user_id"`
	ProductID               string    `json:"product_id"`
	SellerID                string    `json:"seller_id"`
	ItemDescriptionAccuracy int       `json:"item_description_accuracy"`
	CommunicationSupport    int       `json:"communication_support"`
	DeliverySpeed           int       `json:"delivery_speed"`
	OverallExperience       int       `json:"overall_experience"`
	Comment                 string    `json:"comment,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// Mean returns the average of the four dimension scores.
func (r *Rating) Mean() float64 {
	sum := r.ItemDescriptionAccuracy + r.CommunicationSupport + r.DeliverySpeed + r.OverallExperience
	return float64(sum) / 4.0
}

// IsValidScore checks that a dimension score is within bounds.
func IsValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// SellerRatingSummary aggregates all ratings received by a seller:
// per-dimension averages, the overall average of per-rating means, and the
// rating count. Averages are rounded to one decimal; a seller with no
// ratings has all averages 0 and count 0.
type SellerRatingSummary struct {
	SellerID                string  `json:"seller_id"`
	ItemDescriptionAccuracy float64 `json:"item_description_accuracy"`
	CommunicationSupport    float64 `json:"communication_support"`
	DeliverySpeed           float64 `json:"delivery_speed"`
	OverallExperience       float64 `json:"overall_experience"`
	AverageRating           float64 `json:"average_rating"`
	TotalRatings            int     `json:"total_ratings"`
}
