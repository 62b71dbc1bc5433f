package domain

import "time"

// Order status constants.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
)

// Order represents a purchase of a single product by a user.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatuses returns all valid order statuses.
func ValidStatuses() []string {
	return []string{OrderStatusPending, OrderStatusDelivered}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// AllowedTransitions defines which status transitions are valid.
// Delivered is terminal.
func AllowedTransitions() map[string][]string {
	return map[string][]string{
		OrderStatusPending:   {OrderStatusDelivered},
		OrderStatusDelivered: {},
	}
}

// CanTransitionTo checks if the order can transition to the target status.
func (o *Order) CanTransitionTo(target string) bool {
	allowed, ok := AllowedTransitions()[o.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// OrderGroup identifies which section of the orders page an order belongs to.
type OrderGroup string

const (
	OrderGroupPending   OrderGroup = "pending"
	OrderGroupDelivered OrderGroup = "delivered"
	OrderGroupRated     OrderGroup = "rated"
)

// ClassifyOrder assigns an order to exactly one group: pending orders stay
// pending, delivered orders split on whether a rating has been submitted.
func ClassifyOrder(status string, hasRating bool) OrderGroup {
	if status == OrderStatusPending {
		return OrderGroupPending
	}
	if hasRating {
		return OrderGroupRated
	}
	return OrderGroupDelivered
}

// OrderListItem is an order joined with its product and, when present, the
// rating submitted for it.
type OrderListItem struct {
	Order
	Product Product `json:"product"`
	Rating  *Rating `json:"rating,omitempty"`
}

// OrderPartition groups a user's orders into the three sections of the
// orders page. Every order appears in exactly one group.
type OrderPartition struct {
	Pending   []OrderListItem `json:"pending"`
	Delivered []OrderListItem `json:"delivered"`
	Rated     []OrderListItem `json:"rated"`
}
