package domain

import (
	"time"
)

// UnknownCategory is the grouping key assigned to order lines that carry no
// product category. Keeping these rows in their own group means category
// aggregates never silently drop data.
const UnknownCategory = "unknown"

// OrderLine represents a single item line within a customer order.
// One order may span multiple lines sharing the same OrderID.
type OrderLine struct {
	OrderID               string    `json:"order_id" csv:"order_id" validate:"required"`
	OrderItemID           int       `json:"order_item_id" csv:"order_item_id" validate:"min=0"`
	ProductCategory       string    `json:"product_category_name,omitempty" csv:"product_category_name"`
	CustomerID            string    `json:"customer_id" csv:"customer_id" validate:"required"`
	CustomerState         string    `json:"customer_state" csv:"customer_state"`
	CustomerCity          string    `json:"customer_city" csv:"customer_city"`
	ReviewScore           int       `json:"review_score,omitempty" csv:"review_score" validate:"min=0,max=5"`
	Price                 float64   `json:"price" csv:"price" validate:"min=0"`
	PurchaseTimestamp     time.Time `json:"order_purchase_timestamp" csv:"order_purchase_timestamp" validate:"required"`
	EstimatedDeliveryDate time.Time `json:"order_estimated_delivery_date,omitempty" csv:"order_estimated_delivery_date"`
}

// PurchaseDate returns the calendar date of the purchase with the time of day
// stripped. The timestamp's own location is kept; no zone conversion happens.
func (ol OrderLine) PurchaseDate() time.Time {
	y, m, d := ol.PurchaseTimestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ol.PurchaseTimestamp.Location())
}

// CategoryKey returns the grouping key for the line's product category,
// substituting UnknownCategory when the category is missing.
func (ol OrderLine) CategoryKey() string {
	if ol.ProductCategory == "" {
		return UnknownCategory
	}
	return ol.ProductCategory
}

// HasReviewScore reports whether the line carries a review score.
// Valid scores are 1-5; zero means the order was never reviewed.
func (ol OrderLine) HasReviewScore() bool {
	return ol.ReviewScore >= 1 && ol.ReviewScore <= 5
}

// IsValid checks that the line satisfies the input contract.
func (ol OrderLine) IsValid() bool {
	return ol.OrderID != "" && ol.CustomerID != "" &&
		!ol.PurchaseTimestamp.IsZero() &&
		ol.OrderItemID >= 0 && ol.Price >= 0 &&
		(ol.ReviewScore == 0 || ol.HasReviewScore())
}
