package domain

import (
	"time"
)

// DailyOrdersRow is one calendar day of the daily orders series.
type DailyOrdersRow struct {
	Date       time.Time `json:"date"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

// ProductSalesRow is the item total for one product category.
type ProductSalesRow struct {
	Category  string `json:"product_category_name"`
	ItemCount int    `json:"item_count"`
}

// ReviewScoreRow is the order total for one (review score, category) pair.
type ReviewScoreRow struct {
	ReviewScore    int    `json:"review_score"`
	Category       string `json:"product_category_name"`
	OrderCount     int    `json:"order_count"`
	ReviewScoreSum int    `json:"review_score_sum"`
}

// CustomerCountRow is the distinct customer total for one geographic key
// (a state or a city, depending on the producing aggregator).
type CustomerCountRow struct {
	Key           string `json:"key"`
	CustomerCount int    `json:"customer_count"`
}

// RFMRow is the recency/frequency/monetary segmentation for one customer state.
type RFMRow struct {
	CustomerState string  `json:"customer_state"`
	Frequency     int     `json:"frequency"`
	Monetary      float64 `json:"monetary"`
	Recency       int     `json:"recency"`
}

// DashboardSummary carries the headline metrics shown above the charts:
// grand totals from the daily series plus RFM averages across states.
type DashboardSummary struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	TotalOrders     int       `json:"total_orders"`
	TotalRevenue    float64   `json:"total_revenue"`
	AverageRecency  float64   `json:"average_recency"`
	AverageFrequency float64  `json:"average_frequency"`
	AverageMonetary float64   `json:"average_monetary"`
}
