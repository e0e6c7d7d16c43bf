package exporter

import (
	"fmt"
	"strconv"

	"ecompulse/internal/analytics"
)

// Export file names, one per derived table.
const (
	FileDailyOrders      = "daily_orders.csv"
	FileProductSales     = "product_sales.csv"
	FileReviewScores     = "review_scores.csv"
	FileCustomersByState = "customers_by_state.csv"
	FileCustomersByCity  = "customers_by_city.csv"
	FileRFM              = "rfm.csv"
)

// WriteSnapshot writes all six derived tables of the snapshot as CSV files.
// Each file carries the exact column set of its table.
func (w *CSVWriter) WriteSnapshot(snap *analytics.Snapshot) error {
	daily := make([][]string, 0, len(snap.DailyOrders))
	for _, row := range snap.DailyOrders {
		daily = append(daily, []string{
			row.Date.Format("2006-01-02"),
			strconv.Itoa(row.OrderCount),
			formatAmount(row.Revenue),
		})
	}
	if err := w.WriteTable(FileDailyOrders, []string{"date", "order_count", "revenue"}, daily); err != nil {
		return fmt.Errorf("export daily orders: %w", err)
	}

	products := make([][]string, 0, len(snap.ProductSales))
	for _, row := range snap.ProductSales {
		products = append(products, []string{row.Category, strconv.Itoa(row.ItemCount)})
	}
	if err := w.WriteTable(FileProductSales, []string{"product_category_name", "item_count"}, products); err != nil {
		return fmt.Errorf("export product sales: %w", err)
	}

	reviews := make([][]string, 0, len(snap.ReviewScores))
	for _, row := range snap.ReviewScores {
		reviews = append(reviews, []string{
			strconv.Itoa(row.ReviewScore),
			row.Category,
			strconv.Itoa(row.OrderCount),
			strconv.Itoa(row.ReviewScoreSum),
		})
	}
	if err := w.WriteTable(FileReviewScores,
		[]string{"review_score", "product_category_name", "order_count", "review_score_sum"}, reviews); err != nil {
		return fmt.Errorf("export review scores: %w", err)
	}

	states := make([][]string, 0, len(snap.CustomersByState))
	for _, row := range snap.CustomersByState {
		states = append(states, []string{row.Key, strconv.Itoa(row.CustomerCount)})
	}
	if err := w.WriteTable(FileCustomersByState, []string{"customer_state", "customer_count"}, states); err != nil {
		return fmt.Errorf("export customers by state: %w", err)
	}

	cities := make([][]string, 0, len(snap.CustomersByCity))
	for _, row := range snap.CustomersByCity {
		cities = append(cities, []string{row.Key, strconv.Itoa(row.CustomerCount)})
	}
	if err := w.WriteTable(FileCustomersByCity, []string{"customer_city", "customer_count"}, cities); err != nil {
		return fmt.Errorf("export customers by city: %w", err)
	}

	rfm := make([][]string, 0, len(snap.RFM))
	for _, row := range snap.RFM {
		rfm = append(rfm, []string{
			row.CustomerState,
			strconv.Itoa(row.Frequency),
			formatAmount(row.Monetary),
			strconv.Itoa(row.Recency),
		})
	}
	if err := w.WriteTable(FileRFM,
		[]string{"customer_state", "frequency", "monetary", "recency"}, rfm); err != nil {
		return fmt.Errorf("export rfm: %w", err)
	}

	return nil
}

// formatAmount renders a monetary value with two decimals, no currency symbol.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
