package analytics

import (
	"sort"

	"ecompulse/pkg/contracts/domain"
)

// Filter returns the subsequence of rows whose purchase date falls inside the
// inclusive range. The input is never mutated and row order is preserved, so
// a canonically sorted table stays sorted after filtering. An inverted range
// yields an empty (nil) result; see DateRange.IsValid.
func Filter(rows []domain.OrderLine, window DateRange) []domain.OrderLine {
	if !window.IsValid() {
		return nil
	}

	var out []domain.OrderLine
	for _, row := range rows {
		if window.Contains(row.PurchaseTimestamp) {
			out = append(out, row)
		}
	}
	return out
}

// SortByPurchaseTime sorts rows ascending by purchase timestamp in place.
// The canonical table is sorted once at load time; aggregators rely on this
// only for the daily series, whose output order follows input order.
func SortByPurchaseTime(rows []domain.OrderLine) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PurchaseTimestamp.Before(rows[j].PurchaseTimestamp)
	})
}

// DataBounds returns the earliest and latest purchase dates in the table.
// The dashboard uses these as the default filter window.
func DataBounds(rows []domain.OrderLine) (DateRange, error) {
	if len(rows) == 0 {
		return DateRange{}, ErrEmptyTable
	}

	min, max := rows[0].PurchaseTimestamp, rows[0].PurchaseTimestamp
	for _, row := range rows[1:] {
		if row.PurchaseTimestamp.Before(min) {
			min = row.PurchaseTimestamp
		}
		if row.PurchaseTimestamp.After(max) {
			max = row.PurchaseTimestamp
		}
	}
	return NewDateRange(min, max), nil
}
