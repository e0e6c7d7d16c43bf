package analytics

import (
	"ecompulse/pkg/contracts/domain"
)

// DailyOrders groups the filtered table by calendar day and computes, for each
// day that actually appears in the data, the distinct order count and the
// revenue (sum of line prices). Days with no rows are not synthesized.
//
// The output is ascending by day. This holds by construction for a canonically
// sorted input: a new day is appended the first time it is seen, so output
// order follows input order. The function does not re-sort out-of-order
// input; callers own the canonical ordering.
func DailyOrders(rows []domain.OrderLine) []domain.DailyOrdersRow {
	out := []domain.DailyOrdersRow{}
	index := make(map[string]int)         // day key -> position in out
	orders := make(map[string]map[string]struct{}) // day key -> distinct order ids

	for _, row := range rows {
		day := row.PurchaseDate()
		key := day.Format("2006-01-02")

		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			orders[key] = make(map[string]struct{})
			out = append(out, domain.DailyOrdersRow{Date: day})
		}

		out[i].Revenue += row.Price
		if _, dup := orders[key][row.OrderID]; !dup {
			orders[key][row.OrderID] = struct{}{}
			out[i].OrderCount++
		}
	}

	return out
}
