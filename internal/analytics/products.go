package analytics

import (
	"sort"

	"ecompulse/pkg/contracts/domain"
)

// ProductSales groups the filtered table by product category and sums the
// per-line item counts. Rows without a category are kept under
// domain.UnknownCategory. The output is descending by item count; ties keep
// the categories' first-appearance order (stable sort), since no secondary
// key exists upstream.
func ProductSales(rows []domain.OrderLine) []domain.ProductSalesRow {
	out := []domain.ProductSalesRow{}
	index := make(map[string]int)

	for _, row := range rows {
		cat := row.CategoryKey()
		i, seen := index[cat]
		if !seen {
			i = len(out)
			index[cat] = i
			out = append(out, domain.ProductSalesRow{Category: cat})
		}
		out[i].ItemCount += row.OrderItemID
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ItemCount > out[j].ItemCount
	})

	return out
}
