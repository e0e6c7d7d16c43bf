package analytics

import (
	"sort"

	"ecompulse/pkg/contracts/domain"
)

// reviewKey identifies one (review score, product category) group.
type reviewKey struct {
	score    int
	category string
}

// ReviewByCategory groups the filtered table by (review score, product
// category) and computes, per group, the distinct order count and the sum of
// review scores. The score sum is the score times the group's row count; it is
// carried anyway because downstream consumers expect the column.
//
// Rows without a review score are excluded: the score is the grouping key, and
// an unreviewed row has no score bucket to belong to. Missing categories are
// kept under domain.UnknownCategory, same as ProductSales.
//
// The output is descending by distinct order count, ties in first-appearance order.
func ReviewByCategory(rows []domain.OrderLine) []domain.ReviewScoreRow {
	out := []domain.ReviewScoreRow{}
	index := make(map[reviewKey]int)
	orders := make(map[reviewKey]map[string]struct{})

	for _, row := range rows {
		if !row.HasReviewScore() {
			continue
		}

		key := reviewKey{score: row.ReviewScore, category: row.CategoryKey()}
		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			orders[key] = make(map[string]struct{})
			out = append(out, domain.ReviewScoreRow{
				ReviewScore: key.score,
				Category:    key.category,
			})
		}

		out[i].ReviewScoreSum += row.ReviewScore
		if _, dup := orders[key][row.OrderID]; !dup {
			orders[key][row.OrderID] = struct{}{}
			out[i].OrderCount++
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderCount > out[j].OrderCount
	})

	return out
}
