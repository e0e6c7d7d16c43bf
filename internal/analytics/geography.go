package analytics

import (
	"ecompulse/pkg/contracts/domain"
)

// CustomersByState counts distinct customers per customer state.
// One row per distinct state, in first-appearance order; consumers sort as
// they need (no sort order is part of the contract).
func CustomersByState(rows []domain.OrderLine) []domain.CustomerCountRow {
	return distinctCustomersBy(rows, func(row domain.OrderLine) string {
		return row.CustomerState
	})
}

// CustomersByCity counts distinct customers per customer city.
// Structurally identical to CustomersByState apart from the grouping column.
func CustomersByCity(rows []domain.OrderLine) []domain.CustomerCountRow {
	return distinctCustomersBy(rows, func(row domain.OrderLine) string {
		return row.CustomerCity
	})
}

// distinctCustomersBy groups rows by the given key and counts distinct
// customer ids per group.
func distinctCustomersBy(rows []domain.OrderLine, keyOf func(domain.OrderLine) string) []domain.CustomerCountRow {
	out := []domain.CustomerCountRow{}
	index := make(map[string]int)
	customers := make(map[string]map[string]struct{})

	for _, row := range rows {
		key := keyOf(row)
		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			customers[key] = make(map[string]struct{})
			out = append(out, domain.CustomerCountRow{Key: key})
		}

		if _, dup := customers[key][row.CustomerID]; !dup {
			customers[key][row.CustomerID] = struct{}{}
			out[i].CustomerCount++
		}
	}

	return out
}
