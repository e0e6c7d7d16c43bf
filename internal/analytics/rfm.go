package analytics

import (
	"time"

	"ecompulse/pkg/contracts/domain"
)

// GlobalMaxDate returns the latest purchase date (date component only) across
// the table. Returns ErrEmptyTable for an empty table, where the maximum is
// undefined.
func GlobalMaxDate(rows []domain.OrderLine) (time.Time, error) {
	if len(rows) == 0 {
		return time.Time{}, ErrEmptyTable
	}

	max := rows[0].PurchaseDate()
	for _, row := range rows[1:] {
		if d := row.PurchaseDate(); d.After(max) {
			max = d
		}
	}
	return max, nil
}

// RFM computes the recency/frequency/monetary segmentation per customer state:
//
//   - frequency: distinct order count within the state
//   - monetary: sum of line prices within the state
//   - recency: whole calendar days between the table's latest purchase date
//     and the state's latest purchase date
//
// Recency is never negative, and the state holding the globally latest
// purchase has recency zero. Time of day is stripped before
// the subtraction, so only full calendar days are counted. An empty input
// yields an empty table; every aggregator here is empty-in/empty-out.
func RFM(rows []domain.OrderLine) []domain.RFMRow {
	globalMax, err := GlobalMaxDate(rows)
	if err != nil {
		return []domain.RFMRow{}
	}

	out := []domain.RFMRow{}
	index := make(map[string]int)
	orders := make(map[string]map[string]struct{})
	maxDates := make(map[string]time.Time)

	for _, row := range rows {
		state := row.CustomerState
		i, seen := index[state]
		if !seen {
			i = len(out)
			index[state] = i
			orders[state] = make(map[string]struct{})
			maxDates[state] = row.PurchaseDate()
			out = append(out, domain.RFMRow{CustomerState: state})
		}

		out[i].Monetary += row.Price
		if _, dup := orders[state][row.OrderID]; !dup {
			orders[state][row.OrderID] = struct{}{}
			out[i].Frequency++
		}
		if d := row.PurchaseDate(); d.After(maxDates[state]) {
			maxDates[state] = d
		}
	}

	// The per-state maximum date is an intermediate; only the day delta
	// against the global maximum survives into the output.
	for i := range out {
		out[i].Recency = daysBetween(maxDates[out[i].CustomerState], globalMax)
	}

	return out
}
