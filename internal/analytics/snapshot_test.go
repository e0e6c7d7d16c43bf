package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSnapshot tests the sequential and concurrent pipeline runners
func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	table := twoOrderTable()
	window := NewDateRange(day("2024-01-01"), day("2024-01-03"))
	rows := Filter(table, window)

	t.Run("compute fills all six tables", func(t *testing.T) {
		snap := Compute(ctx, rows, window)

		assert.Equal(t, window, snap.Window)
		assert.Len(t, snap.DailyOrders, 2)
		assert.Len(t, snap.ProductSales, 1)
		assert.Len(t, snap.ReviewScores, 2)
		assert.Len(t, snap.CustomersByState, 2)
		assert.Len(t, snap.CustomersByCity, 2)
		assert.Len(t, snap.RFM, 2)
	})

	t.Run("parallel output matches sequential", func(t *testing.T) {
		want := Compute(ctx, rows, window)
		got, err := ComputeParallel(ctx, rows, window)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("empty view yields empty tables with the window kept", func(t *testing.T) {
		empty := NewDateRange(day("2024-02-01"), day("2024-02-01"))
		snap := Compute(ctx, Filter(table, empty), empty)

		assert.Equal(t, empty, snap.Window)
		assert.Empty(t, snap.DailyOrders)
		assert.Empty(t, snap.ProductSales)
		assert.Empty(t, snap.ReviewScores)
		assert.Empty(t, snap.CustomersByState)
		assert.Empty(t, snap.CustomersByCity)
		assert.Empty(t, snap.RFM)
	})

	t.Run("recomputation is deterministic", func(t *testing.T) {
		assert.Equal(t, Compute(ctx, rows, window), Compute(ctx, rows, window))
	})
}
