package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecompulse/internal/analytics"
	"ecompulse/pkg/contracts/domain"
)

// sampleTable builds the two-order fixture used across service tests.
func sampleTable(t *testing.T) []domain.OrderLine {
	t.Helper()

	parse := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02 15:04:05", s)
		require.NoError(t, err)
		return ts
	}

	return []domain.OrderLine{
		{OrderID: "A", OrderItemID: 1, ProductCategory: "beleza_saude", CustomerID: "c1",
			CustomerState: "SP", CustomerCity: "sao paulo", ReviewScore: 5, Price: 10.00,
			PurchaseTimestamp: parse("2024-01-01 10:00:00")},
		{OrderID: "A", OrderItemID: 1, ProductCategory: "beleza_saude", CustomerID: "c1",
			CustomerState: "SP", CustomerCity: "sao paulo", ReviewScore: 5, Price: 5.00,
			PurchaseTimestamp: parse("2024-01-01 10:00:00")},
		{OrderID: "B", OrderItemID: 1, ProductCategory: "esporte_lazer", CustomerID: "c2",
			CustomerState: "RJ", CustomerCity: "rio de janeiro", ReviewScore: 4, Price: 20.00,
			PurchaseTimestamp: parse("2024-01-03 18:30:00")},
	}
}

func window(t *testing.T, from, to string) analytics.DateRange {
	t.Helper()
	start, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	return analytics.NewDateRange(start, end)
}

// TestDashboardService tests range handling, snapshots and summaries
func TestDashboardService(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T, parallel bool) *DashboardService {
		svc, err := NewDashboardService(sampleTable(t), parallel, nil, nil)
		require.NoError(t, err)
		return svc
	}

	t.Run("bounds follow the data", func(t *testing.T) {
		svc := newService(t, false)
		assert.Equal(t, window(t, "2024-01-01", "2024-01-03"), svc.Bounds())
	})

	t.Run("empty dataset rejected", func(t *testing.T) {
		_, err := NewDashboardService(nil, false, nil, nil)
		assert.ErrorIs(t, err, ErrDatasetEmpty)
	})

	t.Run("inverted range rejected before filtering", func(t *testing.T) {
		svc := newService(t, false)
		_, err := svc.Snapshot(ctx, window(t, "2024-01-03", "2024-01-01"))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("snapshot over the full range", func(t *testing.T) {
		svc := newService(t, false)
		snap, err := svc.Snapshot(ctx, svc.Bounds())
		require.NoError(t, err)

		require.Len(t, snap.DailyOrders, 2)
		assert.Equal(t, 1, snap.DailyOrders[0].OrderCount)
		assert.InDelta(t, 15.00, snap.DailyOrders[0].Revenue, 1e-9)
		assert.Len(t, snap.RFM, 2)
	})

	t.Run("parallel pipeline matches sequential", func(t *testing.T) {
		seq := newService(t, false)
		par := newService(t, true)

		want, err := seq.Snapshot(ctx, seq.Bounds())
		require.NoError(t, err)
		got, err := par.Snapshot(ctx, par.Bounds())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("narrow range excludes outside orders", func(t *testing.T) {
		svc := newService(t, false)
		snap, err := svc.Snapshot(ctx, window(t, "2024-01-03", "2024-01-03"))
		require.NoError(t, err)

		require.Len(t, snap.DailyOrders, 1)
		assert.Equal(t, 1, snap.DailyOrders[0].OrderCount)

		require.Len(t, snap.RFM, 1)
		assert.Equal(t, "RJ", snap.RFM[0].CustomerState)
		assert.Equal(t, 0, snap.RFM[0].Recency)
	})

	t.Run("summary totals and averages", func(t *testing.T) {
		svc := newService(t, false)
		summary, err := svc.Summary(ctx, svc.Bounds())
		require.NoError(t, err)

		assert.Equal(t, 2, summary.TotalOrders)
		assert.InDelta(t, 35.00, summary.TotalRevenue, 1e-9)
		// SP recency 2, RJ recency 0.
		assert.InDelta(t, 1.0, summary.AverageRecency, 1e-9)
		assert.InDelta(t, 1.0, summary.AverageFrequency, 1e-9)
		assert.InDelta(t, 17.50, summary.AverageMonetary, 1e-9)
	})
}

// TestRankProductSales tests the best/worst seller helper behind the
// category views
func TestRankProductSales(t *testing.T) {
	rows := []domain.ProductSalesRow{
		{Category: "beleza_saude", ItemCount: 30},
		{Category: "esporte_lazer", ItemCount: 10},
		{Category: "moveis_decoracao", ItemCount: 10},
		{Category: "pet_shop", ItemCount: 5},
	}

	t.Run("best sellers keep the descending order", func(t *testing.T) {
		got := RankProductSales(rows, 2, false)
		require.Len(t, got, 2)
		assert.Equal(t, "beleza_saude", got[0].Category)
		assert.Equal(t, "esporte_lazer", got[1].Category)
	})

	t.Run("worst sellers flip the order, ties stay stable", func(t *testing.T) {
		got := RankProductSales(rows, 3, true)
		require.Len(t, got, 3)
		assert.Equal(t, "pet_shop", got[0].Category)
		assert.Equal(t, "esporte_lazer", got[1].Category)
		assert.Equal(t, "moveis_decoracao", got[2].Category)
	})

	t.Run("zero limit returns the whole table", func(t *testing.T) {
		assert.Len(t, RankProductSales(rows, 0, true), len(rows))
	})

	t.Run("input untouched", func(t *testing.T) {
		RankProductSales(rows, 1, true)
		assert.Equal(t, "beleza_saude", rows[0].Category)
	})
}

// TestTopCustomerCounts tests the top-N helper used by the demographics views
func TestTopCustomerCounts(t *testing.T) {
	rows := []domain.CustomerCountRow{
		{Key: "SP", CustomerCount: 10},
		{Key: "RJ", CustomerCount: 30},
		{Key: "MG", CustomerCount: 20},
	}

	got := TopCustomerCounts(rows, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "RJ", got[0].Key)
	assert.Equal(t, "MG", got[1].Key)

	// Input order untouched.
	assert.Equal(t, "SP", rows[0].Key)
}
