package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"ecompulse/internal/analytics"
	"ecompulse/internal/infrastructure"
	"ecompulse/pkg/contracts/domain"
)

// DashboardService owns the canonical order-line table and answers dashboard
// queries by filtering it to a date range and recomputing the derived tables.
// The table is loaded once and never mutated afterwards; every query works on
// a fresh snapshot, so concurrent requests need no locking.
type DashboardService struct {
	table    []domain.OrderLine
	bounds   analytics.DateRange
	parallel bool
	logger   *slog.Logger
	metrics  *infrastructure.Metrics
}

// NewDashboardService creates a dashboard service over a canonical (sorted)
// order-line table. The metrics collector is optional.
func NewDashboardService(table []domain.OrderLine, parallel bool, logger *slog.Logger, metrics *infrastructure.Metrics) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bounds, err := analytics.DataBounds(table)
	if err != nil {
		return nil, ErrDatasetEmpty
	}

	logger.Info("dashboard service initialized",
		slog.Int("row_count", len(table)),
		slog.String("data_range", bounds.String()))

	return &DashboardService{
		table:    table,
		bounds:   bounds,
		parallel: parallel,
		logger:   logger.With(slog.String("component", "dashboard_service")),
		metrics:  metrics,
	}, nil
}

// Bounds returns the full date range covered by the dataset. The dashboard
// uses it as the default filter window and to clamp date pickers.
func (s *DashboardService) Bounds() analytics.DateRange {
	return s.bounds
}

// Snapshot filters the table to the inclusive range and computes all six
// derived tables. An inverted range is rejected with ErrInvalidRange.
func (s *DashboardService) Snapshot(ctx context.Context, window analytics.DateRange) (*analytics.Snapshot, error) {
	if !window.IsValid() {
		return nil, ErrInvalidRange
	}

	start := time.Now()
	rows := analytics.Filter(s.table, window)

	var (
		snap *analytics.Snapshot
		err  error
	)
	if s.parallel {
		snap, err = analytics.ComputeParallel(ctx, rows, window)
	} else {
		snap = analytics.Compute(ctx, rows, window)
	}
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
		s.metrics.SnapshotRows.Observe(float64(len(rows)))
	}

	s.logger.InfoContext(ctx, "snapshot computed",
		slog.String("window", window.String()),
		slog.Int("filtered_rows", len(rows)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return snap, nil
}

// Summary computes the headline dashboard metrics for the range: order and
// revenue totals from the daily series plus average recency, frequency and
// monetary value across states. All values stay numeric; formatting is the
// presentation layer's job.
func (s *DashboardService) Summary(ctx context.Context, window analytics.DateRange) (*domain.DashboardSummary, error) {
	snap, err := s.Snapshot(ctx, window)
	if err != nil {
		return nil, err
	}

	summary := &domain.DashboardSummary{From: window.Start, To: window.End}

	for _, row := range snap.DailyOrders {
		summary.TotalOrders += row.OrderCount
		summary.TotalRevenue += row.Revenue
	}

	if n := len(snap.RFM); n > 0 {
		var recency, frequency, monetary float64
		for _, row := range snap.RFM {
			recency += float64(row.Recency)
			frequency += float64(row.Frequency)
			monetary += row.Monetary
		}
		summary.AverageRecency = recency / float64(n)
		summary.AverageFrequency = frequency / float64(n)
		summary.AverageMonetary = monetary / float64(n)
	}

	return summary, nil
}

// RankProductSales returns the n best selling categories, or the n worst
// when ascending is true. The input is already sorted descending with
// first-appearance tie order; the stable re-sort keeps that tie order in
// the ascending view. The input is not modified.
func RankProductSales(rows []domain.ProductSalesRow, n int, ascending bool) []domain.ProductSalesRow {
	out := make([]domain.ProductSalesRow, len(rows))
	copy(out, rows)
	if ascending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ItemCount < out[j].ItemCount
		})
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopCustomerCounts returns the n largest rows of a geographic table,
// descending by customer count with stable ties. The input is not modified.
func TopCustomerCounts(rows []domain.CustomerCountRow, n int) []domain.CustomerCountRow {
	out := make([]domain.CustomerCountRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CustomerCount > out[j].CustomerCount
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
