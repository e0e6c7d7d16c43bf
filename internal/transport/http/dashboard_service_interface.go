package http

import (
	"context"

	"ecompulse/internal/analytics"
	"ecompulse/pkg/contracts/domain"
)

// DashboardServiceInterface is the service contract the handlers depend on.
// Tests substitute a stub; production wires internal/services.DashboardService.
type DashboardServiceInterface interface {
	// Bounds returns the full date range covered by the loaded dataset.
	Bounds() analytics.DateRange

	// Snapshot computes the six derived tables for the inclusive range.
	Snapshot(ctx context.Context, window analytics.DateRange) (*analytics.Snapshot, error)

	// Summary computes the headline metrics for the inclusive range.
	Summary(ctx context.Context, window analytics.DateRange) (*domain.DashboardSummary, error)
}
