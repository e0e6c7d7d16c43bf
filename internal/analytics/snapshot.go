package analytics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"ecompulse/pkg/contracts/domain"
)

// tracerName identifies this package's spans in trace output.
const tracerName = "ecompulse/analytics"

// Snapshot holds the six derived tables computed from one filtered view.
// A snapshot is ephemeral: it is recomputed from scratch on every range
// change and never cached across them.
type Snapshot struct {
	Window           DateRange                 `json:"window"`
	DailyOrders      []domain.DailyOrdersRow   `json:"daily_orders"`
	ProductSales     []domain.ProductSalesRow  `json:"product_sales"`
	ReviewScores     []domain.ReviewScoreRow   `json:"review_scores"`
	CustomersByState []domain.CustomerCountRow `json:"customers_by_state"`
	CustomersByCity  []domain.CustomerCountRow `json:"customers_by_city"`
	RFM              []domain.RFMRow           `json:"rfm"`
}

// Compute runs all six aggregators sequentially over the filtered rows.
// The rows slice is treated as a read-only view; nothing here mutates it.
func Compute(ctx context.Context, rows []domain.OrderLine, window DateRange) *Snapshot {
	_, span := otel.Tracer(tracerName).Start(ctx, "analytics.Compute")
	defer span.End()
	span.SetAttributes(
		attribute.String("window", window.String()),
		attribute.Int("row_count", len(rows)),
	)

	return &Snapshot{
		Window:           window,
		DailyOrders:      DailyOrders(rows),
		ProductSales:     ProductSales(rows),
		ReviewScores:     ReviewByCategory(rows),
		CustomersByState: CustomersByState(rows),
		CustomersByCity:  CustomersByCity(rows),
		RFM:              RFM(rows),
	}
}

// ComputeParallel runs the six aggregators concurrently, one goroutine each.
// The aggregators share only read access to rows and write disjoint fields of
// the snapshot, so no synchronization beyond the group wait is needed. This is
// purely a wall-clock optimization over Compute; both produce identical output.
func ComputeParallel(ctx context.Context, rows []domain.OrderLine, window DateRange) (*Snapshot, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "analytics.ComputeParallel")
	defer span.End()
	span.SetAttributes(
		attribute.String("window", window.String()),
		attribute.Int("row_count", len(rows)),
	)

	snap := &Snapshot{Window: window}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error { snap.DailyOrders = DailyOrders(rows); return nil })
	g.Go(func() error { snap.ProductSales = ProductSales(rows); return nil })
	g.Go(func() error { snap.ReviewScores = ReviewByCategory(rows); return nil })
	g.Go(func() error { snap.CustomersByState = CustomersByState(rows); return nil })
	g.Go(func() error { snap.CustomersByCity = CustomersByCity(rows); return nil })
	g.Go(func() error { snap.RFM = RFM(rows); return nil })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
