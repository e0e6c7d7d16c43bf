// Package analytics computes the derived dashboard tables from an in-memory
// table of order lines. It is the computational core of the service: a range
// filter plus six independent aggregators, each a pure function from a
// read-only slice of order lines to a new output table.
//
// # Architecture
//
// The package has three layers:
//
// 1. DateRange/Filter: restricts the canonical table to an inclusive calendar-date window
// 2. Aggregators: DailyOrders, ProductSales, ReviewByCategory, CustomersByState, CustomersByCity, RFM
// 3. Snapshot: runs all six aggregators over one filtered view
//
// # Usage
//
//	window := analytics.NewDateRange(from, to)
//	rows := analytics.Filter(table, window)
//	snap := analytics.Compute(ctx, rows, window)
//
// # Data Flow
//
//	CanonicalTable → Filter → FilteredTable → {six aggregators} → Snapshot
//
// No aggregator reads another's output and none mutates its input, so the six
// computations are safe to run concurrently; ComputeParallel does exactly that.
// Correctness never depends on that concurrency.
//
// # Conventions
//
// All grouping is by value equality on the grouping key. Rows with a missing
// product category are kept under domain.UnknownCategory rather than dropped.
// Day boundaries are midnight in the timestamp's own location; no time zone
// conversion is performed anywhere in the package.
package analytics
