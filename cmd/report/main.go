package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ecompulse/internal/analytics"
	"ecompulse/internal/dataset"
	"ecompulse/internal/exporter"
	"ecompulse/pkg/contracts/domain"
)

const dateLayout = "2006-01-02"

func main() {
	dataPath := flag.String("data", "data/all_data.csv", "path to the order line dataset (.csv or .xlsx)")
	outputDir := flag.String("out", "reports", "output directory for the exported tables")
	fromArg := flag.String("from", "", "start date of the analysis window (YYYY-MM-DD, defaults to the earliest order)")
	toArg := flag.String("to", "", "end date of the analysis window (YYYY-MM-DD, defaults to the latest order)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	loader := dataset.NewLoader(logger)
	rows, err := loader.Load(context.Background(), *dataPath)
	if err != nil {
		logger.Error("Failed to load dataset", "path", *dataPath, "error", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		logger.Error("Dataset contains no order lines", "path", *dataPath)
		os.Exit(1)
	}

	window, err := resolveWindow(rows, *fromArg, *toArg)
	if err != nil {
		logger.Error("Invalid analysis window", "error", err)
		os.Exit(1)
	}
	logger.Info("Computing dashboard snapshot", "window", window.String(), "rows", len(rows))

	snapshot := analytics.Compute(context.Background(), analytics.Filter(rows, window), window)

	writer := exporter.NewCSVWriter(*outputDir, logger)
	if err := writer.WriteSnapshot(snapshot); err != nil {
		logger.Error("Failed to write report", "dir", *outputDir, "error", err)
		os.Exit(1)
	}
	logger.Info("Report written", "dir", *outputDir)
}

// resolveWindow builds the analysis window from the flags, falling back to
// the dataset bounds for whichever side is missing.
func resolveWindow(rows []domain.OrderLine, fromArg, toArg string) (analytics.DateRange, error) {
	bounds, err := analytics.DataBounds(rows)
	if err != nil {
		return analytics.DateRange{}, err
	}

	start := bounds.Start
	if fromArg != "" {
		start, err = time.Parse(dateLayout, fromArg)
		if err != nil {
			return analytics.DateRange{}, fmt.Errorf("parse -from: %w", err)
		}
	}
	end := bounds.End
	if toArg != "" {
		end, err = time.Parse(dateLayout, toArg)
		if err != nil {
			return analytics.DateRange{}, fmt.Errorf("parse -to: %w", err)
		}
	}

	window := analytics.NewDateRange(start, end)
	if !window.IsValid() {
		return analytics.DateRange{}, fmt.Errorf("start %s is after end %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	return window, nil
}
