// Package exporter writes the derived dashboard tables to CSV files so the
// aggregates can be consumed outside the HTTP API (spreadsheets, BI imports).
// Values are written as plain numbers; currency formatting is left to the
// consumer, matching the core's output contract.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CSVWriter writes tabular data into an output directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at dir
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger.With(slog.String("component", "csv_exporter"))}
}

// WriteTable writes one table (header plus records) to name within the
// output directory, creating the directory as needed.
func (w *CSVWriter) WriteTable(name string, header []string, records [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	w.logger.Info("table exported",
		slog.String("path", path),
		slog.Int("record_count", len(records)))
	return writer.Error()
}
