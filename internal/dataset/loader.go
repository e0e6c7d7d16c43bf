// Package dataset loads the order-line table that feeds the analytics
// pipeline. It reads the flat CSV export the dashboard was built around
// (one row per order line) and, because operations teams keep mailing the
// same data as spreadsheets, the equivalent XLSX layout.
//
// Loading is strict about the temporal key: a row whose purchase timestamp
// does not parse is a hard error, never a silent drop. The returned table is
// canonical: sorted ascending by purchase timestamp.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ecompulse/internal/analytics"
	apperrors "ecompulse/internal/errors"
	"ecompulse/pkg/contracts/domain"
)

// timestampFormats are tried in order when parsing temporal columns.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// Column names expected in the header row, matched case-insensitively.
const (
	colOrderID           = "order_id"
	colOrderItemID       = "order_item_id"
	colCategory          = "product_category_name"
	colCustomerID        = "customer_id"
	colCustomerState     = "customer_state"
	colCustomerCity      = "customer_city"
	colReviewScore       = "review_score"
	colPrice             = "price"
	colPurchaseTimestamp = "order_purchase_timestamp"
	colEstimatedDelivery = "order_estimated_delivery_date"
)

// Loader reads order-line datasets from disk.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataset_loader"))}
}

// Load reads the dataset at path, dispatching on the file extension
// (.csv or .xlsx), and returns the canonical sorted table.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.OrderLine, error) {
	l.logger.InfoContext(ctx, "loading order dataset", slog.String("path", path))

	var (
		rows []domain.OrderLine
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = l.loadCSV(path)
	case ".xlsx":
		rows, err = l.loadXLSX(path)
	default:
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("unsupported dataset format: %s", filepath.Ext(path)))
	}
	if err != nil {
		return nil, err
	}

	analytics.SortByPurchaseTime(rows)

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// loadCSV reads the order-line table from a CSV file with a header row.
func (l *Loader) loadCSV(path string) ([]domain.OrderLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open dataset file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read dataset header", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	var rows []domain.OrderLine
	for lineNum := 2; ; lineNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("failed to read dataset record (line %d)", lineNum), err)
		}

		row, err := parseRecord(record, cols, source, lineNum)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// loadXLSX reads the order-line table from the first sheet of a workbook.
func (l *Loader) loadXLSX(path string) ([]domain.OrderLine, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet rows", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("worksheet is empty", nil)
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	var rows []domain.OrderLine
	for i, record := range records[1:] {
		row, err := parseRecord(record, cols, source, i+2)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// columnIndex maps logical column names to their position in a record.
type columnIndex map[string]int

// mapHeader builds the column index, requiring every documented column.
func mapHeader(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	required := []string{
		colOrderID, colOrderItemID, colCategory, colCustomerID,
		colCustomerState, colCustomerCity, colReviewScore, colPrice,
		colPurchaseTimestamp, colEstimatedDelivery,
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("dataset header missing column %q", name), nil)
		}
	}
	return cols, nil
}

// parseRecord converts one record into an OrderLine.
func parseRecord(record []string, cols columnIndex, source string, lineNum int) (domain.OrderLine, error) {
	get := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	purchase, err := parseTimestamp(get(colPurchaseTimestamp))
	if err != nil || purchase.IsZero() {
		if err == nil {
			err = fmt.Errorf("empty timestamp")
		}
		return domain.OrderLine{}, apperrors.NewTimestampError(source, lineNum, err)
	}

	// The delivery estimate is occasionally absent in exports; an empty cell
	// is tolerated, an unparseable one is not.
	var delivery time.Time
	if raw := get(colEstimatedDelivery); raw != "" {
		if delivery, err = parseTimestamp(raw); err != nil {
			return domain.OrderLine{}, apperrors.NewTimestampError(source, lineNum, err)
		}
	}

	itemID, err := parseIntField(get(colOrderItemID))
	if err != nil {
		return domain.OrderLine{}, apperrors.NewParsingError(
			fmt.Sprintf("parse order_item_id (line %d)", lineNum), err)
	}

	price, err := parseFloatField(get(colPrice))
	if err != nil {
		return domain.OrderLine{}, apperrors.NewParsingError(
			fmt.Sprintf("parse price (line %d)", lineNum), err)
	}

	// Review scores arrive as floats ("4.0") from the upstream export;
	// an empty cell means the order was never reviewed.
	score := 0
	if raw := get(colReviewScore); raw != "" {
		if score, err = parseIntField(raw); err != nil {
			return domain.OrderLine{}, apperrors.NewParsingError(
				fmt.Sprintf("parse review_score (line %d)", lineNum), err)
		}
	}

	return domain.OrderLine{
		OrderID:               get(colOrderID),
		OrderItemID:           itemID,
		ProductCategory:       get(colCategory),
		CustomerID:            get(colCustomerID),
		CustomerState:         get(colCustomerState),
		CustomerCity:          get(colCustomerCity),
		ReviewScore:           score,
		Price:                 price,
		PurchaseTimestamp:     purchase,
		EstimatedDeliveryDate: delivery,
	}, nil
}

// parseTimestamp tries the supported timestamp layouts in order.
func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", raw)
}

// parseIntField parses integers that may arrive float-formatted ("1.0").
func parseIntField(raw string) (int, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// parseFloatField parses a float, treating an empty cell as zero.
func parseFloatField(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
