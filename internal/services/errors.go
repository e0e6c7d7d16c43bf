package services

import "errors"

// Dashboard service errors
var (
	// ErrInvalidRange is returned when the requested start date is after the
	// end date. The filter itself would quietly produce an empty view; the
	// service rejects the request instead so API callers can tell an invalid
	// range apart from a range that genuinely holds no orders.
	ErrInvalidRange = errors.New("invalid date range: start after end")

	// ErrDatasetEmpty is returned when the loaded dataset holds no rows.
	ErrDatasetEmpty = errors.New("dataset is empty")
)
