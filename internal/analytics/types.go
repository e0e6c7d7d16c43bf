package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyTable is returned by computations that are undefined over an empty
// table, such as the global maximum purchase date.
var ErrEmptyTable = errors.New("analytics: empty table")

// DateRange is an inclusive calendar-date window. Both bounds are normalized
// to midnight; the time of day of incoming timestamps is ignored when testing
// membership, so a row at 23:59 on End is inside the range.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range from two timestamps, stripping their time of day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: dateOnly(start), End: dateOnly(end)}
}

// IsValid reports whether the range is well ordered (Start <= End).
// Filtering with an inverted range yields an empty result rather than an
// error; callers that need to distinguish the two check IsValid first.
func (dr DateRange) IsValid() bool {
	return !dr.Start.After(dr.End)
}

// Contains reports whether the timestamp's date component falls inside the range.
func (dr DateRange) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(dr.Start) && !d.After(dr.End)
}

// Days returns the number of calendar days the range spans, inclusive.
func (dr DateRange) Days() int {
	if !dr.IsValid() {
		return 0
	}
	return int(dr.End.Sub(dr.Start).Hours()/24) + 1
}

// String returns the range in "YYYY-MM-DD..YYYY-MM-DD" form for logging.
func (dr DateRange) String() string {
	return fmt.Sprintf("%s..%s", dr.Start.Format("2006-01-02"), dr.End.Format("2006-01-02"))
}

// dateOnly strips the time of day, keeping the timestamp's own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b. Both arguments are
// normalized first, so partial days never round into the count.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
