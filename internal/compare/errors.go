package compare

import (
	"fmt"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// Error kinds as reported to the presentation layer.
const (
	KindInvalidFormat         = "invalid_format"
	KindInvalidRange          = "invalid_range"
	KindYearMismatch          = "year_mismatch"
	KindRangeTooLong          = "range_too_long"
	KindUnknownRegion         = "unknown_region"
	KindUnsupportedYear       = "unsupported_year"
	KindDataSourceUnavailable = "data_source_unavailable"
)

// InvalidFormatError reports a date string that does not match DD.MM.YYYY.
type InvalidFormatError struct {
	Field string
	Value string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: invalid date %q, expected DD.MM.YYYY", e.Field, e.Value)
}

// InvalidRangeError reports from > to.
type InvalidRangeError struct {
	From calendar.Date
	To   calendar.Date
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("from must precede to (from %s, to %s)", e.From, e.To)
}

// YearMismatchError reports a from date outside the selected year.
type YearMismatchError struct {
	From calendar.Date
	Year int
}

func (e *YearMismatchError) Error() string {
	return fmt.Sprintf("from date %s is not in selected year %d", e.From, e.Year)
}

// RangeTooLongError reports a span longer than MaxRangeDays.
type RangeTooLongError struct {
	Days int
	Max  int
}

func (e *RangeTooLongError) Error() string {
	return fmt.Sprintf("range spans %d days, maximum is %d", e.Days, e.Max)
}

// DataSourceUnavailableError reports a failed or timed out fetch from a
// remote holiday source. It is surfaced without retrying at this layer.
type DataSourceUnavailableError struct {
	Source string
	Err    error
}

func (e *DataSourceUnavailableError) Error() string {
	return fmt.Sprintf("data source %s unavailable: %v", e.Source, e.Err)
}

func (e *DataSourceUnavailableError) Unwrap() error {
	return e.Err
}
