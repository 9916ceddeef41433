package calendar

import (
	"fmt"
	"strings"
)

// UnknownRegionError is returned for a region code outside the canonical set.
type UnknownRegionError struct {
	Code  string
	Valid []string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region %q, valid: %s", e.Code, strings.Join(e.Valid, ", "))
}

// UnsupportedYearError is returned when no reference data exists for a year.
type UnsupportedYearError struct {
	Year      int
	Available []int
}

func (e *UnsupportedYearError) Error() string {
	years := make([]string, len(e.Available))
	for i, y := range e.Available {
		years[i] = fmt.Sprint(y)
	}
	return fmt.Sprintf("no calendar data for year %d (available: %s)", e.Year, strings.Join(years, ", "))
}
