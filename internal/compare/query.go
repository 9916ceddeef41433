package compare

import (
	"strings"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// MaxRangeDays allows one leap year and year-spanning ranges such as 24.12. to 06.01.
const MaxRangeDays = 366

// Query is a validated comparison request.
type Query struct {
	From   calendar.Date
	To     calendar.Date
	Region calendar.Region
	Year   int
}

// Days returns the number of days between From and To (0 for a single day).
func (q Query) Days() int {
	return q.From.DaysUntil(q.To)
}

// ParseQuery validates raw caller input. Checks run in a fixed order and the
// first failure is returned: date format, from <= to, from in year, span
// length, then region code.
func ParseQuery(from, to, region string, year int) (Query, error) {
	fromDate, err := parseField("from", from)
	if err != nil {
		return Query{}, err
	}
	toDate, err := parseField("to", to)
	if err != nil {
		return Query{}, err
	}
	q := Query{From: fromDate, To: toDate, Year: year}
	if err := q.validate(); err != nil {
		return Query{}, err
	}
	q.Region, err = calendar.ParseRegion(region)
	if err != nil {
		return Query{}, err
	}
	return q, nil
}

// Validate re-checks the date invariants of an already built query.
func (q Query) Validate() error {
	if err := q.validate(); err != nil {
		return err
	}
	_, err := calendar.ParseRegion(string(q.Region))
	return err
}

func (q Query) validate() error {
	if q.To.Before(q.From) {
		return &InvalidRangeError{From: q.From, To: q.To}
	}
	if q.From.Year != q.Year {
		return &YearMismatchError{From: q.From, Year: q.Year}
	}
	if days := q.Days(); days > MaxRangeDays {
		return &RangeTooLongError{Days: days, Max: MaxRangeDays}
	}
	return nil
}

func parseField(field, value string) (calendar.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return calendar.Date{}, &InvalidFormatError{Field: field, Value: value}
	}
	d, err := calendar.ParseDate(value)
	if err != nil {
		return calendar.Date{}, &InvalidFormatError{Field: field, Value: value}
	}
	return d, nil
}
