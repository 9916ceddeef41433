package calendar

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrEmptyDate    = errors.New("date cannot be zero")
	ErrInvalidDates = errors.New("start date must be before or equal to end date")
)

// HolidayRecord is a named public holiday (Feiertag) on a single date.
type HolidayRecord struct {
	Name    string
	Date    Date
	Country Country
}

// Validate checks the record is usable.
func (h HolidayRecord) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if h.Date.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// Within reports whether the holiday falls on a day in [from, to].
func (h HolidayRecord) Within(from, to Date) bool {
	return h.Date.InRange(from, to)
}

// VacationPeriod is a named school vacation (Ferien) with inclusive bounds.
type VacationPeriod struct {
	Name   string
	Start  Date
	End    Date
	Region Region
}

// Validate checks the name and that Start <= End.
func (v VacationPeriod) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return ErrEmptyName
	}
	if v.Start.IsZero() || v.End.IsZero() {
		return ErrEmptyDate
	}
	if v.End.Before(v.Start) {
		return ErrInvalidDates
	}
	return nil
}

// Contains reports whether d lies within the period, bounds included.
func (v VacationPeriod) Contains(d Date) bool {
	return d.InRange(v.Start, v.End)
}

// Overlaps reports whether the period intersects [from, to].
func (v VacationPeriod) Overlaps(from, to Date) bool {
	return !v.Start.After(to) && !v.End.Before(from)
}

// RegionCalendar holds everything known about one region. It is never mutated
// after construction, so it may be shared between concurrent queries.
type RegionCalendar struct {
	Region    Region
	Holidays  []HolidayRecord
	Vacations []VacationPeriod
}

// Merge returns a new calendar with the records of both calendars.
// Both must describe the same region.
func (c *RegionCalendar) Merge(other *RegionCalendar) *RegionCalendar {
	out := &RegionCalendar{
		Region:    c.Region,
		Holidays:  make([]HolidayRecord, 0, len(c.Holidays)+len(other.Holidays)),
		Vacations: make([]VacationPeriod, 0, len(c.Vacations)+len(other.Vacations)),
	}
	out.Holidays = append(append(out.Holidays, c.Holidays...), other.Holidays...)
	out.Vacations = append(append(out.Vacations, c.Vacations...), other.Vacations...)
	return out
}
