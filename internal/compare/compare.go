// Package compare resolves a date range against a German state's calendar and
// Denmark's calendar and aggregates the matches into a ComparisonResult.
package compare

import (
	"context"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// Source supplies the calendar of a region covering at least [from, to].
type Source interface {
	Calendar(ctx context.Context, region calendar.Region, from, to calendar.Date) (*calendar.RegionCalendar, error)
}

// Comparator runs comparisons against a Source. It holds no per-query state
// and is safe for concurrent use when the Source is.
type Comparator struct {
	source Source
}

// New creates a Comparator backed by source.
func New(source Source) *Comparator {
	return &Comparator{source: source}
}

// Compare validates nothing itself; q must come from ParseQuery.
// Records are selected by interval intersection, one pass per calendar.
func (c *Comparator) Compare(ctx context.Context, q Query) (Result, error) {
	m, err := c.Matches(ctx, q)
	if err != nil {
		return Result{}, err
	}
	return m.Result(), nil
}

// Matches returns the records of both calendars intersecting the query range.
// A holiday matches when from <= date <= to, a vacation when
// start <= to and end >= from.
func (c *Comparator) Matches(ctx context.Context, q Query) (*Matches, error) {
	de, dk, err := c.calendars(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Matches{
		Query: q,
		DE:    filterSide(de, q.From, q.To),
		DK:    filterSide(dk, q.From, q.To),
	}, nil
}

// CompareDaily walks the range day by day through the Single-Date Classifier.
// It yields the same Result as Compare and honours cancellation between days.
func (c *Comparator) CompareDaily(ctx context.Context, q Query) (Result, error) {
	de, dk, err := c.calendars(ctx, q)
	if err != nil {
		return Result{}, err
	}

	deHolidays, deVacations := make(nameSet), make(nameSet)
	dkHolidays, dkVacations := make(nameSet), make(nameSet)
	for d := q.From; !d.After(q.To); d = d.AddDays(1) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		deDay := calendar.Classify(de, d)
		deHolidays.add(deDay.Holidays...)
		deVacations.add(deDay.Vacations...)

		dkDay := calendar.Classify(dk, d)
		dkHolidays.add(dkDay.Holidays...)
		dkVacations.add(dkDay.Vacations...)
	}

	return Result{
		DEHolidays:  deHolidays.sorted(),
		DEVacations: deVacations.sorted(),
		DKHolidays:  dkHolidays.sorted(),
		DKVacations: dkVacations.sorted(),
	}, nil
}

func (c *Comparator) calendars(ctx context.Context, q Query) (de, dk *calendar.RegionCalendar, err error) {
	de, err = c.source.Calendar(ctx, q.Region, q.From, q.To)
	if err != nil {
		return nil, nil, err
	}
	dk, err = c.source.Calendar(ctx, calendar.DenmarkRegion, q.From, q.To)
	if err != nil {
		return nil, nil, err
	}
	return de, dk, nil
}

type holidayKey struct {
	name string
	date calendar.Date
}

type vacationKey struct {
	name       string
	start, end calendar.Date
}

func filterSide(cal *calendar.RegionCalendar, from, to calendar.Date) Side {
	side := Side{Region: cal.Region}
	seenH := make(map[holidayKey]bool)
	for _, h := range cal.Holidays {
		k := holidayKey{h.Name, h.Date}
		if h.Within(from, to) && !seenH[k] {
			seenH[k] = true
			side.Holidays = append(side.Holidays, h)
		}
	}
	seenV := make(map[vacationKey]bool)
	for _, v := range cal.Vacations {
		k := vacationKey{v.Name, v.Start, v.End}
		if v.Overlaps(from, to) && !seenV[k] {
			seenV[k] = true
			side.Vacations = append(side.Vacations, v)
		}
	}
	return side
}
