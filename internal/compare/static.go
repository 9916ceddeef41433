package compare

import (
	"context"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// DataSets looks up loaded reference datasets by year.
type DataSets interface {
	Get(year int) (*calendar.ReferenceDataSet, bool)
	Years() []int
}

// StaticSource serves calendars from in-memory reference datasets.
type StaticSource struct {
	sets DataSets
}

// NewStaticSource creates a Source over sets.
func NewStaticSource(sets DataSets) *StaticSource {
	return &StaticSource{sets: sets}
}

// Calendar returns region's calendar for the year of from, extended with the
// datasets of any later years the range reaches into that are loaded.
// A missing dataset for from's year fails closed with UnsupportedYearError.
func (s *StaticSource) Calendar(_ context.Context, region calendar.Region, from, to calendar.Date) (*calendar.RegionCalendar, error) {
	ds, ok := s.sets.Get(from.Year)
	if !ok {
		return nil, &calendar.UnsupportedYearError{Year: from.Year, Available: s.sets.Years()}
	}
	cal, err := ds.Calendar(region)
	if err != nil {
		return nil, err
	}
	for year := from.Year + 1; year <= to.Year; year++ {
		next, ok := s.sets.Get(year)
		if !ok {
			continue
		}
		more, err := next.Calendar(region)
		if err != nil {
			return nil, err
		}
		cal = cal.Merge(more)
	}
	return cal, nil
}
