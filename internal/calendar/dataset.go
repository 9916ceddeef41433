package calendar

import (
	"fmt"
	"sort"
)

// NamedDate pairs a holiday name with its date in a country-level table.
type NamedDate struct {
	Name string
	Date Date
}

// ReferenceDataSet is the literal holiday and vacation data for one reference
// year. It is loaded once and treated as read-only configuration.
//
// German public holidays are kept as one country-level table; each state lists
// the names it observes, so a state's holidays are derived by filtering.
type ReferenceDataSet struct {
	Year            int
	GermanHolidays  []NamedDate
	StateHolidays   map[Region][]string
	StateVacations  map[Region][]VacationPeriod
	DanishHolidays  []NamedDate
	DanishVacations []VacationPeriod
}

// Calendar derives the RegionCalendar for region.
func (ds *ReferenceDataSet) Calendar(region Region) (*RegionCalendar, error) {
	if region == DenmarkRegion {
		cal := &RegionCalendar{Region: region}
		for _, h := range ds.DanishHolidays {
			cal.Holidays = append(cal.Holidays, HolidayRecord{Name: h.Name, Date: h.Date, Country: Denmark})
		}
		cal.Vacations = append(cal.Vacations, ds.DanishVacations...)
		return cal, nil
	}
	if !region.IsGerman() {
		return nil, &UnknownRegionError{Code: string(region), Valid: validCodes()}
	}

	observed := make(map[string]bool, len(ds.StateHolidays[region]))
	for _, name := range ds.StateHolidays[region] {
		observed[name] = true
	}
	cal := &RegionCalendar{Region: region}
	for _, h := range ds.GermanHolidays {
		if observed[h.Name] {
			cal.Holidays = append(cal.Holidays, HolidayRecord{Name: h.Name, Date: h.Date, Country: Germany})
		}
	}
	cal.Vacations = append(cal.Vacations, ds.StateVacations[region]...)
	return cal, nil
}

// Classify resolves a single date against region's calendar.
func (ds *ReferenceDataSet) Classify(d Date, region Region) (Classification, error) {
	cal, err := ds.Calendar(region)
	if err != nil {
		return Classification{}, err
	}
	return Classify(cal, d), nil
}

// Validate checks the dataset is complete and internally consistent.
func (ds *ReferenceDataSet) Validate() error {
	if ds.Year <= 0 {
		return fmt.Errorf("dataset: invalid year %d", ds.Year)
	}
	german := make(map[string]bool, len(ds.GermanHolidays))
	for _, h := range ds.GermanHolidays {
		rec := HolidayRecord{Name: h.Name, Date: h.Date, Country: Germany}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("dataset %d: german holiday %q: %w", ds.Year, h.Name, err)
		}
		german[h.Name] = true
	}
	for _, h := range ds.DanishHolidays {
		rec := HolidayRecord{Name: h.Name, Date: h.Date, Country: Denmark}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("dataset %d: danish holiday %q: %w", ds.Year, h.Name, err)
		}
	}
	for _, state := range germanStates {
		names, ok := ds.StateHolidays[state]
		if !ok {
			return fmt.Errorf("dataset %d: missing holidays for %s", ds.Year, state)
		}
		for _, name := range names {
			if !german[name] {
				return fmt.Errorf("dataset %d: %s observes unknown holiday %q", ds.Year, state, name)
			}
		}
		if _, ok := ds.StateVacations[state]; !ok {
			return fmt.Errorf("dataset %d: missing vacations for %s", ds.Year, state)
		}
		for _, v := range ds.StateVacations[state] {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("dataset %d: %s vacation %q: %w", ds.Year, state, v.Name, err)
			}
		}
	}
	for region := range ds.StateHolidays {
		if !region.IsGerman() {
			return &UnknownRegionError{Code: string(region), Valid: validCodes()}
		}
	}
	for region := range ds.StateVacations {
		if !region.IsGerman() {
			return &UnknownRegionError{Code: string(region), Valid: validCodes()}
		}
	}
	for _, v := range ds.DanishVacations {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("dataset %d: danish vacation %q: %w", ds.Year, v.Name, err)
		}
	}
	return nil
}

// SortedYears returns the years of the given datasets in ascending order.
func SortedYears(sets map[int]*ReferenceDataSet) []int {
	years := make([]int, 0, len(sets))
	for y := range sets {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
