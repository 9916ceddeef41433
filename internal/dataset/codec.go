package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// Decode reads a JSON dataset and validates it.
func Decode(r io.Reader) (*calendar.ReferenceDataSet, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return FromFile(&f)
}

// FromFile converts the wire form into a validated ReferenceDataSet.
func FromFile(f *File) (*calendar.ReferenceDataSet, error) {
	ds := &calendar.ReferenceDataSet{
		Year:           f.Year,
		StateHolidays:  make(map[calendar.Region][]string),
		StateVacations: make(map[calendar.Region][]calendar.VacationPeriod),
	}

	var err error
	if ds.GermanHolidays, err = namedDates(f.Germany.Holidays); err != nil {
		return nil, fmt.Errorf("dataset %d: germany: %w", f.Year, err)
	}
	for code, state := range f.Germany.States {
		region, err := calendar.ParseRegion(code)
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", f.Year, err)
		}
		if state == nil {
			state = &StateData{}
		}
		ds.StateHolidays[region] = append([]string{}, state.Holidays...)
		if ds.StateVacations[region], err = vacations(state.Vacations, region); err != nil {
			return nil, fmt.Errorf("dataset %d: %s: %w", f.Year, code, err)
		}
	}

	if ds.DanishHolidays, err = namedDates(f.Denmark.Holidays); err != nil {
		return nil, fmt.Errorf("dataset %d: denmark: %w", f.Year, err)
	}
	if ds.DanishVacations, err = vacations(f.Denmark.Vacations, calendar.DenmarkRegion); err != nil {
		return nil, fmt.Errorf("dataset %d: denmark: %w", f.Year, err)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ToFile converts a dataset back into its wire form.
func ToFile(ds *calendar.ReferenceDataSet) *File {
	f := &File{
		Year: ds.Year,
		Germany: GermanyData{
			Holidays: holidayEntries(ds.GermanHolidays),
			States:   make(map[string]*StateData, len(ds.StateHolidays)),
		},
		Denmark: DenmarkData{
			Holidays:  holidayEntries(ds.DanishHolidays),
			Vacations: vacationEntries(ds.DanishVacations),
		},
	}
	regions := make([]calendar.Region, 0, len(ds.StateHolidays))
	for r := range ds.StateHolidays {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })
	for _, r := range regions {
		f.Germany.States[string(r)] = &StateData{
			Holidays:  append([]string{}, ds.StateHolidays[r]...),
			Vacations: vacationEntries(ds.StateVacations[r]),
		}
	}
	return f
}

// Encode writes ds as indented JSON.
func Encode(w io.Writer, ds *calendar.ReferenceDataSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToFile(ds))
}

func namedDates(entries []HolidayEntry) ([]calendar.NamedDate, error) {
	out := make([]calendar.NamedDate, 0, len(entries))
	for _, e := range entries {
		d, err := calendar.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", e.Name, err)
		}
		out = append(out, calendar.NamedDate{Name: e.Name, Date: d})
	}
	return out, nil
}

func vacations(entries []VacationEntry, region calendar.Region) ([]calendar.VacationPeriod, error) {
	out := make([]calendar.VacationPeriod, 0, len(entries))
	for _, e := range entries {
		start, err := calendar.ParseDate(e.Start)
		if err != nil {
			return nil, fmt.Errorf("vacation %q: %w", e.Name, err)
		}
		end, err := calendar.ParseDate(e.End)
		if err != nil {
			return nil, fmt.Errorf("vacation %q: %w", e.Name, err)
		}
		out = append(out, calendar.VacationPeriod{Name: e.Name, Start: start, End: end, Region: region})
	}
	return out, nil
}

func holidayEntries(dates []calendar.NamedDate) []HolidayEntry {
	out := make([]HolidayEntry, len(dates))
	for i, d := range dates {
		out[i] = HolidayEntry{Name: d.Name, Date: d.Date.String()}
	}
	return out
}

func vacationEntries(periods []calendar.VacationPeriod) []VacationEntry {
	out := make([]VacationEntry, len(periods))
	for i, v := range periods {
		out[i] = VacationEntry{Name: v.Name, Start: v.Start.String(), End: v.End.String()}
	}
	return out
}
