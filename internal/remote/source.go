package remote

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// Source resolves region calendars through the remote service.
// It implements compare.Source.
type Source struct {
	client  *Client
	mapping Mapping

	// PerDayHolidays queries public holidays one date at a time through the
	// by-date endpoint instead of one range request.
	PerDayHolidays bool
}

// NewSource validates mapping and creates a Source.
func NewSource(client *Client, mapping Mapping) (*Source, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	return &Source{client: client, mapping: mapping}, nil
}

// Calendar fetches the holidays and school vacations of region for the whole
// years spanned by [from, to].
func (s *Source) Calendar(ctx context.Context, region calendar.Region, from, to calendar.Date) (*calendar.RegionCalendar, error) {
	sr, err := s.mapping.Lookup(region)
	if err != nil {
		return nil, err
	}
	windowFrom := calendar.NewDate(from.Year, 1, 1)
	windowTo := calendar.NewDate(to.Year, 12, 31)

	var holidayRecords []Record
	if s.PerDayHolidays {
		holidayRecords, err = s.holidaysByDate(ctx, sr, from, to)
	} else {
		holidayRecords, err = s.client.PublicHolidays(ctx, sr, windowFrom, windowTo)
	}
	if err != nil {
		return nil, err
	}
	vacationRecords, err := s.client.SchoolHolidays(ctx, sr, windowFrom, windowTo)
	if err != nil {
		return nil, err
	}

	cal := &calendar.RegionCalendar{
		Region:    region,
		Holidays:  make([]calendar.HolidayRecord, 0, len(holidayRecords)),
		Vacations: make([]calendar.VacationPeriod, 0, len(vacationRecords)),
	}
	for _, rec := range holidayRecords {
		if !appliesTo(rec, sr) {
			continue
		}
		h, err := toHoliday(rec, sr, region)
		if err != nil {
			logging.Warn("skipping holiday record %q for %s: %v", rec.ID, region, err)
			continue
		}
		cal.Holidays = append(cal.Holidays, h)
	}
	for _, rec := range vacationRecords {
		if !appliesTo(rec, sr) {
			continue
		}
		v, err := toVacation(rec, sr, region)
		if err != nil {
			logging.Warn("skipping vacation record %q for %s: %v", rec.ID, region, err)
			continue
		}
		cal.Vacations = append(cal.Vacations, v)
	}
	logging.Debug("remote calendar %s: %d holidays, %d vacations", region, len(cal.Holidays), len(cal.Vacations))
	return cal, nil
}

func (s *Source) holidaysByDate(ctx context.Context, sr ServiceRegion, from, to calendar.Date) ([]Record, error) {
	var out []Record
	for d := from; !d.After(to); d = d.AddDays(1) {
		if err := ctx.Err(); err != nil {
			return nil, s.client.unavailable(err)
		}
		records, err := s.client.PublicHolidaysByDate(ctx, d, sr.Language)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.Country != nil && !strings.EqualFold(rec.Country.IsoCode, sr.Country) {
				continue
			}
			if rec.Date == "" && rec.StartDate == "" {
				rec.Date = d.ISO()
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// appliesTo keeps nationwide records, records without subdivisions and those
// listing the region's subdivision.
func appliesTo(rec Record, sr ServiceRegion) bool {
	if sr.Subdivision == "" || rec.Nationwide || len(rec.Subdivisions) == 0 {
		return true
	}
	for _, sub := range rec.Subdivisions {
		if strings.EqualFold(sub.Code, sr.Subdivision) || strings.HasPrefix(strings.ToUpper(sub.Code), strings.ToUpper(sr.Subdivision)+"-") {
			return true
		}
	}
	return false
}

func recordName(rec Record, language string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(rec.Name.In(language)))
	if name == "" {
		return "", calendar.ErrEmptyName
	}
	return name, nil
}

func toHoliday(rec Record, sr ServiceRegion, region calendar.Region) (calendar.HolidayRecord, error) {
	name, err := recordName(rec, sr.Language)
	if err != nil {
		return calendar.HolidayRecord{}, err
	}
	raw := rec.Date
	if raw == "" {
		raw = rec.StartDate
	}
	d, err := calendar.ParseISODate(raw)
	if err != nil {
		return calendar.HolidayRecord{}, fmt.Errorf("date %q: %w", raw, err)
	}
	h := calendar.HolidayRecord{Name: name, Date: d, Country: region.Country()}
	return h, h.Validate()
}

func toVacation(rec Record, sr ServiceRegion, region calendar.Region) (calendar.VacationPeriod, error) {
	name, err := recordName(rec, sr.Language)
	if err != nil {
		return calendar.VacationPeriod{}, err
	}
	start, err := calendar.ParseISODate(rec.StartDate)
	if err != nil {
		return calendar.VacationPeriod{}, fmt.Errorf("start %q: %w", rec.StartDate, err)
	}
	end, err := calendar.ParseISODate(rec.EndDate)
	if err != nil {
		return calendar.VacationPeriod{}, fmt.Errorf("end %q: %w", rec.EndDate, err)
	}
	v := calendar.VacationPeriod{Name: name, Start: start, End: end, Region: region}
	return v, v.Validate()
}
