package compare

import (
	"sort"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// Result is the per-country, per-category outcome of a comparison.
// Every list is sorted and free of duplicates.
type Result struct {
	DEHolidays  []string `json:"de_holidays"`
	DEVacations []string `json:"de_vacations"`
	DKHolidays  []string `json:"dk_holidays"`
	DKVacations []string `json:"dk_vacations"`
}

// Side holds the records of one country that intersect the query range.
type Side struct {
	Region    calendar.Region
	Holidays  []calendar.HolidayRecord
	Vacations []calendar.VacationPeriod
}

// Matches holds the intersecting records for both countries.
type Matches struct {
	Query Query
	DE    Side
	DK    Side
}

// Result reduces the matched records to sorted name sets.
func (m *Matches) Result() Result {
	return Result{
		DEHolidays:  holidayNames(m.DE.Holidays),
		DEVacations: vacationNames(m.DE.Vacations),
		DKHolidays:  holidayNames(m.DK.Holidays),
		DKVacations: vacationNames(m.DK.Vacations),
	}
}

// nameSet accumulates names; the set is what removes the repeats a
// multi-day range produces.
type nameSet map[string]struct{}

func (s nameSet) add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

func (s nameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func holidayNames(records []calendar.HolidayRecord) []string {
	set := make(nameSet)
	for _, h := range records {
		set.add(h.Name)
	}
	return set.sorted()
}

func vacationNames(records []calendar.VacationPeriod) []string {
	set := make(nameSet)
	for _, v := range records {
		set.add(v.Name)
	}
	return set.sorted()
}
