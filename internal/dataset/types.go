package dataset

// File is the on-disk JSON form of a reference dataset. Dates are DD.MM.YYYY.
type File struct {
	Year    int         `json:"year"`
	Germany GermanyData `json:"germany"`
	Denmark DenmarkData `json:"denmark"`
}

// GermanyData holds the country-level holiday table and per-state data.
type GermanyData struct {
	Holidays []HolidayEntry        `json:"holidays"`
	States   map[string]*StateData `json:"states"`
}

// StateData lists the holiday names a state observes and its school vacations.
type StateData struct {
	Holidays  []string        `json:"holidays"`
	Vacations []VacationEntry `json:"vacations"`
}

// DenmarkData holds the Danish holiday table and school vacations.
type DenmarkData struct {
	Holidays  []HolidayEntry  `json:"holidays"`
	Vacations []VacationEntry `json:"vacations"`
}

// HolidayEntry is a (name, date) pair.
type HolidayEntry struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// VacationEntry is a (name, start, end) triple, end inclusive.
type VacationEntry struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}
