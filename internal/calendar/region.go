package calendar

import (
	"sort"
	"strings"
)

// Country identifies which national calendar a record belongs to.
type Country string

const (
	Germany Country = "DE"
	Denmark Country = "DK"
)

// Region is the canonical internal region code: one of the 16 German federal
// states or Denmark. External vocabularies (DE-NW, NW, ...) are mapped onto it
// by adapters and never used by the core.
type Region string

const (
	BadenWuerttemberg     Region = "BW"
	Bayern                Region = "BY"
	Berlin                Region = "BE"
	Brandenburg           Region = "BB"
	Bremen                Region = "HB"
	Hamburg               Region = "HH"
	Hessen                Region = "HE"
	MecklenburgVorpommern Region = "MV"
	Niedersachsen         Region = "NI"
	NordrheinWestfalen    Region = "NRW"
	RheinlandPfalz        Region = "RP"
	Saarland              Region = "SL"
	Sachsen               Region = "SN"
	SachsenAnhalt         Region = "ST"
	SchleswigHolstein     Region = "SH"
	Thueringen            Region = "TH"

	DenmarkRegion Region = "DK"
)

// displayNames maps every canonical region to its German display name.
var displayNames = map[Region]string{
	BadenWuerttemberg:     "Baden-Württemberg",
	Bayern:                "Bayern",
	Berlin:                "Berlin",
	Brandenburg:           "Brandenburg",
	Bremen:                "Bremen",
	Hamburg:               "Hamburg",
	Hessen:                "Hessen",
	MecklenburgVorpommern: "Mecklenburg-Vorpommern",
	Niedersachsen:         "Niedersachsen",
	NordrheinWestfalen:    "Nordrhein-Westfalen",
	RheinlandPfalz:        "Rheinland-Pfalz",
	Saarland:              "Saarland",
	Sachsen:               "Sachsen",
	SachsenAnhalt:         "Sachsen-Anhalt",
	SchleswigHolstein:     "Schleswig-Holstein",
	Thueringen:            "Thüringen",
	DenmarkRegion:         "Dänemark",
}

// germanStates is ordered the way the state dropdown lists them.
var germanStates = []Region{
	BadenWuerttemberg, Bayern, Berlin, Brandenburg, Bremen, Hamburg, Hessen,
	MecklenburgVorpommern, Niedersachsen, NordrheinWestfalen, RheinlandPfalz,
	Saarland, Sachsen, SachsenAnhalt, SchleswigHolstein, Thueringen,
}

// GermanStates returns the 16 German state codes in display order.
func GermanStates() []Region {
	out := make([]Region, len(germanStates))
	copy(out, germanStates)
	return out
}

// Regions returns every canonical region code sorted by code.
func Regions() []Region {
	out := append(GermanStates(), DenmarkRegion)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseRegion resolves a code to the canonical enumeration.
// Matching is exact after trimming surrounding whitespace.
func ParseRegion(code string) (Region, error) {
	r := Region(strings.TrimSpace(code))
	if _, ok := displayNames[r]; !ok {
		return "", &UnknownRegionError{Code: code, Valid: validCodes()}
	}
	return r, nil
}

// Country returns the country the region belongs to.
func (r Region) Country() Country {
	if r == DenmarkRegion {
		return Denmark
	}
	return Germany
}

// IsGerman reports whether r is one of the 16 German states.
func (r Region) IsGerman() bool {
	_, ok := displayNames[r]
	return ok && r != DenmarkRegion
}

// DisplayName returns the German display name, or the code itself if unknown.
func (r Region) DisplayName() string {
	if name, ok := displayNames[r]; ok {
		return name
	}
	return string(r)
}

func (r Region) String() string {
	return string(r)
}

// validCodes lists the German codes in display order followed by DK.
func validCodes() []string {
	codes := make([]string, 0, len(germanStates)+1)
	for _, r := range germanStates {
		codes = append(codes, string(r))
	}
	return append(codes, string(DenmarkRegion))
}
