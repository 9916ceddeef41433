package remote

import (
	"fmt"
	"strings"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// ServiceRegion is how the remote service addresses one canonical region.
type ServiceRegion struct {
	Country     string // ISO 3166-1 code, e.g. DE
	Subdivision string // ISO 3166-2 code, e.g. DE-NW; empty for a whole country
	Language    string // language used for record names
}

// Mapping translates every canonical region into the service vocabulary.
type Mapping map[calendar.Region]ServiceRegion

// DefaultMapping follows ISO 3166-2 subdivision codes. Note the canonical NRW
// is DE-NW at the service.
func DefaultMapping() Mapping {
	de := func(sub string) ServiceRegion {
		return ServiceRegion{Country: "DE", Subdivision: "DE-" + sub, Language: "DE"}
	}
	return Mapping{
		calendar.BadenWuerttemberg:     de("BW"),
		calendar.Bayern:                de("BY"),
		calendar.Berlin:                de("BE"),
		calendar.Brandenburg:           de("BB"),
		calendar.Bremen:                de("HB"),
		calendar.Hamburg:               de("HH"),
		calendar.Hessen:                de("HE"),
		calendar.MecklenburgVorpommern: de("MV"),
		calendar.Niedersachsen:         de("NI"),
		calendar.NordrheinWestfalen:    de("NW"),
		calendar.RheinlandPfalz:        de("RP"),
		calendar.Saarland:              de("SL"),
		calendar.Sachsen:               de("SN"),
		calendar.SachsenAnhalt:         de("ST"),
		calendar.SchleswigHolstein:     de("SH"),
		calendar.Thueringen:            de("TH"),
		calendar.DenmarkRegion:         {Country: "DK", Language: "DA"},
	}
}

// WithOverrides returns a copy of m with subdivision codes replaced.
// Keys must be canonical region codes.
func (m Mapping) WithOverrides(subdivisions map[string]string) (Mapping, error) {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	for code, sub := range subdivisions {
		region, err := calendar.ParseRegion(code)
		if err != nil {
			return nil, fmt.Errorf("remote region mapping: %w", err)
		}
		sr := out[region]
		sr.Subdivision = strings.TrimSpace(sub)
		out[region] = sr
	}
	return out, nil
}

// Validate checks the mapping is total over the canonical regions. A gap is a
// configuration error; there is no fallback.
func (m Mapping) Validate() error {
	for _, region := range calendar.Regions() {
		sr, ok := m[region]
		if !ok {
			return fmt.Errorf("remote region mapping: no entry for %s", region)
		}
		if sr.Country == "" {
			return fmt.Errorf("remote region mapping: %s has no country", region)
		}
		if region.IsGerman() && sr.Subdivision == "" {
			return fmt.Errorf("remote region mapping: %s has no subdivision code", region)
		}
		if region.IsGerman() && !strings.HasPrefix(sr.Subdivision, sr.Country+"-") {
			return fmt.Errorf("remote region mapping: %s subdivision %q does not belong to %s", region, sr.Subdivision, sr.Country)
		}
	}
	for region := range m {
		if _, err := calendar.ParseRegion(string(region)); err != nil {
			return fmt.Errorf("remote region mapping: %w", err)
		}
	}
	return nil
}

// Lookup returns the service region for region.
func (m Mapping) Lookup(region calendar.Region) (ServiceRegion, error) {
	sr, ok := m[region]
	if !ok {
		return ServiceRegion{}, fmt.Errorf("remote region mapping: no entry for %s", region)
	}
	return sr, nil
}
