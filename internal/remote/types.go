package remote

import (
	"encoding/json"
	"strings"
)

// LocalizedText is one translation of a record name.
type LocalizedText struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// SubdivisionRef names a subdivision a record applies to.
type SubdivisionRef struct {
	Code      string `json:"code"`
	ShortName string `json:"shortName"`
}

// CountryRef is attached to records of the by-date endpoint.
type CountryRef struct {
	IsoCode string `json:"isoCode"`
}

// Record is a raw holiday or vacation record as returned by the service.
// Point-in-time holidays may carry only Date; intervals carry StartDate/EndDate.
type Record struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate"`
	Type         string           `json:"type"`
	Name         Name             `json:"name"`
	Nationwide   bool             `json:"nationwide"`
	Subdivisions []SubdivisionRef `json:"subdivisions"`
	Country      *CountryRef      `json:"country,omitempty"`
}

// Name accepts either a plain string or a list of translations.
type Name []LocalizedText

func (n *Name) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*n = Name{{Text: plain}}
		return nil
	}
	var list []LocalizedText
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*n = list
	return nil
}

// In returns the text for language, falling back to the first translation.
func (n Name) In(language string) string {
	for _, t := range n {
		if strings.EqualFold(t.Language, language) {
			return t.Text
		}
	}
	if len(n) > 0 {
		return n[0].Text
	}
	return ""
}
