package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
)

// Languages offered to clients; the first one is the fallback.
var supportedLanguages = []language.Tag{
	language.German,
	language.Danish,
	language.English,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

type messageSet struct {
	emptyInput      string
	invalidFormat   string
	invalidRange    string
	yearMismatch    string // %d year
	rangeTooLong    string // %d max, %d days
	unknownRegion   string // %q code, %s valid codes
	unsupportedYear string // %d year, %s available years
	unavailable     string
	internal        string
	noMatches       string
}

var messages = map[language.Tag]messageSet{
	language.German: {
		emptyInput:      "Bitte geben Sie beide Daten ein!",
		invalidFormat:   "Ungültiges Datumsformat. Bitte TT.MM.JJJJ verwenden.",
		invalidRange:    "Das Von-Datum muss vor dem Bis-Datum liegen.",
		yearMismatch:    "Das Von-Datum muss im Jahr %d liegen.",
		rangeTooLong:    "Der Zeitraum darf maximal %d Tage betragen (derzeit: %d Tage).",
		unknownRegion:   "Bundesland '%s' nicht bekannt. Verfügbare: %s",
		unsupportedYear: "Für das Jahr %d liegen keine Daten vor. Verfügbar: %s",
		unavailable:     "Die Feiertagsdaten sind derzeit nicht erreichbar. Bitte später erneut versuchen.",
		internal:        "Interner Fehler.",
		noMatches:       "Keine Ferien oder Feiertage im ausgewählten Zeitraum",
	},
	language.Danish: {
		emptyInput:      "Angiv venligst begge datoer!",
		invalidFormat:   "Ugyldigt datoformat. Brug DD.MM.ÅÅÅÅ.",
		invalidRange:    "Fra-datoen skal ligge før til-datoen.",
		yearMismatch:    "Fra-datoen skal ligge i år %d.",
		rangeTooLong:    "Perioden må højst være %d dage (aktuelt: %d dage).",
		unknownRegion:   "Region '%s' er ukendt. Tilgængelige: %s",
		unsupportedYear: "Der findes ingen data for år %d. Tilgængelige: %s",
		unavailable:     "Helligdagsdata er ikke tilgængelige i øjeblikket. Prøv igen senere.",
		internal:        "Intern fejl.",
		noMatches:       "Ingen ferier eller helligdage i den valgte periode",
	},
	language.English: {
		emptyInput:      "Please enter both dates!",
		invalidFormat:   "Invalid date format. Please use DD.MM.YYYY.",
		invalidRange:    "The from date must not be after the to date.",
		yearMismatch:    "The from date must be in the year %d.",
		rangeTooLong:    "The range may span at most %d days (currently: %d days).",
		unknownRegion:   "Unknown region '%s'. Available: %s",
		unsupportedYear: "No data available for the year %d. Available: %s",
		unavailable:     "Holiday data is currently unavailable. Please try again later.",
		internal:        "Internal error.",
		noMatches:       "No vacations or public holidays in the selected period",
	},
}

// requestLanguage picks the best supported language from Accept-Language.
func requestLanguage(r *http.Request) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	_, index, _ := languageMatcher.Match(tags...)
	return supportedLanguages[index]
}

// Localize renders a user-facing message for err.
func Localize(tag language.Tag, err error) string {
	m, ok := messages[tag]
	if !ok {
		m = messages[language.German]
	}

	var (
		formatErr      *compare.InvalidFormatError
		rangeErr       *compare.InvalidRangeError
		mismatchErr    *compare.YearMismatchError
		tooLongErr     *compare.RangeTooLongError
		regionErr      *calendar.UnknownRegionError
		yearErr        *calendar.UnsupportedYearError
		unavailableErr *compare.DataSourceUnavailableError
	)
	switch {
	case errors.As(err, &formatErr):
		if formatErr.Value == "" {
			return m.emptyInput
		}
		return m.invalidFormat
	case errors.As(err, &rangeErr):
		return m.invalidRange
	case errors.As(err, &mismatchErr):
		return fmt.Sprintf(m.yearMismatch, mismatchErr.Year)
	case errors.As(err, &tooLongErr):
		return fmt.Sprintf(m.rangeTooLong, tooLongErr.Max, tooLongErr.Days)
	case errors.As(err, &regionErr):
		return fmt.Sprintf(m.unknownRegion, regionErr.Code, strings.Join(regionErr.Valid, ", "))
	case errors.As(err, &yearErr):
		return fmt.Sprintf(m.unsupportedYear, yearErr.Year, joinYears(yearErr.Available))
	case errors.As(err, &unavailableErr):
		return m.unavailable
	}
	return m.internal
}

// NoMatchesMessage is shown for a side without any holiday or vacation.
func NoMatchesMessage(tag language.Tag) string {
	if m, ok := messages[tag]; ok {
		return m.noMatches
	}
	return messages[language.German].noMatches
}

func joinYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprint(y)
	}
	return strings.Join(parts, ", ")
}
