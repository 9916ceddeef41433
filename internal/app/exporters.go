package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// Event is one exported holiday or vacation
type Event struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Start   string `json:"start"`
	End     string `json:"end"`

	start, end calendar.Date
}

const (
	EventHoliday  = "feiertag"
	EventVacation = "ferien"
)

// writeString writes to w and logs any error (helper for ICS generation)
func writeString(w io.Writer, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		logging.Error("Error writing to response: %v", err)
	}
}

// Events flattens matches into export events. Vacations are clipped to the
// query range, so a summer break overlapping the range by two days exports as
// a two day event.
func Events(m *compare.Matches) []Event {
	return collectEvents(m, true)
}

// collectEvents lists the events of both sides. With region DK both sides
// hold the same records and only the first one is used.
func collectEvents(m *compare.Matches, clip bool) []Event {
	sides := []compare.Side{m.DE, m.DK}
	if m.DE.Region == m.DK.Region {
		sides = sides[:1]
	}
	var events []Event
	for _, side := range sides {
		for _, h := range side.Holidays {
			events = append(events, newEvent(side.Region, EventHoliday, h.Name, h.Date, h.Date))
		}
		for _, v := range side.Vacations {
			start, end := v.Start, v.End
			if clip {
				start = calendar.MaxDate(start, m.Query.From)
				end = calendar.MinDate(end, m.Query.To)
			}
			events = append(events, newEvent(side.Region, EventVacation, v.Name, start, end))
		}
	}
	return events
}

func newEvent(region calendar.Region, kind, name string, start, end calendar.Date) Event {
	return Event{
		Country: string(region.Country()),
		Region:  string(region),
		Type:    kind,
		Name:    name,
		Start:   start.ISO(),
		End:     end.ISO(),
		start:   start,
		end:     end,
	}
}

func exportName(q compare.Query, ext string) string {
	return fmt.Sprintf("ferien_%s_DK_%s_%s.%s", q.Region, q.From.ISO(), q.To.ISO(), ext)
}

// escapeICS escapes text values per RFC 5545
func escapeICS(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}

func writeVEvent(w io.Writer, e Event, stamp string) {
	uid := fmt.Sprintf("%s-%s-%s-%s@%s", e.Start, e.Region, e.Type, strings.ReplaceAll(e.Name, " ", "_"), ICSDomain)
	country := "Deutschland"
	if e.Country == string(calendar.Denmark) {
		country = "Dänemark"
	}
	kind := "Feiertag"
	if e.Type == EventVacation {
		kind = "Ferien"
	}

	// all-day event, DTEND is exclusive
	writeString(w, "BEGIN:VEVENT\r\n")
	writeString(w, "UID:%s\r\n", escapeICS(uid))
	writeString(w, "DTSTAMP:%s\r\n", stamp)
	writeString(w, "DTSTART;VALUE=DATE:%s\r\n", e.start.Time().Format("20060102"))
	writeString(w, "DTEND;VALUE=DATE:%s\r\n", e.end.AddDays(1).Time().Format("20060102"))
	writeString(w, "SUMMARY:%s (%s)\r\n", escapeICS(e.Name), e.Region)
	writeString(w, "DESCRIPTION:%s in %s\r\n", kind, escapeICS(calendar.Region(e.Region).DisplayName()))
	writeString(w, "CATEGORIES:%s\r\n", kind)
	writeString(w, "LOCATION:%s\r\n", country)
	writeString(w, "TRANSP:TRANSPARENT\r\n")
	writeString(w, "END:VEVENT\r\n")
}

// GenerateICS generates an iCalendar (ICS) file for a comparison
func GenerateICS(w http.ResponseWriter, m *compare.Matches) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportName(m.Query, "ics"))

	writeString(w, "BEGIN:VCALENDAR\r\n")
	writeString(w, "VERSION:2.0\r\n")
	writeString(w, "PRODID:%s\r\n", ICSProductID)
	writeString(w, "X-WR-CALNAME:Ferien %s / DK %s - %s\r\n", m.Query.Region, m.Query.From, m.Query.To)
	writeString(w, "X-WR-TIMEZONE:%s\r\n", ICSTimezone)
	writeString(w, "CALSCALE:GREGORIAN\r\n")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, e := range Events(m) {
		writeVEvent(w, e, stamp)
	}
	writeString(w, "END:VCALENDAR\r\n")
}

// GenerateCSV generates a CSV file with the matched events
func GenerateCSV(w http.ResponseWriter, m *compare.Matches) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportName(m.Query, "csv"))

	cw := csv.NewWriter(w)
	rows := [][]string{{"Land", "Region", "Typ", "Name", "Von", "Bis"}}
	for _, e := range Events(m) {
		rows = append(rows, []string{e.Country, e.Region, e.Type, e.Name, e.start.String(), e.end.String()})
	}
	if err := cw.WriteAll(rows); err != nil {
		logging.Error("Error writing CSV export: %v", err)
	}
}

// GenerateJSON generates a JSON file with the comparison result and events
func GenerateJSON(w http.ResponseWriter, m *compare.Matches) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+exportName(m.Query, "json"))

	events := Events(m)
	if events == nil {
		events = []Event{}
	}
	data := map[string]interface{}{
		"from":   m.Query.From.String(),
		"to":     m.Query.To.String(),
		"region": m.Query.Region,
		"year":   m.Query.Year,
		"result": m.Result(),
		"events": events,
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("Error encoding JSON export: %v", err)
		http.Error(w, ErrFailedToGenerateJSON, http.StatusInternalServerError)
	}
}

// GenerateSubscriptionICS generates an iCalendar (ICS) subscription feed
// Unlike GenerateICS, this is designed for calendar subscriptions:
// - No Content-Disposition attachment header (inline content)
// - Includes METHOD:PUBLISH and refresh interval headers
func GenerateSubscriptionICS(w http.ResponseWriter, region calendar.Region, all []*compare.Matches) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	writeString(w, "BEGIN:VCALENDAR\r\n")
	writeString(w, "VERSION:2.0\r\n")
	writeString(w, "PRODID:%s\r\n", ICSProductID)
	writeString(w, "METHOD:PUBLISH\r\n")
	writeString(w, "X-WR-CALNAME:Ferien %s / DK\r\n", region)
	writeString(w, "X-WR-TIMEZONE:%s\r\n", ICSTimezone)
	writeString(w, "CALSCALE:GREGORIAN\r\n")
	writeString(w, "X-PUBLISHED-TTL:PT12H\r\n")

	// vacations keep their full period, a break spanning New Year is seen
	// from both years and written once
	stamp := time.Now().UTC().Format("20060102T150405Z")
	seen := make(map[string]bool)
	for _, m := range all {
		for _, e := range collectEvents(m, false) {
			key := strings.Join([]string{e.Region, e.Type, e.Name, e.Start, e.End}, "|")
			if seen[key] {
				continue
			}
			seen[key] = true
			writeVEvent(w, e, stamp)
		}
	}
	writeString(w, "END:VCALENDAR\r\n")
}
