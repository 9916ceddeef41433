package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleSubscribe(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/subscribe/NRW", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	resp := w.Result()
	body := w.Body.String()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/calendar") {
		t.Errorf("Expected Content-Type text/calendar, got %s", contentType)
	}

	// Subscription should NOT have Content-Disposition attachment header
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		t.Errorf("Subscription should not have Content-Disposition header, got: %s", cd)
	}

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"X-PUBLISHED-TTL:PT12H",
		"SUMMARY:Neujahr (NRW)",
		"SUMMARY:Herbstferien (NRW)",
		"SUMMARY:Grundlovsdag (DK)",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS subscription output missing required field: %s", field)
		}
	}

	// NRW does not observe Mariä Himmelfahrt
	if strings.Contains(body, "Mariä Himmelfahrt") {
		t.Error("Subscription for NRW should not contain Mariä Himmelfahrt")
	}

	// 11 NRW holidays + 5 NRW vacations + 13 DK holidays + 5 DK vacations
	if got := strings.Count(body, "BEGIN:VEVENT"); got != 34 {
		t.Errorf("Expected 34 events, got %d", got)
	}
}

func TestHandleSubscribeUnknownRegion(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/subscribe/XX", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandleSubscribeKeepsFullVacations(t *testing.T) {
	s := newTestServer(t)

	// the same records relabeled as 2027 see the Christmas break a second time
	ds, ok := s.Registry.Get(2026)
	if !ok {
		t.Fatal("Embedded 2026 dataset missing")
	}
	next := *ds
	next.Year = 2027
	s.Registry.Put(&next)

	w := doRequest(s, "GET", "/api/subscribe/NRW", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()

	event := vevent(t, body, "SUMMARY:Weihnachtsferien (NRW)")
	if !strings.Contains(event, "DTSTART;VALUE=DATE:20261223") || !strings.Contains(event, "DTEND;VALUE=DATE:20270107") {
		t.Errorf("Weihnachtsferien should span 23.12.2026 - 06.01.2027:\n%s", event)
	}
	if got := strings.Count(body, "SUMMARY:Weihnachtsferien (NRW)"); got != 1 {
		t.Errorf("Expected Weihnachtsferien once, got %d", got)
	}
	if got := strings.Count(body, "SUMMARY:Juleferie (DK)"); got != 1 {
		t.Errorf("Expected Juleferie once, got %d", got)
	}
}

func TestHandleSubscribeDenmark(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, "GET", "/api/subscribe/DK", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	// 13 DK holidays + 5 DK vacations, not repeated for the second side
	if got := strings.Count(w.Body.String(), "BEGIN:VEVENT"); got != 18 {
		t.Errorf("Expected 18 events, got %d", got)
	}
}

// vevent returns the VEVENT block containing line.
func vevent(t *testing.T, body, line string) string {
	t.Helper()
	for _, block := range strings.Split(body, "BEGIN:VEVENT") {
		if strings.Contains(block, line) {
			return block
		}
	}
	t.Fatalf("No event with %s", line)
	return ""
}
