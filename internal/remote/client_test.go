package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/compare"
)

func TestMain(m *testing.M) {
	retryBaseDelay = 0
	os.Exit(m.Run())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newHTTPResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

var nrw = ServiceRegion{Country: "DE", Subdivision: "DE-NW", Language: "DE"}

func TestClientSchoolHolidaysRequest(t *testing.T) {
	t.Parallel()

	c := NewClient("https://holidays.example", 0, 0)
	c.HTTP.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/SchoolHolidays", req.URL.Path)
		q := req.URL.Query()
		assert.Equal(t, "DE", q.Get("countryIsoCode"))
		assert.Equal(t, "DE-NW", q.Get("subdivisionCode"))
		assert.Equal(t, "DE", q.Get("languageIsoCode"))
		assert.Equal(t, "2026-01-01", q.Get("validFrom"))
		assert.Equal(t, "2026-12-31", q.Get("validTo"))
		assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
		return newHTTPResponse(http.StatusOK, `[{"id":"a","startDate":"2026-07-20","endDate":"2026-09-01","name":[{"language":"DE","text":"Sommerferien"}]}]`), nil
	})

	records, err := c.SchoolHolidays(context.Background(), nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sommerferien", records[0].Name.In("DE"))
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, 0, 2)
	records, err := c.PublicHolidays(context.Background(), nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRetriesExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, 0, 2)
	_, err := c.PublicHolidays(context.Background(), nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))

	var unavailable *compare.DataSourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, ts.URL, unavailable.Source)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, 0, 2)
	_, err := c.SchoolHolidays(context.Background(), nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))

	var unavailable *compare.DataSourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientTransportError(t *testing.T) {
	t.Parallel()

	c := NewClient("https://holidays.example", 0, 1)
	var calls int
	c.HTTP.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	_, err := c.PublicHolidays(context.Background(), nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))
	var unavailable *compare.DataSourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 2, calls)
}

func TestClientMalformedBody(t *testing.T) {
	t.Parallel()

	c := NewClient("https://holidays.example", 0, 0)
	c.HTTP.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return newHTTPResponse(http.StatusOK, `{not json`), nil
	})

	_, err := c.PublicHolidays(context.Background(), nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))
	var unavailable *compare.DataSourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestClientCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("https://holidays.example", 0, 2)
	c.HTTP.Transport = roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})

	_, err := c.PublicHolidays(ctx, nrw, calendar.NewDate(2026, 1, 1), calendar.NewDate(2026, 12, 31))
	var unavailable *compare.DataSourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNameUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		lang string
		want string
	}{
		{"plain string", `"Neujahr"`, "DE", "Neujahr"},
		{"matching translation", `[{"language":"EN","text":"New Year"},{"language":"DE","text":"Neujahr"}]`, "de", "Neujahr"},
		{"fallback to first", `[{"language":"EN","text":"New Year"}]`, "DA", "New Year"},
		{"empty list", `[]`, "DE", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Name
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))
			assert.Equal(t, tt.want, n.In(tt.lang))
		})
	}
}
