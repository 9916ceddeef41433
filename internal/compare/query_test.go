package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(" 24.12.2026", "06.01.2027 ", "NRW", 2026)
	require.NoError(t, err)
	assert.Equal(t, calendar.NordrheinWestfalen, q.Region)
	assert.Equal(t, 13, q.Days())
	assert.NoError(t, q.Validate())
}

func TestParseQueryErrors(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		region   string
		year     int
		target   interface{}
	}{
		{"empty from", "", "31.08.2026", "NRW", 2026, new(*InvalidFormatError)},
		{"malformed to", "15.07.2026", "2026-08-31", "NRW", 2026, new(*InvalidFormatError)},
		{"reversed range", "01.09.2026", "15.07.2026", "NRW", 2026, new(*InvalidRangeError)},
		{"year mismatch", "01.01.2025", "15.01.2025", "NRW", 2026, new(*YearMismatchError)},
		{"range too long", "01.01.2026", "03.01.2027", "NRW", 2026, new(*RangeTooLongError)},
		{"unknown region", "15.07.2026", "31.08.2026", "XX", 2026, new(*calendar.UnknownRegionError)},
		// format is checked before the region
		{"bad date and bad region", "xx", "31.08.2026", "XX", 2026, new(*InvalidFormatError)},
		// the range is checked before the year
		{"reversed range in another year", "01.09.2025", "15.07.2025", "NRW", 2026, new(*InvalidRangeError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.from, tt.to, tt.region, tt.year)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestParseQueryErrorDetails(t *testing.T) {
	_, err := ParseQuery("15.07.2026", "2026-08-31", "NRW", 2026)
	var formatErr *InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "to", formatErr.Field)
	assert.Equal(t, "2026-08-31", formatErr.Value)

	_, err = ParseQuery("01.01.2025", "15.01.2025", "NRW", 2026)
	var mismatchErr *YearMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, 2026, mismatchErr.Year)

	_, err = ParseQuery("01.01.2026", "03.01.2027", "NRW", 2026)
	var tooLongErr *RangeTooLongError
	require.ErrorAs(t, err, &tooLongErr)
	assert.Equal(t, 367, tooLongErr.Days)
	assert.Equal(t, MaxRangeDays, tooLongErr.Max)

	_, err = ParseQuery("15.07.2026", "31.08.2026", "XX", 2026)
	var regionErr *calendar.UnknownRegionError
	require.ErrorAs(t, err, &regionErr)
	assert.Len(t, regionErr.Valid, 17)
	assert.Contains(t, regionErr.Valid, "DK")
}

func TestParseQueryMaxRange(t *testing.T) {
	// 366 days is the longest accepted span
	q, err := ParseQuery("01.01.2026", "02.01.2027", "BY", 2026)
	require.NoError(t, err)
	assert.Equal(t, MaxRangeDays, q.Days())
}

func TestQueryValidate(t *testing.T) {
	q := Query{
		From:   calendar.NewDate(2026, 7, 15),
		To:     calendar.NewDate(2026, 8, 31),
		Region: "XX",
		Year:   2026,
	}
	var e *calendar.UnknownRegionError
	assert.ErrorAs(t, q.Validate(), &e)

	q.Region = calendar.Hessen
	assert.NoError(t, q.Validate())
}
