package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "ferien.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ds := withYear(t, 2026)

	require.NoError(t, db.Import(t.Context(), ds))

	sets, err := db.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, ToFile(ds), ToFile(sets[0]))
}

func TestSQLiteImportReplacesYear(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Import(t.Context(), withYear(t, 2026)))
	require.NoError(t, db.Import(t.Context(), withYear(t, 2027)))
	require.NoError(t, db.Import(t.Context(), renamedHoliday(t, "Nytår")))

	sets, err := db.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 2026, sets[0].Year)
	assert.Equal(t, 2027, sets[1].Year)
	assert.Equal(t, "Nytår", sets[0].DanishHolidays[0].Name)
	assert.Len(t, sets[0].DanishHolidays, 13)
}

func TestSQLiteAsLoader(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Import(t.Context(), renamedHoliday(t, "Nytår")))

	r, err := LoadRegistry(t.Context(), EmbeddedLoader{}, db)
	require.NoError(t, err)
	ds, ok := r.Get(2026)
	require.True(t, ok)
	assert.Equal(t, "Nytår", ds.DanishHolidays[0].Name)
}

func TestSQLiteRoundTripEmptyStateLists(t *testing.T) {
	db := openTestDB(t)
	ds := withYear(t, 2026)

	holidays := make(map[calendar.Region][]string, len(ds.StateHolidays))
	for r, names := range ds.StateHolidays {
		holidays[r] = names
	}
	vacations := make(map[calendar.Region][]calendar.VacationPeriod, len(ds.StateVacations))
	for r, periods := range ds.StateVacations {
		vacations[r] = periods
	}
	holidays[calendar.Hamburg] = []string{}
	vacations[calendar.Hamburg] = []calendar.VacationPeriod{}
	holidays[calendar.Bremen] = []string{}
	ds.StateHolidays = holidays
	ds.StateVacations = vacations
	require.NoError(t, ds.Validate())

	require.NoError(t, db.Import(t.Context(), ds))

	sets, err := db.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Empty(t, sets[0].StateHolidays[calendar.Hamburg])
	assert.Empty(t, sets[0].StateVacations[calendar.Hamburg])
	assert.Empty(t, sets[0].StateHolidays[calendar.Bremen])
	assert.NotEmpty(t, sets[0].StateVacations[calendar.Bremen])
	assert.Equal(t, ToFile(ds), ToFile(sets[0]))
}
