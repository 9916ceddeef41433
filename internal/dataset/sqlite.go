package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

const schema = `
CREATE TABLE IF NOT EXISTS dataset (
	year INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS state (
	year INTEGER NOT NULL,
	region TEXT NOT NULL,
	PRIMARY KEY (year, region),
	FOREIGN KEY (year) REFERENCES dataset(year) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS holiday (
	year INTEGER NOT NULL,
	country TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	date TEXT NOT NULL,
	PRIMARY KEY (year, country, position),
	FOREIGN KEY (year) REFERENCES dataset(year) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS state_holiday (
	year INTEGER NOT NULL,
	region TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	PRIMARY KEY (year, region, position),
	FOREIGN KEY (year) REFERENCES dataset(year) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS vacation (
	year INTEGER NOT NULL,
	region TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	PRIMARY KEY (year, region, position),
	FOREIGN KEY (year) REFERENCES dataset(year) ON DELETE CASCADE
);
`

// SQLiteStore keeps reference datasets in a SQLite database.
// Dates are stored as YYYY-MM-DD text.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path.
// PRE: path is a file path or ":memory:"
// POST: schema exists, foreign keys enabled
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	s := NewSQLiteStore(db)
	if err := s.InitDB(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteStore wraps an open database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InitDB creates the schema.
func (s *SQLiteStore) InitDB(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Import stores ds, replacing any dataset of the same year.
// PRE: ds has been validated
// POST: all rows of ds.Year are replaced in one transaction
func (s *SQLiteStore) Import(ctx context.Context, ds *calendar.ReferenceDataSet) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"holiday", "state_holiday", "vacation", "state", "dataset"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE year = ?", ds.Year); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO dataset (year) VALUES (?)", ds.Year); err != nil {
		return err
	}
	insertHolidays := func(country calendar.Country, dates []calendar.NamedDate) error {
		for i, h := range dates {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO holiday (year, country, position, name, date) VALUES (?, ?, ?, ?, ?)",
				ds.Year, string(country), i, h.Name, h.Date.ISO(),
			); err != nil {
				return err
			}
		}
		return nil
	}
	insertVacations := func(region calendar.Region, periods []calendar.VacationPeriod) error {
		for i, v := range periods {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO vacation (year, region, position, name, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?)",
				ds.Year, string(region), i, v.Name, v.Start.ISO(), v.End.ISO(),
			); err != nil {
				return err
			}
		}
		return nil
	}

	// states with empty lists leave no holiday or vacation rows
	states := make(map[calendar.Region]bool)
	for region := range ds.StateHolidays {
		states[region] = true
	}
	for region := range ds.StateVacations {
		states[region] = true
	}
	for region := range states {
		if _, err = tx.ExecContext(ctx, "INSERT INTO state (year, region) VALUES (?, ?)", ds.Year, string(region)); err != nil {
			return err
		}
	}
	if err = insertHolidays(calendar.Germany, ds.GermanHolidays); err != nil {
		return err
	}
	if err = insertHolidays(calendar.Denmark, ds.DanishHolidays); err != nil {
		return err
	}
	for region, names := range ds.StateHolidays {
		for i, name := range names {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO state_holiday (year, region, position, name) VALUES (?, ?, ?, ?)",
				ds.Year, string(region), i, name,
			); err != nil {
				return err
			}
		}
	}
	for region, periods := range ds.StateVacations {
		if err = insertVacations(region, periods); err != nil {
			return err
		}
	}
	if err = insertVacations(calendar.DenmarkRegion, ds.DanishVacations); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads every stored dataset ordered by year.
func (s *SQLiteStore) Load(ctx context.Context) ([]*calendar.ReferenceDataSet, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT year FROM dataset ORDER BY year")
	if err != nil {
		return nil, err
	}
	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			rows.Close()
			return nil, err
		}
		years = append(years, y)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sets := make([]*calendar.ReferenceDataSet, 0, len(years))
	for _, y := range years {
		ds, err := s.loadYear(ctx, y)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", y, err)
		}
		sets = append(sets, ds)
	}
	return sets, nil
}

// queryEach runs query for year and calls scan once per row.
func (s *SQLiteStore) queryEach(ctx context.Context, query string, year int, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query, year)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadYear(ctx context.Context, year int) (*calendar.ReferenceDataSet, error) {
	ds := &calendar.ReferenceDataSet{
		Year:           year,
		StateHolidays:  make(map[calendar.Region][]string),
		StateVacations: make(map[calendar.Region][]calendar.VacationPeriod),
	}
	seed := func(r calendar.Region) {
		if r == calendar.DenmarkRegion {
			return
		}
		if _, ok := ds.StateHolidays[r]; !ok {
			ds.StateHolidays[r] = []string{}
		}
		if _, ok := ds.StateVacations[r]; !ok {
			ds.StateVacations[r] = []calendar.VacationPeriod{}
		}
	}

	err := s.queryEach(ctx, "SELECT region FROM state WHERE year = ?", year, func(rows *sql.Rows) error {
		var region string
		if err := rows.Scan(&region); err != nil {
			return err
		}
		seed(calendar.Region(region))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.queryEach(ctx,
		"SELECT country, name, date FROM holiday WHERE year = ? ORDER BY country, position", year,
		func(rows *sql.Rows) error {
			var country, name, dateStr string
			if err := rows.Scan(&country, &name, &dateStr); err != nil {
				return err
			}
			d, err := calendar.ParseISODate(dateStr)
			if err != nil {
				return err
			}
			entry := calendar.NamedDate{Name: name, Date: d}
			if calendar.Country(country) == calendar.Denmark {
				ds.DanishHolidays = append(ds.DanishHolidays, entry)
			} else {
				ds.GermanHolidays = append(ds.GermanHolidays, entry)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = s.queryEach(ctx,
		"SELECT region, name FROM state_holiday WHERE year = ? ORDER BY region, position", year,
		func(rows *sql.Rows) error {
			var region, name string
			if err := rows.Scan(&region, &name); err != nil {
				return err
			}
			r := calendar.Region(region)
			seed(r)
			ds.StateHolidays[r] = append(ds.StateHolidays[r], name)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = s.queryEach(ctx,
		"SELECT region, name, start_date, end_date FROM vacation WHERE year = ? ORDER BY region, position", year,
		func(rows *sql.Rows) error {
			var region, name, startStr, endStr string
			if err := rows.Scan(&region, &name, &startStr, &endStr); err != nil {
				return err
			}
			start, err := calendar.ParseISODate(startStr)
			if err != nil {
				return err
			}
			end, err := calendar.ParseISODate(endStr)
			if err != nil {
				return err
			}
			r := calendar.Region(region)
			v := calendar.VacationPeriod{Name: name, Start: start, End: end, Region: r}
			if r == calendar.DenmarkRegion {
				ds.DanishVacations = append(ds.DanishVacations, v)
				return nil
			}
			seed(r)
			ds.StateVacations[r] = append(ds.StateVacations[r], v)
			return nil
		})
	if err != nil {
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}
