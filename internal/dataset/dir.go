package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
	"github.com/klabast/wb-services/ferien-checker/internal/logging"
)

// Constants
const (
	FileSuffix      = ".json"
	TmpSuffix       = ".tmp.json"
	BackupDir       = "backup"
	BackupSuffix    = ".backup"
	FilePermissions = 0644
)

// DirStore keeps one JSON file per year in a directory (2026.json, ...).
// In edit mode uploads land in <year>.tmp.json until committed or reverted.
type DirStore struct {
	Dir string
	// PreferTmp loads unsaved tmp files instead of the committed ones.
	PreferTmp bool

	mu sync.Mutex
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string, preferTmp bool) *DirStore {
	return &DirStore{Dir: dir, PreferTmp: preferTmp}
}

func (s *DirStore) Name() string { return "dir:" + s.Dir }

func (s *DirStore) path(year int) string {
	return filepath.Join(s.Dir, strconv.Itoa(year)+FileSuffix)
}

func (s *DirStore) tmpPath(year int) string {
	return filepath.Join(s.Dir, strconv.Itoa(year)+TmpSuffix)
}

// Load reads every committed year file, or its tmp file when PreferTmp is set
// and one exists. A missing directory yields no datasets.
func (s *DirStore) Load(_ context.Context) ([]*calendar.ReferenceDataSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	years, err := s.scan()
	if err != nil {
		return nil, err
	}
	sets := make([]*calendar.ReferenceDataSet, 0, len(years))
	for _, year := range years {
		file := s.path(year)
		if s.PreferTmp {
			if _, err := os.Stat(s.tmpPath(year)); err == nil {
				logging.Warn("found temporary dataset %s (loading unsaved changes)", s.tmpPath(year))
				file = s.tmpPath(year)
			}
		}
		ds, err := readFile(file)
		if err != nil {
			return nil, err
		}
		if ds.Year != year {
			return nil, fmt.Errorf("%s: contains year %d", file, ds.Year)
		}
		sets = append(sets, ds)
	}
	return sets, nil
}

// scan lists the years having a committed or (with PreferTmp) tmp file.
func (s *DirStore) scan() ([]int, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		var stem string
		switch {
		case strings.HasSuffix(name, TmpSuffix):
			if !s.PreferTmp {
				continue
			}
			stem = strings.TrimSuffix(name, TmpSuffix)
		case strings.HasSuffix(name, FileSuffix):
			stem = strings.TrimSuffix(name, FileSuffix)
		default:
			continue
		}
		year, err := strconv.Atoi(stem)
		if err != nil {
			continue
		}
		seen[year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// SaveTmp validates ds and writes it to the year's tmp file.
func (s *DirStore) SaveTmp(ds *calendar.ReferenceDataSet) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, ds); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return os.WriteFile(s.tmpPath(ds.Year), buf.Bytes(), FilePermissions)
}

// Commit makes the tmp file of year the committed file. The previous file is
// moved into the backup directory under a ULID-prefixed name.
func (s *DirStore) Commit(year int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpFile := s.tmpPath(year)
	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return "", fmt.Errorf("no temporary changes to commit for %d", year)
	}

	backupDirPath := filepath.Join(s.Dir, BackupDir)
	if err := os.MkdirAll(backupDirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	revision := ulid.Make().String()
	mainFile := s.path(year)
	if _, err := os.Stat(mainFile); err == nil {
		backupFile := filepath.Join(backupDirPath, fmt.Sprintf("%s_%d%s%s", revision, year, FileSuffix, BackupSuffix))
		if err := os.Rename(mainFile, backupFile); err != nil {
			return "", fmt.Errorf("failed to create backup: %w", err)
		}
		logging.Info("backup created: %s", backupFile)
	}

	if err := os.Rename(tmpFile, mainFile); err != nil {
		return "", fmt.Errorf("failed to commit changes: %w", err)
	}
	logging.Info("dataset %d committed to %s (revision %s)", year, mainFile, revision)
	return revision, nil
}

// Revert discards the tmp file of year.
func (s *DirStore) Revert(year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpFile := s.tmpPath(year)
	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		return fmt.Errorf("no temporary changes to revert for %d", year)
	}
	if err := os.Remove(tmpFile); err != nil {
		return fmt.Errorf("failed to remove tmp file: %w", err)
	}
	logging.Info("dataset %d changes reverted", year)
	return nil
}

// Committed reads the committed dataset of year, if any.
func (s *DirStore) Committed(year int) (*calendar.ReferenceDataSet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := readFile(s.path(year))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return ds, true, nil
}

// TmpYears lists the years with uncommitted changes.
func (s *DirStore) TmpYears() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil
	}
	var years []int
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), TmpSuffix) {
			continue
		}
		if y, err := strconv.Atoi(strings.TrimSuffix(e.Name(), TmpSuffix)); err == nil {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

func readFile(name string) (*calendar.ReferenceDataSet, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	ds, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ds, nil
}
