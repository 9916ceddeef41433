package dataset

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

// Loader produces reference datasets from some backing store.
type Loader interface {
	Load(ctx context.Context) ([]*calendar.ReferenceDataSet, error)
	Name() string
}

// Registry holds the loaded datasets by year. Each Replace installs a new
// immutable snapshot; readers never observe a partially updated set.
type Registry struct {
	snap atomic.Pointer[map[int]*calendar.ReferenceDataSet]
}

// NewRegistry creates a registry holding sets.
func NewRegistry(sets ...*calendar.ReferenceDataSet) (*Registry, error) {
	r := &Registry{}
	if err := r.Replace(sets); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadRegistry runs every loader and combines the results. Later loaders
// override earlier ones for the same year.
func LoadRegistry(ctx context.Context, loaders ...Loader) (*Registry, error) {
	r := &Registry{}
	if err := r.Reload(ctx, loaders...); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload runs the loaders again and installs the combined result. On error
// the current snapshot stays in place.
func (r *Registry) Reload(ctx context.Context, loaders ...Loader) error {
	byYear := make(map[int]*calendar.ReferenceDataSet)
	for _, l := range loaders {
		sets, err := l.Load(ctx)
		if err != nil {
			return fmt.Errorf("load datasets from %s: %w", l.Name(), err)
		}
		for _, ds := range sets {
			byYear[ds.Year] = ds
		}
	}
	r.snap.Store(&byYear)
	return nil
}

// Replace installs sets as the new snapshot. Duplicate years are rejected.
func (r *Registry) Replace(sets []*calendar.ReferenceDataSet) error {
	byYear := make(map[int]*calendar.ReferenceDataSet, len(sets))
	for _, ds := range sets {
		if _, dup := byYear[ds.Year]; dup {
			return fmt.Errorf("duplicate dataset for year %d", ds.Year)
		}
		byYear[ds.Year] = ds
	}
	r.snap.Store(&byYear)
	return nil
}

// Put installs ds, replacing any dataset of the same year.
func (r *Registry) Put(ds *calendar.ReferenceDataSet) {
	for {
		old := r.snap.Load()
		next := make(map[int]*calendar.ReferenceDataSet, len(*old)+1)
		for y, s := range *old {
			next[y] = s
		}
		next[ds.Year] = ds
		if r.snap.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Get returns the dataset for year.
func (r *Registry) Get(year int) (*calendar.ReferenceDataSet, bool) {
	ds, ok := (*r.snap.Load())[year]
	return ds, ok
}

// Years returns the loaded years in ascending order.
func (r *Registry) Years() []int {
	return calendar.SortedYears(*r.snap.Load())
}
