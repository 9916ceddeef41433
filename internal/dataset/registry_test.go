package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

type staticLoader struct {
	name string
	sets []*calendar.ReferenceDataSet
	err  error
}

func (l staticLoader) Name() string { return l.name }

func (l staticLoader) Load(context.Context) ([]*calendar.ReferenceDataSet, error) {
	return l.sets, l.err
}

// withYear returns a copy of the embedded 2026 dataset relabeled as year.
func withYear(t *testing.T, year int) *calendar.ReferenceDataSet {
	t.Helper()
	ds, ok := Default().Get(2026)
	require.True(t, ok)
	c := *ds
	c.Year = year
	return &c
}

func TestRegistryReplace(t *testing.T) {
	r, err := NewRegistry(withYear(t, 2027), withYear(t, 2026))
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2027}, r.Years())

	_, ok := r.Get(2028)
	assert.False(t, ok)

	err = r.Replace([]*calendar.ReferenceDataSet{withYear(t, 2026), withYear(t, 2026)})
	assert.ErrorContains(t, err, "duplicate dataset for year 2026")
	assert.Equal(t, []int{2026, 2027}, r.Years())
}

func TestRegistryPut(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, []int{}, r.Years())

	first := withYear(t, 2026)
	r.Put(first)
	second := withYear(t, 2026)
	r.Put(second)

	got, ok := r.Get(2026)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, []int{2026}, r.Years())
}

func TestLoadRegistryOverrideOrder(t *testing.T) {
	base := withYear(t, 2026)
	override := withYear(t, 2026)

	r, err := LoadRegistry(t.Context(),
		staticLoader{name: "base", sets: []*calendar.ReferenceDataSet{base, withYear(t, 2027)}},
		staticLoader{name: "override", sets: []*calendar.ReferenceDataSet{override}},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2027}, r.Years())
	got, _ := r.Get(2026)
	assert.Same(t, override, got)
}

func TestRegistryReloadKeepsSnapshotOnError(t *testing.T) {
	r, err := LoadRegistry(t.Context(), EmbeddedLoader{})
	require.NoError(t, err)

	err = r.Reload(t.Context(),
		EmbeddedLoader{},
		staticLoader{name: "broken", err: errors.New("boom")},
	)
	assert.ErrorContains(t, err, "load datasets from broken: boom")
	assert.Equal(t, []int{2026}, r.Years())

	require.NoError(t, r.Reload(t.Context(), staticLoader{name: "empty"}))
	assert.Equal(t, []int{}, r.Years())
}
