package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klabast/wb-services/ferien-checker/internal/calendar"
)

func TestDefaultMappingIsTotal(t *testing.T) {
	m := DefaultMapping()
	require.NoError(t, m.Validate())
	assert.Len(t, m, len(calendar.Regions()))

	sr, err := m.Lookup(calendar.NordrheinWestfalen)
	require.NoError(t, err)
	assert.Equal(t, "DE-NW", sr.Subdivision)

	sr, err = m.Lookup(calendar.DenmarkRegion)
	require.NoError(t, err)
	assert.Equal(t, ServiceRegion{Country: "DK", Language: "DA"}, sr)
}

func TestMappingValidate(t *testing.T) {
	missing := DefaultMapping()
	delete(missing, calendar.Bremen)

	foreign := DefaultMapping()
	foreign[calendar.Hessen] = ServiceRegion{Country: "DE", Subdivision: "AT-9", Language: "DE"}

	blank := DefaultMapping()
	blank[calendar.Saarland] = ServiceRegion{Country: "DE", Language: "DE"}

	unknown := DefaultMapping()
	unknown[calendar.Region("XX")] = ServiceRegion{Country: "DE", Subdivision: "DE-XX"}

	for name, m := range map[string]Mapping{
		"missing entry":       missing,
		"foreign subdivision": foreign,
		"blank subdivision":   blank,
		"unknown region":      unknown,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, m.Validate())
		})
	}
}

func TestMappingWithOverrides(t *testing.T) {
	base := DefaultMapping()

	m, err := base.WithOverrides(map[string]string{"NRW": " DE-NRW "})
	require.NoError(t, err)
	assert.Equal(t, "DE-NRW", m[calendar.NordrheinWestfalen].Subdivision)
	assert.Equal(t, "DE-NW", base[calendar.NordrheinWestfalen].Subdivision, "base mapping must not change")

	_, err = base.WithOverrides(map[string]string{"NW": "DE-NW"})
	var unknown *calendar.UnknownRegionError
	assert.ErrorAs(t, err, &unknown)
}
