package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion(" NRW ")
	require.NoError(t, err)
	assert.Equal(t, NordrheinWestfalen, r)
	assert.Equal(t, Germany, r.Country())
	assert.True(t, r.IsGerman())

	r, err = ParseRegion("DK")
	require.NoError(t, err)
	assert.Equal(t, Denmark, r.Country())
	assert.False(t, r.IsGerman())

	// codes are case sensitive
	for _, code := range []string{"XX", "nrw", "NW", "DE-NW", ""} {
		_, err := ParseRegion(code)
		var regionErr *UnknownRegionError
		require.ErrorAs(t, err, &regionErr, code)
		assert.Equal(t, code, regionErr.Code)
	}
}

func TestUnknownRegionListsAllCodes(t *testing.T) {
	_, err := ParseRegion("XX")
	var regionErr *UnknownRegionError
	require.ErrorAs(t, err, &regionErr)

	require.Len(t, regionErr.Valid, 17)
	assert.Equal(t, "BW", regionErr.Valid[0])
	assert.Equal(t, "DK", regionErr.Valid[16])
	for _, s := range GermanStates() {
		assert.Contains(t, regionErr.Valid, string(s))
	}
	assert.Contains(t, err.Error(), "NRW")
}

func TestRegions(t *testing.T) {
	regions := Regions()
	require.Len(t, regions, 17)
	for i := 1; i < len(regions); i++ {
		assert.Less(t, string(regions[i-1]), string(regions[i]))
	}
	assert.Len(t, GermanStates(), 16)
	assert.Equal(t, "Dänemark", DenmarkRegion.DisplayName())
	assert.Equal(t, "Thüringen", Thueringen.DisplayName())
	assert.Equal(t, "XX", Region("XX").DisplayName())
}
