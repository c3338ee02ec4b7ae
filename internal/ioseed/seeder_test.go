package ioseed_test

import (
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioseed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegions(t *testing.T) {
	regions, err := ioseed.Regions()
	require.NoError(t, err)

	byCode := make(map[string]ioseed.Region, len(regions))
	for _, r := range regions {
		byCode[r.Code] = r
	}

	// country, state, five Regierungsbezirke, 53 districts
	assert.Len(t, regions, 60)

	nrw, ok := byCode["05"]
	require.True(t, ok)
	assert.Equal(t, "state", nrw.Type)
	assert.Equal(t, "DG", nrw.Parent)

	duisburg, ok := byCode["05112"]
	require.True(t, ok)
	assert.Equal(t, "urban_district", duisburg.Type)
	assert.Equal(t, "051", duisburg.Parent)
	assert.True(t, duisburg.Ruhr)

	cologne, ok := byCode["05315"]
	require.True(t, ok)
	assert.False(t, cologne.Ruhr)
}

func TestRegionsHierarchy(t *testing.T) {
	regions, err := ioseed.Regions()
	require.NoError(t, err)

	byCode := make(map[string]ioseed.Region, len(regions))
	var districts, ruhr int
	for _, r := range regions {
		byCode[r.Code] = r
		if r.Type == "urban_district" || r.Type == "rural_district" {
			districts++
		}
		if r.Ruhr {
			ruhr++
		}
	}
	assert.Equal(t, 53, districts)

	// Regionalverband Ruhr: 11 cities and 4 Kreise
	assert.Equal(t, 15, ruhr)

	// every district code extends its Regierungsbezirk code
	for _, r := range regions {
		if r.Parent == "" || r.Parent == "DG" {
			continue
		}
		parent, ok := byCode[r.Parent]
		require.True(t, ok, "parent of %s missing", r.Code)
		assert.Equal(t, parent.Code, r.Code[:len(parent.Code)],
			"code %s does not extend parent %s", r.Code, parent.Code)
	}
}
