package iocache_test

import (
	"path/filepath"
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	path := filepath.Join(t.TempDir(), "responses.db")
	cache, err := iocache.Open(path)
	require.NoError(t, err)
	defer cache.Close()

	_, found, err := cache.Get("regional", "12411-03-03-4", 2024)
	require.NoError(t, err)
	assert.False(t, found)

	body := "Stichtag;Schlüssel;Region\n2024-12-31;05112;Duisburg\n"
	require.NoError(t,
		cache.Put("regional", "12411-03-03-4", 2024, body))

	got, found, err := cache.Get("regional", "12411-03-03-4", 2024)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, body, got)

	// same table id, different source: distinct entries
	_, found, err = cache.Get("landesdatenbank", "12411-03-03-4", 2024)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCachePutOverwrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	path := filepath.Join(t.TempDir(), "responses.db")
	cache, err := iocache.Open(path)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("regional", "13211-02-05-4", 2023, "old"))
	require.NoError(t, cache.Put("regional", "13211-02-05-4", 2023, "new"))

	got, found, err := cache.Get("regional", "13211-02-05-4", 2023)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", got)
}

func TestCacheSurvivesReopen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	path := filepath.Join(t.TempDir(), "responses.db")

	cache, err := iocache.Open(path)
	require.NoError(t, err)
	require.NoError(t, cache.Put("regional", "46271-01i", 2021, "km;daten"))
	require.NoError(t, cache.Close())

	cache, err = iocache.Open(path)
	require.NoError(t, err)
	defer cache.Close()

	got, found, err := cache.Get("regional", "46271-01i", 2021)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "km;daten", got)
}
