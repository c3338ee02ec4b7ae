package ioload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The conflict target must name the full seven-column natural key, in
// the same order as the unique index, or upserts stop being idempotent.
func TestUpsertSQL(t *testing.T) {
	for _, col := range []string{
		"geo_id", "time_id", "indicator_id",
		"gender", "nationality", "age_group", "migration_background",
	} {
		assert.Contains(t, upsertSQL, col)
	}

	conflict := upsertSQL[strings.Index(upsertSQL, "ON CONFLICT"):]
	assert.Contains(t, conflict, "migration_background")
	assert.Contains(t, conflict, "DO UPDATE SET")

	// value and loaded_at move on conflict; extracted_at keeps the
	// first extraction's timestamp
	assert.Contains(t, conflict, "value = EXCLUDED.value")
	assert.Contains(t, conflict, "loaded_at = EXCLUDED.loaded_at")
	assert.NotContains(t, conflict, "extracted_at = EXCLUDED")
}

func TestNewBatchSizeDefault(t *testing.T) {
	tests := []struct {
		msg  string
		in   int
		want int
	}{
		{"zero falls back", 0, 500},
		{"negative falls back", -10, 500},
		{"explicit kept", 2000, 2000},
	}

	for _, v := range tests {
		l, ok := New(nil, v.in).(*loader)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.want, l.batchSize, v.msg)
	}
}
