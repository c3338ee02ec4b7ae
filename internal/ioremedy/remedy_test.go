package ioremedy_test

import (
	"strings"
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioremedy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The default fix set has to stay internally consistent: every
// replacement indicator needs a distinct id and code, both clear of the
// collided range.
func TestDefaultFixes(t *testing.T) {
	fixes := ioremedy.DefaultFixes
	require.Len(t, fixes, 3)

	seenIDs := map[int]bool{}
	seenCodes := map[string]bool{}
	for _, f := range fixes {
		assert.Equal(t, "qualification:", f.NotesPrefix)
		assert.Equal(t, "13111-09-01-4", f.SourceTableID)
		assert.Equal(t, "employment", f.Category)
		assert.True(t, strings.HasPrefix(f.NewCode, "employees_qualification_"))

		assert.NotEqual(t, f.CollidedID, f.NewID)
		assert.False(t, seenIDs[f.NewID], "duplicate new id %d", f.NewID)
		assert.False(t, seenCodes[f.NewCode], "duplicate code %s", f.NewCode)
		seenIDs[f.NewID] = true
		seenCodes[f.NewCode] = true
	}

	assert.Equal(t, 81, fixes[0].NewID)
	assert.Equal(t, 6, fixes[0].CollidedID)
	assert.Equal(t, 83, fixes[2].NewID)
	assert.Equal(t, 8, fixes[2].CollidedID)
}
