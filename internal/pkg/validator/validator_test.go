package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty(" a "))
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("01912f9d-8b3a-7cde-89ab-123456789abc"))
	assert.True(t, IsValidUUID("01912F9D-8B3A-7CDE-89AB-123456789ABC"))
	// v4 UUID is rejected
	assert.False(t, IsValidUUID("123e4567-e89b-42d3-a456-426614174000"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	_, ok := IsValidDate("2025-01-31")
	assert.True(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("31-01-2025")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	t.Parallel()

	ts, ok := IsValidDateTime("2025-01-15T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, 10, ts.UTC().Hour())

	_, ok = IsValidDateTime("2025-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-01-15 10:30:00")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	t.Parallel()

	modes := []string{"geofencing", "location_tracking"}
	assert.True(t, IsInSlice("geofencing", modes))
	assert.False(t, IsInSlice("GEOFENCING", modes))
	assert.False(t, IsInSlice("", modes))
}
