package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Nowhere/Invalid").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-04-10"))
	assert.False(t, ValidDate("10/04/2025"))
	assert.False(t, ValidDate(""))
	assert.True(t, ValidDate(Today("America/Santiago")))
}
