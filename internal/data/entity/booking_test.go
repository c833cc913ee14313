package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotDateNormalizesOffset(t *testing.T) {
	utc := time.Date(2026, 10, 10, 18, 0, 0, 0, time.UTC)
	jakarta := time.Date(2026, 10, 11, 1, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	// Same instant, different client offsets, one admission slot.
	assert.Equal(t, SlotDate(utc), SlotDate(jakarta))
	assert.Equal(t, time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), SlotDate(jakarta))
}
