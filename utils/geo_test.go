package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKmKnownDistance(t *testing.T) {
	// Tashkent to Samarkand is roughly 262 km in a straight line.
	d := HaversineKm(41.2995, 69.2401, 39.6542, 66.9597)
	assert.InDelta(t, 262, d, 10)
}

func TestHaversineKmZeroForSamePoint(t *testing.T) {
	d := HaversineKm(41.2995, 69.2401, 41.2995, 69.2401)
	assert.InDelta(t, 0, d, 0.001)
}

func TestHaversineKmSymmetric(t *testing.T) {
	a := HaversineKm(41.2995, 69.2401, 40.1216, 67.8422)
	b := HaversineKm(40.1216, 67.8422, 41.2995, 69.2401)
	assert.InDelta(t, a, b, 0.0001)
}

func TestHaversineSQLUsesTablePrefix(t *testing.T) {
	sql := HaversineSQL("attractions")
	assert.Contains(t, sql, "attractions.latitude")
	assert.Contains(t, sql, "attractions.longitude")
	// acos argument must be clamped or rounding can push it out of [-1, 1]
	assert.True(t, strings.Contains(sql, "LEAST"))
}
