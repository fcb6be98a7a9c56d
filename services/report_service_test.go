package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidReportWindow(t *testing.T) {
	for _, w := range ReportWindows {
		assert.True(t, ValidReportWindow(w), w)
	}
	assert.False(t, ValidReportWindow("decade"))
	assert.False(t, ValidReportWindow(""))
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), windowStart("week", now))
	assert.Equal(t, time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC), windowStart("month", now))
	assert.Equal(t, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), windowStart("quarter", now))
	assert.Equal(t, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), windowStart("year", now))
}

func TestWindowStartUnknownFallsBackToMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, windowStart("month", now), windowStart("bogus", now))
}
