package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPeriodRangeBoundaries(t *testing.T) {
	// A zone well away from UTC exposes boundaries built in the wrong location
	zone := time.FixedZone("UTC+6", 6*3600)
	now := time.Date(2026, 8, 30, 10, 30, 0, 0, zone)

	for _, period := range []string{"day", "week", "month"} {
		start, end, err := reportPeriodRange(period, now)
		require.NoError(t, err, period)

		assert.Equal(t, zone, start.Location(), "%s start location", period)
		assert.Equal(t, 0, start.Hour(), "%s start must be local midnight", period)
		assert.Equal(t, 0, start.Minute(), "%s start must be local midnight", period)
		assert.Equal(t, 23, end.Hour(), "%s end must be local end of day", period)
		assert.True(t, start.Before(now) && end.After(now), "%s range must contain now", period)
	}

	dayStart, _, err := reportPeriodRange("day", now)
	require.NoError(t, err)
	assert.Equal(t, now.Day(), dayStart.Day())

	weekStart, _, err := reportPeriodRange("week", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -6).Day(), weekStart.Day())

	monthStart, _, err := reportPeriodRange("month", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30).Day(), monthStart.Day())
}

func TestReportPeriodRangeRejectsUnknownPeriod(t *testing.T) {
	_, _, err := reportPeriodRange("fortnight", time.Now())
	assert.Error(t, err)
}
