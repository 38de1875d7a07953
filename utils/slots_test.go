package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

func TestSlotTimesExpandsRange(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	slots, err := SlotTimes(date, "09:00", "10:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)

	// A ragged range still yields ceil((end-start)/30m) candidates
	slots, err = SlotTimes(date, "09:00", "10:15", testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots)

	slots, err = SlotTimes(date, "09:00", "09:30", testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slots)
}

func TestSlotTimesRejectsEmptyRange(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := SlotTimes(date, "10:00", "10:00", testNow)
	require.Error(t, err)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = SlotTimes(date, "10:00", "09:00", testNow)
	assert.Error(t, err)
}

func TestSlotTimesRejectsPast(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	_, err := SlotTimes(yesterday, "09:00", "10:00", testNow)
	assert.Error(t, err)

	// Today before the current time
	_, err = SlotTimes(testNow, "09:00", "10:00", testNow)
	assert.Error(t, err)

	// Today after the current time is fine
	slots, err := SlotTimes(testNow, "13:00", "14:00", testNow)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestSlotTimesServerZoneIndependent(t *testing.T) {
	// Request dates parse as UTC midnights; the checks must compare
	// calendar days even when now carries the server's zone.
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// West of UTC, later today is not "the past"
	hst := time.FixedZone("HST", -10*60*60)
	slots, err := SlotTimes(date, "21:00", "22:00", time.Date(2024, 6, 1, 20, 0, 0, 0, hst))
	require.NoError(t, err)
	assert.Equal(t, []string{"21:00", "21:30"}, slots)

	// East of UTC, a start behind the current wall clock still fails
	aest := time.FixedZone("AEST", 10*60*60)
	_, err = SlotTimes(date, "00:30", "01:00", time.Date(2024, 6, 1, 8, 0, 0, 0, aest))
	require.Error(t, err)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)

	// And tomorrow from the eastern server's point of view is fine
	slots, err = SlotTimes(date.AddDate(0, 0, 1), "00:30", "01:00", time.Date(2024, 6, 1, 8, 0, 0, 0, aest))
	require.NoError(t, err)
	assert.Equal(t, []string{"00:30"}, slots)
}

func TestCalendarDay(t *testing.T) {
	hst := time.FixedZone("HST", -10*60*60)
	local := time.Date(2024, 6, 1, 23, 30, 0, 0, hst)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), CalendarDay(local))
}

func TestSlotTimesRejectsBadClock(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := SlotTimes(date, "9am", "10:00", testNow)
	assert.Error(t, err)

	_, err = SlotTimes(date, "09:00", "26:00", testNow)
	assert.Error(t, err)
}

func TestCancelLeadTimeDefault(t *testing.T) {
	t.Setenv("CANCEL_LEAD_HOURS", "")
	assert.Equal(t, 24*time.Hour, CancelLeadTime())

	t.Setenv("CANCEL_LEAD_HOURS", "48")
	assert.Equal(t, 48*time.Hour, CancelLeadTime())

	t.Setenv("CANCEL_LEAD_HOURS", "nope")
	assert.Equal(t, 24*time.Hour, CancelLeadTime())
}

func TestSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "")
	assert.Equal(t, 60*time.Minute, SessionTTL())

	t.Setenv("SESSION_TTL_MINUTES", "30")
	assert.Equal(t, 30*time.Minute, SessionTTL())
}
