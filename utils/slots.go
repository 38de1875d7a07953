package utils

import (
	"time"

	"github.com/clinicdesk/patient-booking/models"
)

// SlotLength is the fixed size of every generated appointment slot.
const SlotLength = 30 * time.Minute

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalendarDay normalizes t to its calendar day as a UTC midnight. Request
// dates parse as UTC midnights and the date column stores plain days, so
// any day comparison involving time.Now must go through this or the two
// sides end up as midnights in different zones.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SlotTimes validates a (date, start, end) range and expands it into
// 30-minute slot times. start and end are "HH:MM"; both are truncated to
// minute precision by the format itself. The date must not be in the
// past, and on the current day the range must not start before now.
// Existing-slot skipping is the caller's concern; this only produces the
// candidate times.
func SlotTimes(date time.Time, start, end string, now time.Time) ([]string, error) {
	startClock, err := models.ParseClock(start)
	if err != nil {
		return nil, Validation("invalid start time: %v", err)
	}
	endClock, err := models.ParseClock(end)
	if err != nil {
		return nil, Validation("invalid end time: %v", err)
	}

	if endClock <= startClock {
		return nil, Validation("end time must be after start time")
	}

	day := CalendarDay(date)
	today := CalendarDay(now)
	if day.Before(today) {
		return nil, Validation("cannot add slots in the past")
	}
	if day.Equal(today) && now.Sub(Midnight(now)) > startClock {
		return nil, Validation("cannot add slots earlier than the current time")
	}

	var slots []string
	for t := startClock; t < endClock; t += SlotLength {
		slots = append(slots, models.FormatClock(t))
	}
	return slots, nil
}
