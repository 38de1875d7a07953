package utils

import (
	"time"

	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/models"
)

// WithinWorkingHours reports whether a slot range falls inside the
// doctor's declared window for that day of week. Working hours are a
// hint, not a constraint: a doctor with no declared window for the day
// gets false, and the caller decides whether that is worth a warning.
func WithinWorkingHours(doctorID uint, date time.Time, start, end string) (bool, error) {
	var hours []models.WorkingHour
	if err := db.DB.
		Where("doctor_id = ? AND day_of_week = ?", doctorID, models.DayOfWeek(date.Weekday())).
		Find(&hours).Error; err != nil {
		return false, err
	}

	startClock, err := models.ParseClock(start)
	if err != nil {
		return false, err
	}
	endClock, err := models.ParseClock(end)
	if err != nil {
		return false, err
	}

	for _, wh := range hours {
		whStart, err := models.ParseClock(wh.StartTime)
		if err != nil {
			continue
		}
		whEnd, err := models.ParseClock(wh.EndTime)
		if err != nil {
			continue
		}
		if startClock >= whStart && endClock <= whEnd {
			return true, nil
		}
	}
	return false, nil
}
