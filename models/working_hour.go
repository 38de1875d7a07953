package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// A WorkingHour is a doctor's declared availability window for one day of
// the week. It is an input hint for slot generation, not an enforced
// constraint on individual slots.
type WorkingHour struct {
	gorm.Model
	DoctorID  uint      `json:"doctor_id"`
	Doctor    Doctor    `json:"doctor,omitempty" gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE"`
	DayOfWeek DayOfWeek `json:"day_of_week"`
	StartTime string    `json:"start_time"` // "HH:MM", 24h
	EndTime   string    `json:"end_time"`   // "HH:MM", 24h
}
